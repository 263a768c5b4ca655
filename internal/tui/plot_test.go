package tui

import (
	"math/big"
	"strings"
	"testing"

	"github.com/san-kum/taylorsim/internal/bigmath"
)

func TestPlotValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.5", 1.5, true},
		{"-1e300", -1e300, true},
		{"1e307", 1e307, true},
		{"7e307", 0, false},
		{"1e400", 0, false},
		{"-1e1000", 0, false},
	}

	for _, tt := range tests {
		got, ok := PlotValue(bigmath.MustParse(tt.in, prec))
		if ok != tt.ok || got != tt.want {
			t.Errorf("PlotValue(%s) = %g, %v; want %g, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPlotSeriesHidesOverflow(t *testing.T) {
	states := [][]*big.Float{
		{bigmath.MustParse("1", prec), bigmath.MustParse("1e500", prec)},
		{bigmath.MustParse("2", prec), bigmath.MustParse("3", prec)},
		{bigmath.MustParse("1e400", prec), bigmath.MustParse("4", prec)},
	}

	data, hidden := PlotSeries(states, 0)
	if hidden != 1 || len(data) != 2 || data[1] != 2 {
		t.Errorf("column 0: %v, %d hidden", data, hidden)
	}
	data, hidden = PlotSeries(states, 1)
	if hidden != 1 || len(data) != 2 || data[0] != 3 {
		t.Errorf("column 1: %v, %d hidden", data, hidden)
	}
}

func TestCaption(t *testing.T) {
	if got := Caption("x", 0); got != "x" {
		t.Errorf("got %q", got)
	}
	if got := Caption("x", 3); !strings.Contains(got, "3 samples") {
		t.Errorf("got %q", got)
	}
}

func TestChartExtremeSeries(t *testing.T) {
	tests := []struct {
		name string
		data []float64
	}{
		{"empty", nil},
		{"single", []float64{2}},
		{"near limit", []float64{1e307, 2.7e307, plotLimit}},
		{"both signs at limit", []float64{-plotLimit, plotLimit}},
		{"constant and huge", []float64{1e300, 1e300, 1e300}},
		{"narrow far from zero", []float64{1e200, 1e200 * (1 + 1e-15)}},
		{"negative offset", []float64{-1e250, -1e250 * (1 + 1e-14)}},
		{"zeros", []float64{0, 0}},
		{"ordinary", []float64{-3, 1, 4, 1, -5, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if out := Chart(tt.data, 10, 40, "x"); !strings.Contains(out, "x") {
				t.Errorf("chart lost its caption: %q", out)
			}
		})
	}
}
