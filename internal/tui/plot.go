package tui

import (
	"fmt"
	"math"
	"math/big"
	"slices"

	"github.com/guptarohit/asciigraph"
)

const (
	// plotLimit keeps the span of any chart finite in float64.
	plotLimit = math.MaxFloat64 / 4
	// maxOffset bounds |value|/span before the axis is pinned at zero, so
	// the scaled grid rows fit in an int.
	maxOffset = 1e12
)

// PlotValue converts v for charting. ok is false when v is beyond the range
// a float64 chart can draw; the state itself may still be perfectly valid.
func PlotValue(v *big.Float) (f float64, ok bool) {
	f, _ = v.Float64()
	if math.IsInf(f, 0) || math.Abs(f) > plotLimit {
		return 0, false
	}
	return f, true
}

// PlotSeries extracts variable i from states for charting. Samples outside
// the drawable range are left out and counted in hidden.
func PlotSeries(states [][]*big.Float, i int) (data []float64, hidden int) {
	data = make([]float64, 0, len(states))
	for _, x := range states {
		f, ok := PlotValue(x[i])
		if !ok {
			hidden++
			continue
		}
		data = append(data, f)
	}
	return data, hidden
}

// Caption labels a chart, noting samples PlotSeries left out.
func Caption(label string, hidden int) string {
	if hidden == 0 {
		return label
	}
	return fmt.Sprintf("%s (%d samples beyond float64 range not shown)", label, hidden)
}

// Chart draws data with asciigraph. A series far from zero relative to its
// spread is drawn against a zero-based axis.
func Chart(data []float64, height, width int, caption string) string {
	if len(data) == 0 {
		return caption
	}
	opts := []asciigraph.Option{asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption(caption)}

	lo, hi := slices.Min(data), slices.Max(data)
	if math.Max(math.Abs(lo), math.Abs(hi)) > maxOffset*(hi-lo) {
		switch {
		case lo > 0:
			opts = append(opts, asciigraph.LowerBound(0))
		case hi < 0:
			opts = append(opts, asciigraph.UpperBound(0))
		}
	}
	return asciigraph.Plot(data, opts...)
}
