package main

import (
	"math"
	"math/big"
	"testing"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/config"
)

func TestAgreement(t *testing.T) {
	const prec = 128
	ref := []*big.Float{bigmath.NewFloat(1000, prec), bigmath.MustParse("0.5", prec)}

	tests := []struct {
		name string
		x    []*big.Float
		want float64
	}{
		{"small component", []*big.Float{bigmath.NewFloat(1000, prec), bigmath.MustParse("0.5001", prec)}, 4},
		{"large component", []*big.Float{bigmath.NewFloat(1001, prec), bigmath.MustParse("0.5", prec)}, 3},
		{"identical", ref, float64(bigmath.Digits(prec))},
	}
	for _, tt := range tests {
		if got := agreement(tt.x, ref, prec); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %v digits, got %v", tt.name, tt.want, got)
		}
	}
}

func TestConvergeJobs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = "vanderpol"
	cfg.Precision = 96

	jobs, err := convergeJobs(cfg, []int{4, 10, 6})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 4 {
		t.Fatalf("expected 4 jobs, got %d", len(jobs))
	}

	for i, o := range []int{4, 10, 6} {
		if jobs[i].Config.Order != o || jobs[i].Config.Prec != 96 {
			t.Errorf("job %d: expected order %d at 96 bits, got order %d at %d bits",
				i, o, jobs[i].Config.Order, jobs[i].Config.Prec)
		}
	}
	ref := jobs[3]
	if ref.Config.Order != 20 || ref.Config.Prec != 192 {
		t.Errorf("reference: expected order 20 at 192 bits, got order %d at %d bits", ref.Config.Order, ref.Config.Prec)
	}
	if ref.X0[0].Prec() != 192 {
		t.Errorf("reference state at %d bits", ref.X0[0].Prec())
	}
	if jobs[0].Model == jobs[1].Model {
		t.Error("jobs share a model instance")
	}
}
