package metrics

import (
	"context"
	"math"
	"math/big"
	"testing"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/models"
	"github.com/san-kum/taylorsim/internal/tsm"
)

const prec = 128

func vec(xs ...float64) []*big.Float {
	out := make([]*big.Float, len(xs))
	for i, x := range xs {
		out[i] = bigmath.NewFloat(x, prec)
	}
	return out
}

func TestEnergyDriftFirstSampleIsZero(t *testing.T) {
	m := NewEnergyDrift(models.NewPendulum())
	m.OnStep(0, new(big.Float), vec(math.Pi/4, 0))

	if m.Value() != 0 {
		t.Errorf("expected zero drift on first sample, got %g", m.Value())
	}

	expected := 9.81 * (1 - math.Cos(math.Pi/4))
	got, _ := m.Initial().Float64()
	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, got)
	}
}

// kinetic is the energy ½v² of a free particle with velocity x[0].
type kinetic struct{}

func (kinetic) Energy(x []*big.Float) *big.Float {
	e := new(big.Float).Mul(x[0], x[0])
	return e.SetMantExp(e, -1)
}

func TestEnergyDriftRelative(t *testing.T) {
	m := NewEnergyDrift(kinetic{})
	m.OnStep(0, new(big.Float), vec(2))   // E = 2
	m.OnStep(1, new(big.Float), vec(1))   // E = 0.5
	m.OnStep(2, new(big.Float), vec(2.2)) // E = 2.42

	if got := m.Value(); math.Abs(got-0.75) > 1e-15 {
		t.Errorf("expected max drift 0.75, got %g", got)
	}
	cur, _ := m.Current().Float64()
	if math.Abs(cur-2.42) > 1e-12 {
		t.Errorf("expected current energy 2.42, got %g", cur)
	}
}

func TestEnergyDriftAbsoluteAtZeroEnergy(t *testing.T) {
	m := NewEnergyDrift(kinetic{})
	m.OnStep(0, new(big.Float), vec(0))
	m.OnStep(1, new(big.Float), vec(1))

	if got := m.Value(); got != 0.5 {
		t.Errorf("expected absolute drift 0.5, got %g", got)
	}
}

func TestEnergyDriftReset(t *testing.T) {
	m := NewEnergyDrift(models.NewPendulum())
	m.OnStep(0, new(big.Float), vec(1, 1))
	m.OnStep(1, new(big.Float), vec(1, 2))
	if m.Value() == 0 {
		t.Error("expected non-zero drift")
	}

	m.Reset()
	if m.Value() != 0 || m.MaxDrift().Sign() != 0 || m.Initial() != nil {
		t.Error("expected cleared state after reset")
	}
}

func TestEnergyDriftAlongRun(t *testing.T) {
	p := models.NewPendulum()
	m := NewEnergyDrift(p)
	cfg := tsm.Config{Order: 20, Step: bigmath.MustParse("0.1", prec), Steps: 100, Prec: prec}
	if _, err := tsm.Run(context.Background(), p, p.DefaultState(prec), cfg, tsm.WithObserver(m)); err != nil {
		t.Fatal(err)
	}

	if e := bigmath.Log10(m.MaxDrift()); e > -25 {
		t.Errorf("energy drift 1e%.1f", e)
	}
}
