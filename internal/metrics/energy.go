package metrics

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/tsm"
)

// EnergyDrift tracks max |E(t) - E(0)| / |E(0)| along the trajectory, or
// the absolute drift when E(0) is zero.
type EnergyDrift struct {
	name     string
	sys      tsm.Hamiltonian
	initial  *big.Float
	current  *big.Float
	maxDrift *big.Float
	samples  int
}

func NewEnergyDrift(sys tsm.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) OnStep(step int, t *big.Float, x []*big.Float) {
	energy := e.sys.Energy(x)

	if e.samples == 0 {
		e.initial = new(big.Float).Copy(energy)
		e.maxDrift = new(big.Float).SetPrec(energy.Prec())
	}
	e.current = energy
	e.samples++

	drift := new(big.Float).SetPrec(energy.Prec()).Sub(energy, e.initial)
	drift.Abs(drift)
	if e.initial.Sign() != 0 {
		drift.Quo(drift, new(big.Float).Abs(e.initial))
	}
	if drift.Cmp(e.maxDrift) > 0 {
		e.maxDrift.Set(drift)
	}
}

// Value returns the maximum drift as a float64; drifts below the float64
// range read as zero. MaxDrift keeps full precision.
func (e *EnergyDrift) Value() float64 {
	if e.maxDrift == nil {
		return 0
	}
	v, _ := e.maxDrift.Float64()
	return v
}

func (e *EnergyDrift) MaxDrift() *big.Float {
	if e.maxDrift == nil {
		return new(big.Float)
	}
	return new(big.Float).Copy(e.maxDrift)
}

// Initial returns the energy of the first observed state, or nil.
func (e *EnergyDrift) Initial() *big.Float { return e.initial }

// Current returns the energy of the last observed state, or nil.
func (e *EnergyDrift) Current() *big.Float { return e.current }

func (e *EnergyDrift) Reset() {
	e.initial = nil
	e.current = nil
	e.maxDrift = nil
	e.samples = 0
}
