// Package metrics observes a trajectory as it is produced and reduces it to
// scalar diagnostics.
package metrics

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/tsm"
)

// Metric is a trajectory observer with a scalar summary.
type Metric interface {
	tsm.Observer
	Name() string
	Value() float64
	Reset()
}

// Set fans each state out to every metric in it.
type Set []Metric

func (s Set) OnStep(step int, t *big.Float, x []*big.Float) {
	for _, m := range s {
		m.OnStep(step, t, x)
	}
}

// Values returns the metric values keyed by name.
func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// ForModel returns the metrics that apply to model: stability and extent
// always, energy drift for Hamiltonian systems.
func ForModel(model tsm.Model, threshold float64) Set {
	set := Set{NewStability(threshold), NewExtent(model.Dim())}
	if h, ok := model.(tsm.Hamiltonian); ok {
		set = append(set, NewEnergyDrift(h))
	}
	return set
}
