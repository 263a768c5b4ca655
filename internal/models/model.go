package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
	"github.com/san-kum/taylorsim/internal/tsm"
)

// Model is a shipped TSM model with labelled state variables and a default
// initial condition.
type Model interface {
	tsm.Model
	tsm.Preparer
	Name() string
	Labels() []string
	DefaultState(prec uint) []*big.Float
}

// Configurable is implemented by models with adjustable parameters.
type Configurable interface {
	GetParams() map[string]string
	ParamNames() []string
	SetParam(name, value string) error
}

var (
	_ Configurable    = (*Lorenz)(nil)
	_ tsm.Hamiltonian = (*Pendulum)(nil)
	_ tsm.Hamiltonian = (*DoubleWell)(nil)
	_ tsm.Hamiltonian = (*Duffing)(nil)
	_ tsm.Hamiltonian = (*Kepler)(nil)
)

// scratch owns the intermediate jets of a model. They share the lifecycle
// of the state jets: allocated once per run, overwritten every step.
type scratch struct {
	n    int
	prec uint
}

func (s *scratch) setup(n int, prec uint) { s.n, s.prec = n, prec }

func (s *scratch) jet() taylor.Jet { return taylor.NewJet(s.n, s.prec) }

func (s *scratch) num(x string) *big.Float { return bigmath.MustParse(x, s.prec) }

func state(prec uint, xs ...string) []*big.Float {
	out := make([]*big.Float, len(xs))
	for i, x := range xs {
		out[i] = bigmath.MustParse(x, prec)
	}
	return out
}

// at0 adds c to dst when k is zero: constants only reach the leading
// coefficient.
func at0(dst *big.Float, c *big.Float, k int) {
	if k == 0 {
		dst.Add(dst, c)
	}
}

func newF(prec uint) *big.Float { return new(big.Float).SetPrec(prec) }
