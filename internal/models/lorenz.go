package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/taylor"
)

// Lorenz implements the Lorenz attractor.
//
//	dx/dt = σ(y - x)
//	dy/dt = x(ρ - z) - y
//	dz/dt = xy - βz
type Lorenz struct {
	*Params
	scratch
}

func NewLorenz() *Lorenz {
	return &Lorenz{Params: newParams("sigma", "10", "rho", "28", "beta", "8/3")}
}

func (l *Lorenz) Name() string     { return "lorenz" }
func (l *Lorenz) Dim() int         { return 3 }
func (l *Lorenz) Labels() []string { return []string{"x", "y", "z"} }

func (l *Lorenz) DefaultState(prec uint) []*big.Float { return state(prec, "1", "1", "1") }

func (l *Lorenz) Prepare(n int, prec uint) {
	l.setup(n, prec)
	l.load(prec)
}

func (l *Lorenz) Derivatives(dx []*big.Float, s []taylor.Jet, k int) error {
	x, y, z := s[0], s[1], s[2]
	t := newF(l.prec)

	dx[0].Sub(y[k], x[k])
	dx[0].Mul(dx[0], l.get("sigma"))

	dx[1].Mul(l.get("rho"), x[k])
	dx[1].Sub(dx[1], taylor.Product(x, z, k))
	dx[1].Sub(dx[1], y[k])

	dx[2].Set(taylor.Product(x, y, k))
	dx[2].Sub(dx[2], t.Mul(l.get("beta"), z[k]))
	return nil
}
