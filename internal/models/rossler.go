package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/taylor"
)

// Rossler implements the Rössler attractor.
//
//	dx/dt = -y - z
//	dy/dt = x + ay
//	dz/dt = b + z(x - c)
type Rossler struct {
	*Params
	scratch
}

func NewRossler() *Rossler {
	return &Rossler{Params: newParams("a", "0.2", "b", "0.2", "c", "5.7")}
}

func (r *Rossler) Name() string     { return "rossler" }
func (r *Rossler) Dim() int         { return 3 }
func (r *Rossler) Labels() []string { return []string{"x", "y", "z"} }

func (r *Rossler) DefaultState(prec uint) []*big.Float { return state(prec, "1", "1", "1") }

func (r *Rossler) Prepare(n int, prec uint) {
	r.setup(n, prec)
	r.load(prec)
}

func (r *Rossler) Derivatives(dx []*big.Float, s []taylor.Jet, k int) error {
	x, y, z := s[0], s[1], s[2]
	t := newF(r.prec)

	dx[0].Add(y[k], z[k])
	dx[0].Neg(dx[0])

	dx[1].Mul(r.get("a"), y[k])
	dx[1].Add(dx[1], x[k])

	dx[2].Set(taylor.Product(z, x, k))
	dx[2].Sub(dx[2], t.Mul(r.get("c"), z[k]))
	at0(dx[2], r.get("b"), k)
	return nil
}
