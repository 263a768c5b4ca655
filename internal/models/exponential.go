package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/taylor"
)

// Exponential is dx/dt = a·x, the reference problem with solution
// x0·exp(a·t).
type Exponential struct {
	*Params
	scratch
}

func NewExponential() *Exponential {
	return &Exponential{Params: newParams("a", "1")}
}

func (e *Exponential) Name() string     { return "exponential" }
func (e *Exponential) Dim() int         { return 1 }
func (e *Exponential) Labels() []string { return []string{"x"} }

func (e *Exponential) DefaultState(prec uint) []*big.Float { return state(prec, "1") }

func (e *Exponential) Prepare(n int, prec uint) {
	e.setup(n, prec)
	e.load(prec)
}

func (e *Exponential) Derivatives(dx []*big.Float, x []taylor.Jet, k int) error {
	dx[0].Mul(e.get("a"), x[0][k])
	return nil
}
