package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/taylor"
)

// VanDerPol implements the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = μ(1 - x²)y - x
type VanDerPol struct {
	*Params
	scratch
	x2, x2y taylor.Jet
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{Params: newParams("mu", "1")}
}

func (v *VanDerPol) Name() string     { return "vanderpol" }
func (v *VanDerPol) Dim() int         { return 2 }
func (v *VanDerPol) Labels() []string { return []string{"x", "y"} }

func (v *VanDerPol) DefaultState(prec uint) []*big.Float { return state(prec, "2", "0") }

func (v *VanDerPol) Prepare(n int, prec uint) {
	v.setup(n, prec)
	v.load(prec)
	v.x2, v.x2y = v.jet(), v.jet()
}

func (v *VanDerPol) Derivatives(dx []*big.Float, s []taylor.Jet, k int) error {
	x, y := s[0], s[1]
	v.x2[k].Set(taylor.Square(x, k))
	v.x2y[k].Set(taylor.Product(v.x2, y, k))

	dx[0].Set(y[k])

	dx[1].Sub(y[k], v.x2y[k])
	dx[1].Mul(dx[1], v.get("mu"))
	dx[1].Sub(dx[1], x[k])
	return nil
}
