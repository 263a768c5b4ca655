package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/taylor"
)

// Duffing implements the unforced Duffing oscillator.
//
//	dx/dt = v
//	dv/dt = -δv - αx - βx³
//
// With δ = 0 the energy ½v² + ½αx² + ¼βx⁴ is conserved.
type Duffing struct {
	*Params
	scratch
	x2, x3 taylor.Jet
}

func NewDuffing() *Duffing {
	return &Duffing{Params: newParams("alpha", "-1", "beta", "1", "delta", "0")}
}

func (d *Duffing) Name() string     { return "duffing" }
func (d *Duffing) Dim() int         { return 2 }
func (d *Duffing) Labels() []string { return []string{"x", "v"} }

func (d *Duffing) DefaultState(prec uint) []*big.Float { return state(prec, "1.5", "0") }

func (d *Duffing) Prepare(n int, prec uint) {
	d.setup(n, prec)
	d.load(prec)
	d.x2, d.x3 = d.jet(), d.jet()
}

func (d *Duffing) Derivatives(dx []*big.Float, s []taylor.Jet, k int) error {
	x, v := s[0], s[1]
	d.x2[k].Set(taylor.Square(x, k))
	d.x3[k].Set(taylor.Product(d.x2, x, k))
	t := newF(d.prec)

	dx[0].Set(v[k])

	dx[1].Mul(d.get("delta"), v[k])
	dx[1].Add(dx[1], t.Mul(d.get("alpha"), x[k]))
	dx[1].Add(dx[1], t.Mul(d.get("beta"), d.x3[k]))
	dx[1].Neg(dx[1])
	return nil
}

func (d *Duffing) Energy(s []*big.Float) *big.Float {
	prec := s[0].Prec()
	x, v := s[0], s[1]
	x2 := newF(prec).Mul(x, x)
	half := newF(prec).SetFloat64(0.5)

	e := newF(prec).Mul(v, v)
	e.Add(e, newF(prec).Mul(d.at("alpha", prec), x2))
	x4 := newF(prec).Mul(x2, x2)
	x4.Mul(x4, d.at("beta", prec))
	x4.Mul(x4, half)
	e.Add(e, x4)
	return e.Mul(e, half)
}
