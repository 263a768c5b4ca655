package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

// DoubleWell models a particle in the bistable potential A(x² - B)².
//
//	dx/dt = v
//	dv/dt = (-4Ax(x² - B) - δv) / m
type DoubleWell struct {
	*Params
	scratch
	x2, x3 taylor.Jet
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{Params: newParams("A", "1", "B", "1", "mass", "1", "damping", "0")}
}

func (d *DoubleWell) Name() string     { return "doublewell" }
func (d *DoubleWell) Dim() int         { return 2 }
func (d *DoubleWell) Labels() []string { return []string{"x", "v"} }

// DefaultState starts just outside the right-hand minimum at √B.
func (d *DoubleWell) DefaultState(prec uint) []*big.Float {
	x := bigmath.Sqrt(d.at("B", prec))
	x.Add(x, bigmath.MustParse("0.1", prec))
	return []*big.Float{x, newF(prec)}
}

func (d *DoubleWell) Prepare(n int, prec uint) {
	d.setup(n, prec)
	d.load(prec)
	d.x2, d.x3 = d.jet(), d.jet()
}

func (d *DoubleWell) Derivatives(dx []*big.Float, s []taylor.Jet, k int) error {
	x, v := s[0], s[1]
	d.x2[k].Set(taylor.Square(x, k))
	d.x3[k].Set(taylor.Product(d.x2, x, k))
	t := newF(d.prec)

	dx[0].Set(v[k])

	dx[1].Mul(d.get("B"), x[k])
	dx[1].Sub(d.x3[k], dx[1])
	dx[1].Mul(dx[1], d.get("A"))
	dx[1].SetMantExp(dx[1], 2)
	dx[1].Add(dx[1], t.Mul(d.get("damping"), v[k]))
	dx[1].Neg(dx[1])
	dx[1].Quo(dx[1], d.get("mass"))
	return nil
}

// Energy returns ½mv² + A(x² - B)².
func (d *DoubleWell) Energy(s []*big.Float) *big.Float {
	prec := s[0].Prec()
	x, v := s[0], s[1]

	ke := newF(prec).Mul(v, v)
	ke.Mul(ke, d.at("mass", prec))
	ke.SetMantExp(ke, -1)

	w := newF(prec).Mul(x, x)
	w.Sub(w, d.at("B", prec))
	w.Mul(w, w)
	w.Mul(w, d.at("A", prec))
	return ke.Add(ke, w)
}
