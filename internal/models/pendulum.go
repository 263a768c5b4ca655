package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

// Pendulum is a rigid pendulum with optional viscous damping.
//
//	dθ/dt = ω
//	dω/dt = -(g/L) sin θ - b/(mL²) ω
type Pendulum struct {
	*Params
	scratch
	sin, cos taylor.Jet
	w2, gam  *big.Float
}

func NewPendulum() *Pendulum {
	return &Pendulum{Params: newParams("mass", "1", "length", "1", "damping", "0", "gravity", "9.81")}
}

func (p *Pendulum) Name() string     { return "pendulum" }
func (p *Pendulum) Dim() int         { return 2 }
func (p *Pendulum) Labels() []string { return []string{"theta", "omega"} }

func (p *Pendulum) DefaultState(prec uint) []*big.Float { return state(prec, "1", "0") }

func (p *Pendulum) Prepare(n int, prec uint) {
	p.setup(n, prec)
	p.load(prec)
	p.sin, p.cos = p.jet(), p.jet()

	m, l := p.get("mass"), p.get("length")
	p.w2 = newF(prec).Quo(p.get("gravity"), l)
	p.gam = newF(prec).Mul(m, l)
	p.gam.Mul(p.gam, l)
	p.gam.Quo(p.get("damping"), p.gam)
}

func (p *Pendulum) Derivatives(dx []*big.Float, s []taylor.Jet, k int) error {
	theta, omega := s[0], s[1]
	if err := taylor.SinCos(p.sin, p.cos, theta, k, true); err != nil {
		return err
	}
	t := newF(p.prec)

	dx[0].Set(omega[k])

	dx[1].Mul(p.w2, p.sin[k])
	dx[1].Add(dx[1], t.Mul(p.gam, omega[k]))
	dx[1].Neg(dx[1])
	return nil
}

// Energy returns ½m(Lω)² + mgL(1 - cos θ).
func (p *Pendulum) Energy(s []*big.Float) *big.Float {
	prec := s[0].Prec()
	m, l, g := p.at("mass", prec), p.at("length", prec), p.at("gravity", prec)

	v := newF(prec).Mul(l, s[1])
	ke := newF(prec).Mul(v, v)
	ke.Mul(ke, m)
	ke.SetMantExp(ke, -1)

	pe := newF(prec).Sub(bigmath.NewFloat(1, prec), bigmath.Cos(s[0]))
	pe.Mul(pe, m)
	pe.Mul(pe, g)
	pe.Mul(pe, l)
	return ke.Add(ke, pe)
}
