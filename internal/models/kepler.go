package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

// Kepler is the planar two-body problem in relative coordinates.
//
//	dr/dt = v
//	dv/dt = -μ r / |r|³
//
// |r|⁻³ is expanded with the power recurrence, so a collision (|r| = 0)
// fails the run with a domain error.
type Kepler struct {
	*Params
	scratch
	r2, inv3 taylor.Jet
	exp      *big.Float
}

func NewKepler() *Kepler {
	return &Kepler{Params: newParams("mu", "1")}
}

func (m *Kepler) Name() string     { return "kepler" }
func (m *Kepler) Dim() int         { return 4 }
func (m *Kepler) Labels() []string { return []string{"x", "y", "vx", "vy"} }

// DefaultState is an ellipse of eccentricity 0.44 starting at pericentre.
func (m *Kepler) DefaultState(prec uint) []*big.Float {
	return state(prec, "1", "0", "0", "1.2")
}

func (m *Kepler) Prepare(n int, prec uint) {
	m.setup(n, prec)
	m.load(prec)
	m.r2, m.inv3 = m.jet(), m.jet()
	m.exp = m.num("-3/2")
}

func (m *Kepler) Derivatives(dx []*big.Float, s []taylor.Jet, k int) error {
	x, y, vx, vy := s[0], s[1], s[2], s[3]

	m.r2[k].Add(taylor.Square(x, k), taylor.Square(y, k))
	if err := taylor.Power(m.inv3, m.r2, m.exp, k); err != nil {
		return err
	}
	mu := m.get("mu")

	dx[0].Set(vx[k])
	dx[1].Set(vy[k])
	dx[2].Mul(mu, taylor.Product(x, m.inv3, k))
	dx[2].Neg(dx[2])
	dx[3].Mul(mu, taylor.Product(y, m.inv3, k))
	dx[3].Neg(dx[3])
	return nil
}

// Energy returns ½|v|² - μ/|r|.
func (m *Kepler) Energy(s []*big.Float) *big.Float {
	prec := s[0].Prec()
	r := newF(prec).Mul(s[0], s[0])
	r.Add(r, newF(prec).Mul(s[1], s[1]))
	r = bigmath.Sqrt(r)

	e := newF(prec).Mul(s[2], s[2])
	e.Add(e, newF(prec).Mul(s[3], s[3]))
	e.SetMantExp(e, -1)
	return e.Sub(e, r.Quo(m.at("mu", prec), r))
}

// AngularMomentum returns x·vy - y·vx.
func (m *Kepler) AngularMomentum(s []*big.Float) *big.Float {
	prec := s[0].Prec()
	l := newF(prec).Mul(s[0], s[3])
	return l.Sub(l, newF(prec).Mul(s[1], s[2]))
}
