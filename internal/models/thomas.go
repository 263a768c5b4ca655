package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/taylor"
)

// Thomas implements Thomas' cyclically symmetric attractor.
//
//	dx/dt = sin y - bx
//	dy/dt = sin z - by
//	dz/dt = sin x - bz
type Thomas struct {
	*Params
	scratch
	sin, cos [3]taylor.Jet
}

func NewThomas() *Thomas {
	return &Thomas{Params: newParams("b", "0.208186")}
}

func (m *Thomas) Name() string     { return "thomas" }
func (m *Thomas) Dim() int         { return 3 }
func (m *Thomas) Labels() []string { return []string{"x", "y", "z"} }

func (m *Thomas) DefaultState(prec uint) []*big.Float { return state(prec, "0.1", "0", "0") }

func (m *Thomas) Prepare(n int, prec uint) {
	m.setup(n, prec)
	m.load(prec)
	for i := range m.sin {
		m.sin[i], m.cos[i] = m.jet(), m.jet()
	}
}

func (m *Thomas) Derivatives(dx []*big.Float, s []taylor.Jet, k int) error {
	for i := range s {
		if err := taylor.SinCos(m.sin[i], m.cos[i], s[i], k, true); err != nil {
			return err
		}
	}
	b := m.get("b")
	t := newF(m.prec)
	for i := range dx {
		next := (i + 1) % 3
		dx[i].Sub(m.sin[next][k], t.Mul(b, s[i][k]))
	}
	return nil
}
