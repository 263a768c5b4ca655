package models

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/taylor"
)

// Halvorsen implements the cyclically symmetric Halvorsen attractor.
//
//	dx/dt = -ax - 4y - 4z - y²
//
// and its cyclic permutations.
type Halvorsen struct {
	*Params
	scratch
}

func NewHalvorsen() *Halvorsen {
	return &Halvorsen{Params: newParams("a", "1.89")}
}

func (h *Halvorsen) Name() string     { return "halvorsen" }
func (h *Halvorsen) Dim() int         { return 3 }
func (h *Halvorsen) Labels() []string { return []string{"x", "y", "z"} }

func (h *Halvorsen) DefaultState(prec uint) []*big.Float {
	return state(prec, "-1.48", "-1.51", "2.04")
}

func (h *Halvorsen) Prepare(n int, prec uint) {
	h.setup(n, prec)
	h.load(prec)
}

func (h *Halvorsen) Derivatives(dx []*big.Float, s []taylor.Jet, k int) error {
	a := h.get("a")
	t := newF(h.prec)
	for i := range dx {
		y, z := s[(i+1)%3], s[(i+2)%3]
		t.Add(y[k], z[k])
		t.SetMantExp(t, 2)
		dx[i].Mul(a, s[i][k])
		dx[i].Add(dx[i], t)
		dx[i].Add(dx[i], taylor.Square(y, k))
		dx[i].Neg(dx[i])
	}
	return nil
}
