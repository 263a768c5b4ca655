package metrics

import (
	"math/big"
)

// Stability is the fraction of observed states whose components all stay
// within ±threshold. A value below 1 flags an escaping trajectory.
type Stability struct {
	bound   *big.Float
	abs     big.Float
	outside int
	total   int
	escaped int
}

func NewStability(threshold float64) *Stability {
	return &Stability{bound: big.NewFloat(threshold), escaped: -1}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) OnStep(step int, t *big.Float, x []*big.Float) {
	s.total++
	for _, v := range x {
		if s.abs.Abs(v).Cmp(s.bound) > 0 {
			s.outside++
			if s.escaped < 0 {
				s.escaped = step
			}
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.total == 0 {
		return 1
	}
	return float64(s.total-s.outside) / float64(s.total)
}

// EscapedAt returns the first step whose state left the bound, or -1.
func (s *Stability) EscapedAt() int { return s.escaped }

func (s *Stability) Reset() {
	s.outside, s.total, s.escaped = 0, 0, -1
}
