package taylor

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/bigmath"
)

// Trigonometric and hyperbolic functions come in coupled pairs: each member's
// derivative is the other times u'. The trig flag selects circular (true) or
// hyperbolic (false) sign conventions.

func opName(trig bool, circ, hyp string) string {
	if trig {
		return circ
	}
	return hyp
}

func at(j Jet, k int) *big.Float {
	return newF(j.Prec()).Set(j[k])
}

// SinCos sets s[k] and c[k] for s = sin u, c = cos u (or sinh, cosh).
func SinCos(s, c, u Jet, k int, trig bool) error {
	if k == 0 {
		op := opName(trig, "sincos", "sinhcosh")
		if err := checkAlias(op, s, u, c); err != nil {
			return err
		}
		if err := checkAlias(op, c, u); err != nil {
			return err
		}
		var s0, c0 *big.Float
		if trig {
			s0, c0 = bigmath.SinCos(at(u, 0))
		} else {
			s0, c0 = bigmath.SinhCosh(at(u, 0))
		}
		s[0].Set(s0)
		c[0].Set(c0)
		return nil
	}

	s[k].Set(forward(c, u, k))
	ck := forward(s, u, k)
	if trig {
		ck.Neg(ck)
	}
	c[k].Set(ck)
	return nil
}

// TanSec2 sets t[k] and s2[k] for t = tan u, s2 = sec² u = 1 + t² (or
// t = tanh u, s2 = sech² u = 1 - t²). cos u[0] must be non-zero.
func TanSec2(t, s2, u Jet, k int, trig bool) error {
	if k == 0 {
		op := opName(trig, "tan", "tanh")
		if err := checkAlias(op, t, u, s2); err != nil {
			return err
		}
		if err := checkAlias(op, s2, u); err != nil {
			return err
		}
		if trig {
			sin, cos := bigmath.SinCos(at(u, 0))
			if cos.Sign() == 0 {
				return domainErr(op, k, u[0], ErrDomain)
			}
			t[0].Quo(sin, cos)
		} else {
			t[0].Set(bigmath.Tanh(at(u, 0)))
		}
		sq := newF(t.Prec()).Mul(t[0], t[0])
		if trig {
			s2[0].Add(intF(1, s2.Prec()), sq)
		} else {
			s2[0].Sub(intF(1, s2.Prec()), sq)
		}
		return nil
	}

	t[k].Set(forward(s2, u, k))
	sq := Square(t, k)
	if !trig {
		sq.Neg(sq)
	}
	s2[k].Set(sq)
	return nil
}

// Asin sets u[k] and c[k] for u = asin s, c = cos u = √(1-s²) (or
// u = asinh s, c = cosh u = √(1+s²)). The circular form needs |s[0]| < 1.
func Asin(u, c, s Jet, k int, trig bool) error {
	if k == 0 {
		op := opName(trig, "asin", "asinh")
		if err := checkAlias(op, u, s, c); err != nil {
			return err
		}
		if err := checkAlias(op, c, s); err != nil {
			return err
		}
		s0 := at(s, 0)
		sq := newF(c.Prec()).Mul(s0, s0)
		one := intF(1, c.Prec())
		if trig {
			if bigmath.Abs(s0).Cmp(one) >= 0 {
				return domainErr(op, k, s[0], ErrDomain)
			}
			u[0].Set(bigmath.Asin(s0))
			c[0].Sqrt(sq.Sub(one, sq))
		} else {
			u[0].Set(bigmath.Asinh(s0))
			c[0].Sqrt(sq.Add(one, sq))
		}
		return nil
	}

	u[k].Set(backward(s, c, u, k))
	ck := forward(s, u, k)
	if trig {
		ck.Neg(ck)
	}
	c[k].Set(ck)
	return nil
}

// Acos sets u[k] and s[k] for u = acos c, s = sin u = √(1-c²) (or
// u = acosh c, s = sinh u = √(c²-1)). The circular form needs |c[0]| < 1,
// the hyperbolic one c[0] > 1.
func Acos(u, s, c Jet, k int, trig bool) error {
	if k == 0 {
		op := opName(trig, "acos", "acosh")
		if err := checkAlias(op, u, c, s); err != nil {
			return err
		}
		if err := checkAlias(op, s, c); err != nil {
			return err
		}
		c0 := at(c, 0)
		sq := newF(s.Prec()).Mul(c0, c0)
		one := intF(1, s.Prec())
		if trig {
			if bigmath.Abs(c0).Cmp(one) >= 0 {
				return domainErr(op, k, c[0], ErrDomain)
			}
			u[0].Set(bigmath.Acos(c0))
			s[0].Sqrt(sq.Sub(one, sq))
		} else {
			if c0.Cmp(one) <= 0 {
				return domainErr(op, k, c[0], ErrDomain)
			}
			u[0].Set(bigmath.Acosh(c0))
			s[0].Sqrt(sq.Sub(sq, one))
		}
		return nil
	}

	uk := newF(u.Prec())
	if trig {
		uk.Add(c[k], chain(s, u, k, k-1))
		uk.Neg(uk)
	} else {
		uk.Sub(c[k], chain(s, u, k, k-1))
	}
	u[k].Quo(uk, s[0])
	s[k].Set(forward(c, u, k))
	return nil
}

// Atan sets u[k] and s2[k] for u = atan t, s2 = 1 + t² (or u = atanh t,
// s2 = 1 - t²). The hyperbolic form needs |t[0]| < 1.
func Atan(u, s2, t Jet, k int, trig bool) error {
	if k == 0 {
		op := opName(trig, "atan", "atanh")
		if err := checkAlias(op, u, t, s2); err != nil {
			return err
		}
		if err := checkAlias(op, s2, t); err != nil {
			return err
		}
		t0 := at(t, 0)
		sq := newF(s2.Prec()).Mul(t0, t0)
		one := intF(1, s2.Prec())
		if trig {
			u[0].Set(bigmath.Atan(t0))
			s2[0].Add(one, sq)
		} else {
			if bigmath.Abs(t0).Cmp(one) >= 0 {
				return domainErr(op, k, t[0], ErrDomain)
			}
			u[0].Set(bigmath.Atanh(t0))
			s2[0].Sub(one, sq)
		}
		return nil
	}

	sq := Square(t, k)
	if !trig {
		sq.Neg(sq)
	}
	s2[k].Set(sq)
	u[k].Set(backward(t, s2, u, k))
	return nil
}
