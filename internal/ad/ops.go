package ad

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/taylor"
)

// Linear operations act coefficient by coefficient, so dst may alias an
// operand. Mul and Sqr work through a temporary for the same reason.

// Add sets dst = u + v.
func (s *Session) Add(dst, u, v taylor.Jet) taylor.Jet {
	s.fits(dst, u, v)
	for k := range dst {
		dst[k].Add(u[k], v[k])
	}
	return dst
}

// Sub sets dst = u - v.
func (s *Session) Sub(dst, u, v taylor.Jet) taylor.Jet {
	s.fits(dst, u, v)
	for k := range dst {
		dst[k].Sub(u[k], v[k])
	}
	return dst
}

// Neg sets dst = -u.
func (s *Session) Neg(dst, u taylor.Jet) taylor.Jet {
	s.fits(dst, u)
	for k := range dst {
		dst[k].Neg(u[k])
	}
	return dst
}

// Scale sets dst = a·u.
func (s *Session) Scale(dst, u taylor.Jet, a *big.Float) taylor.Jet {
	s.fits(dst, u)
	for k := range dst {
		dst[k].Mul(u[k], a)
	}
	return dst
}

// Shift sets dst = u + a. Only the constant coefficient moves.
func (s *Session) Shift(dst, u taylor.Jet, a *big.Float) taylor.Jet {
	s.fits(dst, u)
	dst.Set(u)
	dst[0].Add(dst[0], a)
	return dst
}

// Abs sets dst = |u|, taking the sign from the leading non-zero coefficient.
// The result is not differentiable where u vanishes identically at the
// expansion point, and the branch chosen there is u's own.
func (s *Session) Abs(dst, u taylor.Jet) taylor.Jet {
	s.fits(dst, u)
	neg := false
	for _, c := range u {
		if c.Sign() != 0 {
			neg = c.Sign() < 0
			break
		}
	}
	if neg {
		return s.Neg(dst, u)
	}
	return dst.Set(u)
}

// Mul sets dst = u·v.
func (s *Session) Mul(dst, u, v taylor.Jet) taylor.Jet {
	s.fits(dst, u, v)
	tmp := make(taylor.Jet, s.order)
	for k := range tmp {
		tmp[k] = taylor.Product(u, v, k)
	}
	return dst.Set(tmp)
}

// Sqr sets dst = u².
func (s *Session) Sqr(dst, u taylor.Jet) taylor.Jet {
	s.fits(dst, u)
	tmp := make(taylor.Jet, s.order)
	for k := range tmp {
		tmp[k] = taylor.Square(u, k)
	}
	return dst.Set(tmp)
}

// The operations below are self-referential: coefficient k of the result
// depends on its own lower coefficients. dst must not alias an operand, and
// a failed precondition leaves dst partially written.

// Quo sets dst = u/v.
func (s *Session) Quo(dst, u, v taylor.Jet) (taylor.Jet, error) {
	s.fits(dst, u, v)
	return dst, s.expand(func(k int) error { return taylor.Quotient(dst, u, v, k) })
}

// Inv sets dst = 1/v.
func (s *Session) Inv(dst, v taylor.Jet) (taylor.Jet, error) {
	s.fits(dst, v)
	return dst, s.expand(func(k int) error { return taylor.Reciprocal(dst, v, k) })
}

// Sqrt sets dst = √u.
func (s *Session) Sqrt(dst, u taylor.Jet) (taylor.Jet, error) {
	s.fits(dst, u)
	return dst, s.expand(func(k int) error { return taylor.Sqrt(dst, u, k) })
}

// Pow sets dst = u^a for a real exponent a.
func (s *Session) Pow(dst, u taylor.Jet, a *big.Float) (taylor.Jet, error) {
	s.fits(dst, u)
	return dst, s.expand(func(k int) error { return taylor.Power(dst, u, a, k) })
}

// Exp sets dst = exp(u).
func (s *Session) Exp(dst, u taylor.Jet) (taylor.Jet, error) {
	s.fits(dst, u)
	return dst, s.expand(func(k int) error { return taylor.Exp(dst, u, k) })
}

// Ln sets dst = ln(u).
func (s *Session) Ln(dst, u taylor.Jet) (taylor.Jet, error) {
	s.fits(dst, u)
	return dst, s.expand(func(k int) error { return taylor.Ln(dst, u, k) })
}

func (s *Session) pair(a, b, u taylor.Jet, trig bool, rec func(a, b, u taylor.Jet, k int, trig bool) error) (taylor.Jet, taylor.Jet, error) {
	s.fits(a, b, u)
	err := s.expand(func(k int) error { return rec(a, b, u, k, trig) })
	return a, b, err
}

// SinCos sets sin = sin u and cos = cos u.
func (s *Session) SinCos(sin, cos, u taylor.Jet) (taylor.Jet, taylor.Jet, error) {
	return s.pair(sin, cos, u, true, taylor.SinCos)
}

// SinhCosh sets sinh = sinh u and cosh = cosh u.
func (s *Session) SinhCosh(sinh, cosh, u taylor.Jet) (taylor.Jet, taylor.Jet, error) {
	return s.pair(sinh, cosh, u, false, taylor.SinCos)
}

// TanSec2 sets tan = tan u and sec2 = 1 + tan² u.
func (s *Session) TanSec2(tan, sec2, u taylor.Jet) (taylor.Jet, taylor.Jet, error) {
	return s.pair(tan, sec2, u, true, taylor.TanSec2)
}

// TanhSech2 sets tanh = tanh u and sech2 = 1 - tanh² u.
func (s *Session) TanhSech2(tanh, sech2, u taylor.Jet) (taylor.Jet, taylor.Jet, error) {
	return s.pair(tanh, sech2, u, false, taylor.TanSec2)
}

// inverse runs an inverse-function recurrence with a session-owned
// auxiliary jet for the companion function.
func (s *Session) inverse(dst, x taylor.Jet, trig bool, rec func(u, aux, x taylor.Jet, k int, trig bool) error) (taylor.Jet, error) {
	s.fits(dst, x)
	aux := s.Jet()
	return dst, s.expand(func(k int) error { return rec(dst, aux, x, k, trig) })
}

// Sin returns sin u in dst.
func (s *Session) Sin(dst, u taylor.Jet) (taylor.Jet, error) {
	_, _, err := s.SinCos(dst, s.Jet(), u)
	return dst, err
}

// Cos returns cos u in dst.
func (s *Session) Cos(dst, u taylor.Jet) (taylor.Jet, error) {
	_, _, err := s.SinCos(s.Jet(), dst, u)
	return dst, err
}

// Tan returns tan u in dst.
func (s *Session) Tan(dst, u taylor.Jet) (taylor.Jet, error) {
	_, _, err := s.TanSec2(dst, s.Jet(), u)
	return dst, err
}

// Tanh returns tanh u in dst.
func (s *Session) Tanh(dst, u taylor.Jet) (taylor.Jet, error) {
	_, _, err := s.TanhSech2(dst, s.Jet(), u)
	return dst, err
}

// Asin sets dst = asin x. |x[0]| must be below 1.
func (s *Session) Asin(dst, x taylor.Jet) (taylor.Jet, error) {
	return s.inverse(dst, x, true, taylor.Asin)
}

// Acos sets dst = acos x. |x[0]| must be below 1.
func (s *Session) Acos(dst, x taylor.Jet) (taylor.Jet, error) {
	return s.inverse(dst, x, true, taylor.Acos)
}

// Atan sets dst = atan x.
func (s *Session) Atan(dst, x taylor.Jet) (taylor.Jet, error) {
	return s.inverse(dst, x, true, taylor.Atan)
}

// Asinh sets dst = asinh x.
func (s *Session) Asinh(dst, x taylor.Jet) (taylor.Jet, error) {
	return s.inverse(dst, x, false, taylor.Asin)
}

// Acosh sets dst = acosh x. x[0] must exceed 1.
func (s *Session) Acosh(dst, x taylor.Jet) (taylor.Jet, error) {
	return s.inverse(dst, x, false, taylor.Acos)
}

// Atanh sets dst = atanh x. |x[0]| must be below 1.
func (s *Session) Atanh(dst, x taylor.Jet) (taylor.Jet, error) {
	return s.inverse(dst, x, false, taylor.Atan)
}
