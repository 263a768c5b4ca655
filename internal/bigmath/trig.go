package bigmath

import "math/big"

const (
	// sinCosHalvings is the number of argument halvings applied before the
	// sine/cosine series; each one costs a bit and a doubling step.
	sinCosHalvings = 10
	atanHalvings   = 10
)

// SinCos returns sin x and cos x with the precision of x.
//
// The argument is reduced modulo 2π, scaled by 2^-sinCosHalvings, expanded
// as a Taylor series and brought back with the double-angle formulas.
func SinCos(x *big.Float) (sin, cos *big.Float) {
	prec := x.Prec()
	if x.Sign() == 0 {
		return newF(prec), NewFloat(1, prec)
	}
	if x.IsInf() {
		panic("bigmath: sin/cos of infinite value")
	}

	wp := prec + guard + sinCosHalvings
	if e := x.MantExp(nil); e > 0 {
		wp += uint(e)
	}

	r := newF(wp).Set(x)
	if r.MantExp(nil) > 1 {
		twoPi := Pi(wp)
		twoPi.SetMantExp(twoPi, 1)
		n := newF(wp).Quo(r, twoPi)
		n.SetInt(Round(n))
		r.Sub(r, n.Mul(n, twoPi))
	}
	if r.Sign() == 0 {
		return newF(prec), NewFloat(1, prec)
	}
	r.SetMantExp(r, -sinCosHalvings)

	s, c := sinCosSeries(r, wp)
	ns, tmp := newF(wp), newF(wp)
	for i := 0; i < sinCosHalvings; i++ {
		ns.Mul(s, c)
		ns.SetMantExp(ns, 1)
		tmp.Sub(c, s)
		c.Add(c, s)
		c.Mul(c, tmp)
		s.Set(ns)
	}
	return newF(prec).Set(s), newF(prec).Set(c)
}

func sinCosSeries(r *big.Float, wp uint) (sin, cos *big.Float) {
	r2 := newF(wp).Mul(r, r)
	d := newF(wp)

	sin = newF(wp).Set(r)
	term := newF(wp).Set(r)
	for n := int64(1); ; n++ {
		term.Mul(term, r2)
		term.Quo(term, d.SetInt64(2*n*(2*n+1)))
		term.Neg(term)
		if term.Sign() == 0 || term.MantExp(nil) < sin.MantExp(nil)-int(wp) {
			break
		}
		sin.Add(sin, term)
	}

	cos = NewFloat(1, wp)
	term.SetInt64(1)
	for n := int64(1); ; n++ {
		term.Mul(term, r2)
		term.Quo(term, d.SetInt64((2*n-1)*(2*n)))
		term.Neg(term)
		if term.Sign() == 0 || term.MantExp(nil) < -int(wp) {
			break
		}
		cos.Add(cos, term)
	}
	return sin, cos
}

// Sin returns sin x with the precision of x.
func Sin(x *big.Float) *big.Float {
	s, _ := SinCos(x)
	return s
}

// Cos returns cos x with the precision of x.
func Cos(x *big.Float) *big.Float {
	_, c := SinCos(x)
	return c
}

// Tan returns tan x with the precision of x.
func Tan(x *big.Float) *big.Float {
	s, c := SinCos(x)
	return s.Quo(s, c)
}

// SinhCosh returns sinh x and cosh x with the precision of x.
func SinhCosh(x *big.Float) (sinh, cosh *big.Float) {
	prec := x.Prec()
	if x.Sign() == 0 {
		return newF(prec), NewFloat(1, prec)
	}

	// e^x - e^-x cancels for small x; carry the lost bits.
	wp := prec + guard
	if e := x.MantExp(nil); e < 0 {
		wp += uint(-e)
	}

	ex := Exp(newF(wp).Set(x))
	inv := newF(wp).Quo(NewFloat(1, wp), ex)

	sinh = newF(wp).Sub(ex, inv)
	sinh.SetMantExp(sinh, -1)
	cosh = newF(wp).Add(ex, inv)
	cosh.SetMantExp(cosh, -1)
	return newF(prec).Set(sinh), newF(prec).Set(cosh)
}

// Sinh returns sinh x with the precision of x.
func Sinh(x *big.Float) *big.Float {
	s, _ := SinhCosh(x)
	return s
}

// Cosh returns cosh x with the precision of x.
func Cosh(x *big.Float) *big.Float {
	_, c := SinhCosh(x)
	return c
}

// Tanh returns tanh x with the precision of x.
func Tanh(x *big.Float) *big.Float {
	s, c := SinhCosh(x)
	return s.Quo(s, c)
}

// Atan returns atan x in (-π/2, π/2) with the precision of x.
//
// atan x = 2 atan(x / (1 + √(1+x²))) is applied atanHalvings times before
// the alternating series, which then converges quickly.
func Atan(x *big.Float) *big.Float {
	prec := x.Prec()
	if x.Sign() == 0 {
		return newF(prec)
	}

	wp := prec + guard + atanHalvings
	if e := x.MantExp(nil); e < 0 {
		wp += uint(-e)
	}
	one := NewFloat(1, wp)
	y := newF(wp).Set(x)
	t := newF(wp)
	for i := 0; i < atanHalvings; i++ {
		t.Mul(y, y)
		t.Add(t, one)
		t.Sqrt(t)
		t.Add(t, one)
		y.Quo(y, t)
	}

	y2 := newF(wp).Mul(y, y)
	sum := newF(wp).Set(y)
	pow := newF(wp).Set(y)
	term, d := newF(wp), newF(wp)
	for n := int64(3); ; n += 2 {
		pow.Mul(pow, y2)
		pow.Neg(pow)
		term.Quo(pow, d.SetInt64(n))
		if term.Sign() == 0 || term.MantExp(nil) < sum.MantExp(nil)-int(wp) {
			break
		}
		sum.Add(sum, term)
	}
	sum.SetMantExp(sum, atanHalvings)
	return newF(prec).Set(sum)
}

// Asin returns asin x in [-π/2, π/2] with the precision of x. It panics if
// |x| > 1.
func Asin(x *big.Float) *big.Float {
	prec := x.Prec()
	wp := prec + guard
	one := NewFloat(1, wp)
	a := newF(wp).Abs(x)
	switch a.Cmp(one) {
	case 1:
		panic("bigmath: asin argument out of range")
	case 0:
		halfPi := Pi(prec)
		halfPi.SetMantExp(halfPi, -1)
		if x.Sign() < 0 {
			halfPi.Neg(halfPi)
		}
		return halfPi
	}

	// √((1-x)(1+x)) avoids the cancellation in 1-x² near |x| = 1.
	xs := newF(wp).Set(x)
	lo := newF(wp).Sub(one, xs)
	hi := newF(wp).Add(one, xs)
	lo.Mul(lo, hi)
	lo.Sqrt(lo)
	return newF(prec).Set(Atan(xs.Quo(xs, lo)))
}

// Acos returns acos x in [0, π] with the precision of x. It panics if
// |x| > 1.
func Acos(x *big.Float) *big.Float {
	prec := x.Prec()
	wp := prec + guard
	one := NewFloat(1, wp)
	a := newF(wp).Abs(x)
	if a.Cmp(one) > 0 {
		panic("bigmath: acos argument out of range")
	}
	xs := newF(wp).Set(x)
	if xs.Cmp(newF(wp).Neg(one)) == 0 {
		return Pi(prec)
	}

	// acos x = 2 atan √((1-x)/(1+x)), accurate at both ends of the range.
	lo := newF(wp).Sub(one, xs)
	hi := newF(wp).Add(one, xs)
	lo.Quo(lo, hi)
	lo.Sqrt(lo)
	r := Atan(lo)
	r.SetMantExp(r, 1)
	return newF(prec).Set(r)
}

// Asinh returns asinh x with the precision of x.
func Asinh(x *big.Float) *big.Float {
	prec := x.Prec()
	if x.Sign() == 0 {
		return newF(prec)
	}
	wp := prec + guard
	if e := x.MantExp(nil); e < 0 {
		wp += uint(-e)
	}
	a := newF(wp).Abs(x)
	t := newF(wp).Mul(a, a)
	t.Add(t, NewFloat(1, wp))
	t.Sqrt(t)
	t.Add(t, a)
	r := Log(t)
	if x.Sign() < 0 {
		r.Neg(r)
	}
	return newF(prec).Set(r)
}

// Acosh returns acosh x with the precision of x. It panics if x < 1.
func Acosh(x *big.Float) *big.Float {
	prec := x.Prec()
	wp := prec + guard
	one := NewFloat(1, wp)
	xs := newF(wp).Set(x)
	switch xs.Cmp(one) {
	case -1:
		panic("bigmath: acosh argument out of range")
	case 0:
		return newF(prec)
	}
	t := newF(wp).Sub(xs, one)
	u := newF(wp).Add(xs, one)
	t.Mul(t, u)
	t.Sqrt(t)
	t.Add(t, xs)
	return newF(prec).Set(Log(t))
}

// Atanh returns atanh x with the precision of x. It panics if |x| >= 1.
func Atanh(x *big.Float) *big.Float {
	prec := x.Prec()
	if x.Sign() == 0 {
		return newF(prec)
	}
	wp := prec + guard
	if e := x.MantExp(nil); e < 0 {
		wp += uint(-e)
	}
	one := NewFloat(1, wp)
	xs := newF(wp).Set(x)
	if newF(wp).Abs(xs).Cmp(one) >= 0 {
		panic("bigmath: atanh argument out of range")
	}
	num := newF(wp).Add(one, xs)
	den := newF(wp).Sub(one, xs)
	num.Quo(num, den)
	r := Log(num)
	r.SetMantExp(r, -1)
	return newF(prec).Set(r)
}
