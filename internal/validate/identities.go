package validate

import (
	"math/big"

	"github.com/san-kum/taylorsim/internal/ad"
	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

// evaluator threads the first AD error through an identity so each side can
// be written as a straight sequence of calls.
type evaluator struct {
	s   *ad.Session
	err error
}

func (e *evaluator) jet() taylor.Jet { return e.s.Jet() }

func (e *evaluator) num(v interface{}) *big.Float { return bigmath.NewFloat(v, e.s.Prec()) }

func (e *evaluator) one() taylor.Jet { return e.s.Const(e.num(1)) }

func (e *evaluator) do(j taylor.Jet, err error) taylor.Jet {
	if err != nil {
		if e.err == nil {
			e.err = err
		}
		return e.s.Jet()
	}
	return j
}

func (e *evaluator) do2(a, b taylor.Jet, err error) (taylor.Jet, taylor.Jet) {
	if err != nil {
		if e.err == nil {
			e.err = err
		}
		return e.s.Jet(), e.s.Jet()
	}
	return a, b
}

func (e *evaluator) sincos(x taylor.Jet) (taylor.Jet, taylor.Jet) {
	return e.do2(e.s.SinCos(e.jet(), e.jet(), x))
}

func (e *evaluator) sinhcosh(x taylor.Jet) (taylor.Jet, taylor.Jet) {
	return e.do2(e.s.SinhCosh(e.jet(), e.jet(), x))
}

type condition struct {
	desc  string
	holds func(x0 *big.Float) bool
}

var (
	anywhere = condition{}
	nonzero  = condition{"x ≠ 0", func(x *big.Float) bool { return x.Sign() != 0 }}
	positive = condition{"x > 0", func(x *big.Float) bool { return x.Sign() > 0 }}
	halfPi   = condition{"|x| < π/2", func(x *big.Float) bool {
		hp := bigmath.Pi(x.Prec())
		hp.SetMantExp(hp, -1)
		return bigmath.Abs(x).Cmp(hp) < 0
	}}
	openPi = condition{"0 < x < π", func(x *big.Float) bool {
		return x.Sign() > 0 && x.Cmp(bigmath.Pi(x.Prec())) < 0
	}}
)

type identity struct {
	name string
	expr string
	when condition
	eval func(e *evaluator, x taylor.Jet) (lhs, rhs taylor.Jet)
}

var identities = []identity{
	{"sqr-mul", "x² = x·x", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		return e.s.Sqr(e.jet(), x), e.s.Mul(e.jet(), x, x)
	}},
	{"reciprocal", "x·(1/x) = 1", nonzero, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		r := e.do(e.s.Inv(e.jet(), x))
		return e.s.Mul(r, x, r), e.one()
	}},
	{"quotient", "1÷x = 1/x", nonzero, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		return e.do(e.s.Quo(e.jet(), e.one(), x)), e.do(e.s.Inv(e.jet(), x))
	}},
	{"sqrt", "√x·√x = x", positive, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		r := e.do(e.s.Sqrt(e.jet(), x))
		return e.s.Sqr(r, r), x
	}},
	{"pow-sum", "x^a·x^b = x^(a+b)", positive, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		a := e.do(e.s.Pow(e.jet(), x, e.num("3/4")))
		b := e.do(e.s.Pow(e.jet(), x, e.num("-5/3")))
		return e.s.Mul(a, a, b), e.do(e.s.Pow(e.jet(), x, e.num("-11/12")))
	}},
	{"pow-square", "x^2 = x²", positive, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		return e.do(e.s.Pow(e.jet(), x, e.num(2))), e.s.Sqr(e.jet(), x)
	}},
	{"pow-half", "x^½ = √x", positive, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		return e.do(e.s.Pow(e.jet(), x, e.num("1/2"))), e.do(e.s.Sqrt(e.jet(), x))
	}},
	{"ln-exp", "ln(eˣ) = x", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		ex := e.do(e.s.Exp(e.jet(), x))
		return e.do(e.s.Ln(e.jet(), ex)), x
	}},
	{"exp-ln", "e^(ln x) = x", positive, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		l := e.do(e.s.Ln(e.jet(), x))
		return e.do(e.s.Exp(e.jet(), l)), x
	}},
	{"exp-neg", "eˣ·e⁻ˣ = 1", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		a := e.do(e.s.Exp(e.jet(), x))
		b := e.do(e.s.Exp(e.jet(), e.s.Neg(e.jet(), x)))
		return e.s.Mul(a, a, b), e.one()
	}},
	{"pythagoras", "sin²x + cos²x = 1", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		s, c := e.sincos(x)
		return e.s.Add(s, e.s.Sqr(s, s), e.s.Sqr(c, c)), e.one()
	}},
	{"hyperbolic", "cosh²x - sinh²x = 1", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		s, c := e.sinhcosh(x)
		return e.s.Sub(c, e.s.Sqr(c, c), e.s.Sqr(s, s)), e.one()
	}},
	{"sec-tan", "sec²x - tan²x = 1", halfPi, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		_, c := e.sincos(x)
		sec2 := e.do(e.s.Inv(e.jet(), e.s.Sqr(c, c)))
		t := e.do(e.s.Tan(e.jet(), x))
		return e.s.Sub(sec2, sec2, e.s.Sqr(t, t)), e.one()
	}},
	{"sech-tanh", "sech²x + tanh²x = 1", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		_, c := e.sinhcosh(x)
		sech2 := e.do(e.s.Inv(e.jet(), e.s.Sqr(c, c)))
		t := e.do(e.s.Tanh(e.jet(), x))
		return e.s.Add(sech2, sech2, e.s.Sqr(t, t)), e.one()
	}},
	{"tan-quotient", "tan x = sin x / cos x", halfPi, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		s, c := e.sincos(x)
		return e.do(e.s.Tan(e.jet(), x)), e.do(e.s.Quo(e.jet(), s, c))
	}},
	{"double-angle", "sin 2x = 2 sin x cos x", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		two := e.num(2)
		s2 := e.do(e.s.Sin(e.jet(), e.s.Scale(e.jet(), x, two)))
		s, c := e.sincos(x)
		p := e.s.Mul(s, s, c)
		return s2, e.s.Scale(p, p, two)
	}},
	{"asin-sin", "asin(sin x) = x", halfPi, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		s := e.do(e.s.Sin(e.jet(), x))
		return e.do(e.s.Asin(e.jet(), s)), x
	}},
	{"acos-cos", "acos(cos x) = x", openPi, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		c := e.do(e.s.Cos(e.jet(), x))
		return e.do(e.s.Acos(e.jet(), c)), x
	}},
	{"atan-tan", "atan(tan x) = x", halfPi, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		t := e.do(e.s.Tan(e.jet(), x))
		return e.do(e.s.Atan(e.jet(), t)), x
	}},
	{"asinh-sinh", "asinh(sinh x) = x", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		s, _ := e.sinhcosh(x)
		return e.do(e.s.Asinh(e.jet(), s)), x
	}},
	{"acosh-cosh", "acosh(cosh x) = x", positive, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		_, c := e.sinhcosh(x)
		return e.do(e.s.Acosh(e.jet(), c)), x
	}},
	{"atanh-tanh", "atanh(tanh x) = x", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		t := e.do(e.s.Tanh(e.jet(), x))
		return e.do(e.s.Atanh(e.jet(), t)), x
	}},
	{"derivatives", "k!·x[k]/k! = x[k]", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		return taylor.FromDerivatives(taylor.ToDerivatives(x)), x
	}},
	{"horner-zero", "Σ x[k]·0^k = x[0]", anywhere, func(e *evaluator, x taylor.Jet) (taylor.Jet, taylor.Jet) {
		v, err := taylor.Horner(x, e.num(0))
		if err != nil {
			e.err = err
			return e.jet(), e.jet()
		}
		return e.s.Const(v), e.s.Const(x[0])
	}},
}
