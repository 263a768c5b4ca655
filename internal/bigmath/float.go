package bigmath

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"sync"

	"github.com/ALTree/bigfloat"
)

// guard is the number of extra mantissa bits carried by intermediate results.
const guard = 64

func newF(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

// NewFloat creates a new big.Float element with prec bits of precision.
// Valid types for x are int, int64, uint, uint64, float64, string, *big.Int,
// *big.Rat and *big.Float.
func NewFloat(x interface{}, prec uint) *big.Float {
	y := newF(prec)
	if x == nil {
		return y
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case float64:
		y.SetFloat64(x)
	case string:
		v, err := Parse(x, prec)
		if err != nil {
			panic(err)
		}
		y.Set(v)
	case *big.Int:
		y.SetInt(x)
	case *big.Rat:
		y.SetRat(x)
	case *big.Float:
		y.Set(x)
	default:
		panic(fmt.Errorf("bigmath: invalid x.(type) %T", x))
	}
	return y
}

// Parse reads a decimal ("1.5", "-2e-30") or rational ("8/3") number with
// prec bits of precision. Rationals are rounded once, so parameters such as
// 8/3 are exact to the working precision.
func Parse(s string, prec uint) (*big.Float, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("bigmath: empty number")
	}
	if strings.Contains(s, "/") {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, fmt.Errorf("bigmath: invalid rational %q", s)
		}
		return newF(prec).SetRat(r), nil
	}
	f, _, err := big.ParseFloat(s, 10, prec, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("bigmath: invalid number %q: %w", s, err)
	}
	if f.IsInf() {
		return nil, fmt.Errorf("bigmath: infinite value %q", s)
	}
	return f, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string, prec uint) *big.Float {
	f, err := Parse(s, prec)
	if err != nil {
		panic(err)
	}
	return f
}

var piCache struct {
	sync.Mutex
	prec uint
	pi   *big.Float
}

// Pi returns π with prec bits of precision.
func Pi(prec uint) *big.Float {
	piCache.Lock()
	defer piCache.Unlock()
	if piCache.pi == nil || piCache.prec < prec {
		piCache.pi = gaussLegendre(prec + guard)
		piCache.prec = prec
	}
	return newF(prec).Set(piCache.pi)
}

// gaussLegendre computes π by the Gauss-Legendre iteration, which doubles
// the number of correct digits each round.
func gaussLegendre(prec uint) *big.Float {
	a := NewFloat(1, prec)
	b := newF(prec).Sqrt(NewFloat(0.5, prec))
	t := NewFloat(0.25, prec)
	p := NewFloat(1, prec)
	an, d := newF(prec), newF(prec)

	rounds := int(math.Log2(float64(prec))) + 2
	for i := 0; i < rounds; i++ {
		an.Add(a, b)
		an.SetMantExp(an, -1)
		b.Mul(a, b)
		b.Sqrt(b)
		d.Sub(a, an)
		d.Mul(d, d)
		d.Mul(d, p)
		t.Sub(t, d)
		a.Set(an)
		p.SetMantExp(p, 1)
	}

	pi := newF(prec).Add(a, b)
	pi.Mul(pi, pi)
	t.SetMantExp(t, 2)
	return pi.Quo(pi, t)
}

// Round returns x rounded half away from zero to an integer.
func Round(x *big.Float) *big.Int {
	r := newF(x.Prec() + 1).Set(x)
	half := NewFloat(0.5, r.Prec())
	if r.Sign() >= 0 {
		r.Add(r, half)
	} else {
		r.Sub(r, half)
	}
	i, _ := r.Int(nil)
	return i
}

// Abs returns |x| at the precision of x.
func Abs(x *big.Float) *big.Float {
	return newF(x.Prec()).Abs(x)
}

// IsFinite reports whether x is neither +Inf nor -Inf.
func IsFinite(x *big.Float) bool {
	return x != nil && !x.IsInf()
}

// Digits returns the number of significant decimal digits carried by prec
// mantissa bits.
func Digits(prec uint) int {
	return int(float64(prec) * math.Log10(2))
}

// Tolerance returns 10^-(Digits(prec)-slack), the residual expected from a
// computation that loses about slack decimal digits.
func Tolerance(prec uint, slack int) *big.Float {
	n := Digits(prec) - slack
	if n < 1 {
		n = 1
	}
	return MustParse(fmt.Sprintf("1e-%d", n), prec)
}

// Log10 returns an approximation of log10|x|, valid far outside the float64
// exponent range. Zero maps to -Inf.
func Log10(x *big.Float) float64 {
	if x.Sign() == 0 {
		return math.Inf(-1)
	}
	mant := new(big.Float)
	exp := x.MantExp(mant)
	m, _ := mant.Float64()
	return (float64(exp) + math.Log2(math.Abs(m))) * math.Log10(2)
}

// Exp returns e^x with the precision of x.
func Exp(x *big.Float) *big.Float {
	return bigfloat.Exp(x)
}

// Log returns ln x with the precision of x. It panics if x < 0.
func Log(x *big.Float) *big.Float {
	return bigfloat.Log(x)
}

// Pow returns x^y with the precision of x. It panics if x < 0.
func Pow(x, y *big.Float) *big.Float {
	return bigfloat.Pow(x, y)
}

// Sqrt returns √x with the precision of x. It panics if x < 0.
func Sqrt(x *big.Float) *big.Float {
	return newF(x.Prec()).Sqrt(x)
}
