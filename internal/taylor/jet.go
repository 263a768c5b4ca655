package taylor

import (
	"fmt"
	"math/big"
	"strings"
)

// Jet is a truncated Taylor series: Jet[k] is the k-th derivative at the
// expansion point divided by k!. Jets are fixed-size buffers owned by the
// caller that allocated them.
type Jet []*big.Float

func newF(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

// NewJet returns a zero jet of n coefficients with prec bits each.
func NewJet(n int, prec uint) Jet {
	j := make(Jet, n)
	for k := range j {
		j[k] = newF(prec)
	}
	return j
}

// Constant returns the jet of the constant function x.
func Constant(x *big.Float, n int, prec uint) Jet {
	j := NewJet(n, prec)
	if n > 0 {
		j[0].Set(x)
	}
	return j
}

// Variable returns the jet of the independent variable at x: (x, 1, 0, ...).
func Variable(x *big.Float, n int, prec uint) Jet {
	j := Constant(x, n, prec)
	if n > 1 {
		j[1].SetInt64(1)
	}
	return j
}

// Prec returns the precision of the jet's coefficients.
func (j Jet) Prec() uint {
	if len(j) == 0 {
		return 0
	}
	return j[0].Prec()
}

// Clone returns a deep copy of j.
func (j Jet) Clone() Jet {
	c := make(Jet, len(j))
	for k, v := range j {
		c[k] = newF(v.Prec()).Set(v)
	}
	return c
}

// Set copies the coefficients of src into j.
func (j Jet) Set(src Jet) Jet {
	for k := range j {
		j[k].Set(src[k])
	}
	return j
}

// Zero clears every coefficient.
func (j Jet) Zero() Jet {
	for _, v := range j {
		v.SetInt64(0)
	}
	return j
}

// Float64s returns the coefficients rounded to float64.
func (j Jet) Float64s() []float64 {
	out := make([]float64, len(j))
	for k, v := range j {
		out[k], _ = v.Float64()
	}
	return out
}

// Text formats every coefficient with the given number of significant digits.
func (j Jet) Text(digits int) []string {
	out := make([]string, len(j))
	for k, v := range j {
		out[k] = v.Text('e', digits)
	}
	return out
}

func (j Jet) String() string {
	return fmt.Sprintf("[%s]", strings.Join(j.Text(6), " "))
}

// ToDerivatives returns the derivative values k!·j[k].
func ToDerivatives(j Jet) Jet {
	d := j.Clone()
	f := big.NewInt(1)
	fact := new(big.Float)
	for k := 1; k < len(d); k++ {
		f.Mul(f, big.NewInt(int64(k)))
		d[k].Mul(d[k], fact.SetInt(f))
	}
	return d
}

// FromDerivatives returns the Taylor coefficients d[k]/k!.
func FromDerivatives(d Jet) Jet {
	j := d.Clone()
	f := big.NewInt(1)
	fact := new(big.Float)
	for k := 1; k < len(j); k++ {
		f.Mul(f, big.NewInt(int64(k)))
		j[k].Quo(j[k], fact.SetInt(f))
	}
	return j
}

// Horner evaluates Σ j[k]·h^k by nested multiplication from the highest
// coefficient down. An empty jet sums to zero. Infinite results, and
// operations math/big refuses as NaN, return ErrNonFinite.
func Horner(j Jet, h *big.Float) (sum *big.Float, err error) {
	if len(j) == 0 {
		return newF(h.Prec()), nil
	}

	defer func() {
		if r := recover(); r != nil {
			nan, ok := r.(big.ErrNaN)
			if !ok {
				panic(r)
			}
			sum, err = nil, fmt.Errorf("%w: %s", ErrNonFinite, nan.Error())
		}
	}()

	n := len(j) - 1
	sum = newF(j.Prec()).Set(j[n])
	for k := n - 1; k >= 0; k-- {
		sum.Mul(sum, h)
		sum.Add(sum, j[k])
	}
	if sum.IsInf() {
		return nil, ErrNonFinite
	}
	return sum, nil
}
