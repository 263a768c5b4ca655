package roots

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/taylorsim/internal/ad"
	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

// bisections narrow a bracket before polishing so the iteration starts in
// the basin of the bracketed root.
const bisections = 12

// Scan samples f at n+1 evenly spaced points of [a, b], bisects every sign
// change and polishes it. Points where f is undefined (outside its domain)
// are skipped. Roots closer than XTol to one already found are dropped.
func Scan(f Func, a, b *big.Float, n int, opts Options, prec uint) ([]*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("roots: scan needs at least one interval, got %d", n)
	}
	if a.Cmp(b) >= 0 {
		return nil, fmt.Errorf("roots: empty interval [%s, %s]", a.Text('g', 10), b.Text('g', 10))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	s, err := ad.NewSession(1, prec)
	if err != nil {
		return nil, err
	}
	value := func(x *big.Float) (*big.Float, bool, error) {
		fj, err := f(s, s.Const(x))
		if err != nil {
			if errors.Is(err, taylor.ErrDomain) || errors.Is(err, taylor.ErrDivisionByZero) {
				return nil, false, nil
			}
			return nil, false, err
		}
		return fj[0], true, nil
	}

	width := new(big.Float).SetPrec(prec).Sub(b, a)
	width.Quo(width, bigmath.NewFloat(n, prec))
	at := func(i int) *big.Float {
		x := new(big.Float).SetPrec(prec).Mul(width, bigmath.NewFloat(i, prec))
		return x.Add(x, a)
	}

	var found []*Result
	add := func(r *Result) {
		for _, prev := range found {
			d := new(big.Float).Sub(prev.Root, r.Root)
			if bigmath.Abs(d).Cmp(opts.XTol) < 0 {
				return
			}
		}
		found = append(found, r)
	}

	var prevX, prevF *big.Float
	for i := 0; i <= n; i++ {
		x := at(i)
		fx, ok, err := value(x)
		if err != nil {
			return found, err
		}
		if !ok {
			level.Debug(logger).Log("msg", "sample outside domain", "x", x.Text('g', 10))
			prevX, prevF = nil, nil
			continue
		}

		switch {
		case fx.Sign() == 0:
			add(&Result{Root: x, Residual: fx, Converged: true})
		case prevF != nil && prevF.Sign() != 0 && prevF.Sign() != fx.Sign():
			lo, hi, err := bisect(value, prevX, x, prevF)
			if err != nil {
				return found, err
			}
			mid := new(big.Float).SetPrec(prec).Add(lo, hi)
			mid.SetMantExp(mid, -1)

			r, err := Polish(f, mid, opts, prec)
			switch {
			case errors.Is(err, ErrNotConverged):
				level.Warn(logger).Log("msg", "bracketed root not polished", "lo", lo.Text('g', 10), "hi", hi.Text('g', 10))
			case err != nil:
				return found, err
			case r.Root.Cmp(prevX) < 0 || r.Root.Cmp(x) > 0:
				level.Warn(logger).Log("msg", "polished root left its bracket", "root", r.Root.Text('g', 10))
			default:
				add(r)
			}
		}
		prevX, prevF = x, fx
	}
	return found, nil
}

func bisect(value func(*big.Float) (*big.Float, bool, error), lo, hi, flo *big.Float) (*big.Float, *big.Float, error) {
	lo, hi = new(big.Float).Copy(lo), new(big.Float).Copy(hi)
	sign := flo.Sign()
	mid := new(big.Float).SetPrec(lo.Prec())
	for i := 0; i < bisections; i++ {
		mid.Add(lo, hi)
		mid.SetMantExp(mid, -1)
		fm, ok, err := value(mid)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			break
		}
		if fm.Sign() == 0 {
			return new(big.Float).Copy(mid), new(big.Float).Copy(mid), nil
		}
		if fm.Sign() == sign {
			lo.Set(mid)
		} else {
			hi.Set(mid)
		}
	}
	return lo, hi, nil
}
