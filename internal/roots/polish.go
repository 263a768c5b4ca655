// Package roots polishes roots of scalar functions with Newton and
// Householder iterations driven by Taylor jets.
//
// The function is evaluated once per iteration on the jet of the variable,
// so its derivatives come from the same recurrences that drive the
// integrator rather than from a separate derivative routine.
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

// ErrNotConverged is returned together with the best iterate when the
// tolerances are not met within MaxIter iterations, or when the correction
// is undefined. It is recoverable: the Result is still usable.
var ErrNotConverged = errors.New("roots: iteration did not converge")

// Func maps the jet of the variable to the jet of the function. It must
// write a fresh jet from s; errors from the recurrences are fatal.
type Func func(s *ad.Session, x taylor.Jet) (taylor.Jet, error)

// Options controls an iteration.
type Options struct {
	// Degree 1 is Newton's method; degree d uses the Householder correction
	// of order d, converging with order d+1.
	Degree  int
	MaxIter int
	// FTol stops on |f(x)| < FTol; XTol stops on |Δx| < XTol·max(1, |x|).
	FTol *big.Float
	XTol *big.Float

	Logger log.Logger
}

// DefaultOptions returns Newton iteration with tolerances eight digits
// above the working precision.
func DefaultOptions(prec uint) Options {
	return Options{
		Degree:  1,
		MaxIter: 100,
		FTol:    bigmath.Tolerance(prec, 8),
		XTol:    bigmath.Tolerance(prec, 8),
	}
}

func (o Options) validate() error {
	if o.Degree < 1 {
		return fmt.Errorf("roots: degree must be at least 1, got %d", o.Degree)
	}
	if o.MaxIter < 1 {
		return fmt.Errorf("roots: max iterations must be positive, got %d", o.MaxIter)
	}
	if o.FTol == nil || o.XTol == nil {
		return errors.New("roots: tolerances must be set")
	}
	return nil
}

// Result is the outcome of an iteration.
type Result struct {
	Root     *big.Float
	Residual *big.Float
	Iter     int
	// Evals counts jet evaluations of the function.
	Evals     int
	Converged bool
}

// Polish iterates from x0 at prec bits until a tolerance is met.
func Polish(f Func, x0 *big.Float, opts Options, prec uint) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	s, err := ad.NewSession(opts.Degree+1, prec)
	if err != nil {
		return nil, err
	}

	x := new(big.Float).SetPrec(prec).Set(x0)
	best := &Result{Root: new(big.Float).Copy(x)}
	eval := func() (taylor.Jet, error) {
		best.Evals++
		fj, err := f(s, s.Var(x))
		if err != nil {
			return nil, fmt.Errorf("roots: f(%s): %w", x.Text('g', 10), err)
		}
		if len(fj) != s.Order() {
			return nil, fmt.Errorf("roots: function returned %d coefficients, want %d", len(fj), s.Order())
		}
		if best.Residual == nil || bigmath.Abs(fj[0]).Cmp(bigmath.Abs(best.Residual)) < 0 {
			best.Root.Set(x)
			best.Residual = new(big.Float).Copy(fj[0])
		}
		return fj, nil
	}

	dx := new(big.Float).SetPrec(prec)
	scale := new(big.Float).SetPrec(prec)
	one := bigmath.NewFloat(1, prec)

	for it := 1; it <= opts.MaxIter; it++ {
		best.Iter = it
		fj, err := eval()
		if err != nil {
			return best, err
		}
		if fj[0].Sign() == 0 || bigmath.Abs(fj[0]).Cmp(opts.FTol) < 0 {
			best.Converged = true
			return best, nil
		}

		if err := correction(dx, s, fj, opts.Degree); err != nil {
			level.Warn(logger).Log("msg", "correction undefined", "iter", it, "x", x.Text('g', 20), "err", err)
			return best, fmt.Errorf("%w: %v", ErrNotConverged, err)
		}
		x.Add(x, dx)

		scale.Abs(x)
		if scale.Cmp(one) < 0 {
			scale.Set(one)
		}
		scale.Mul(scale, opts.XTol)
		if bigmath.Abs(dx).Cmp(scale) < 0 {
			fj, err := eval()
			if err != nil {
				return best, err
			}
			best.Root.Set(x)
			best.Residual = new(big.Float).Copy(fj[0])
			best.Converged = true
			return best, nil
		}
	}

	level.Warn(logger).Log("msg", "no convergence", "iter", opts.MaxIter, "best", best.Root.Text('g', 20))
	return best, ErrNotConverged
}

// correction sets dx to the Householder step of the given degree: with
// R = 1/f, dx = R[d-1]/R[d]. Degree 1 reduces to -f/f'.
func correction(dx *big.Float, s *ad.Session, fj taylor.Jet, degree int) error {
	if degree == 1 {
		if fj[1].Sign() == 0 {
			return errors.New("zero derivative")
		}
		dx.Quo(fj[0], fj[1])
		dx.Neg(dx)
		return nil
	}

	r, err := s.Inv(s.Jet(), fj)
	if err != nil {
		return err
	}
	if r[degree].Sign() == 0 {
		return errors.New("vanishing leading coefficient of 1/f")
	}
	dx.Quo(r[degree-1], r[degree])
	return nil
}
