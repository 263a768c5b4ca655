package roots

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/taylorsim/internal/ad"
	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

func opts(degree int, tol string, prec uint) Options {
	return Options{
		Degree:  degree,
		MaxIter: 50,
		FTol:    bigmath.MustParse(tol, prec),
		XTol:    bigmath.MustParse(tol, prec),
	}
}

func TestNewtonSqrt2(t *testing.T) {
	const prec = 128
	r, err := Polish(sqrt2, bigmath.MustParse("1.4", prec), opts(1, "1e-12", prec), prec)
	require.NoError(t, err)
	require.True(t, r.Converged)

	got, _ := r.Root.Float64()
	require.InDelta(t, math.Sqrt2, got, 1e-12)
}

func TestHouseholderConvergesFaster(t *testing.T) {
	const prec = 512
	want := bigmath.Sqrt(bigmath.NewFloat(2, prec))

	iters := make(map[int]int)
	for _, degree := range []int{1, 2, 3, 4} {
		r, err := Polish(sqrt2, bigmath.MustParse("1", prec), opts(degree, "1e-140", prec), prec)
		require.NoError(t, err, "degree %d", degree)

		diff := new(big.Float).Sub(r.Root, want)
		require.Less(t, bigmath.Log10(diff), -140.0, "degree %d", degree)
		iters[degree] = r.Iter
	}

	require.Less(t, iters[2], iters[1])
	require.LessOrEqual(t, iters[3], iters[2])
	require.LessOrEqual(t, iters[4], iters[3])
}

func TestCatalog(t *testing.T) {
	want := map[string]float64{
		"sqrt2":   math.Sqrt2,
		"golden":  math.Phi,
		"dottie":  0.7390851332151607,
		"wallis":  2.0945514815423265,
		"kepler":  1.4987011335178484,
		"lambert": 0.5671432904097838,
	}

	const prec = 256
	for _, p := range Catalog {
		t.Run(p.Name, func(t *testing.T) {
			for _, degree := range []int{1, 2} {
				r, err := Polish(p.F, bigmath.MustParse(p.X0, prec), opts(degree, "1e-60", prec), prec)
				require.NoError(t, err)
				got, _ := r.Root.Float64()
				require.InDelta(t, want[p.Name], got, 1e-14, "degree %d", degree)
				require.Less(t, bigmath.Log10(r.Residual), -60.0)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	p, err := Lookup("dottie")
	require.NoError(t, err)
	require.Equal(t, "cos x - x", p.Expr)

	_, err = Lookup("nope")
	require.Error(t, err)
}

func noRealRoot(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
	y := s.Sqr(s.Jet(), x)
	return s.Shift(y, y, bigmath.NewFloat(1, s.Prec())), nil
}

func logMinusOne(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
	y, err := s.Ln(s.Jet(), x)
	if err != nil {
		return nil, err
	}
	return s.Shift(y, y, bigmath.NewFloat(-1, s.Prec())), nil
}

func TestNotConvergedIsRecoverable(t *testing.T) {
	const prec = 128
	o := opts(1, "1e-20", prec)
	o.MaxIter = 15

	r, err := Polish(noRealRoot, bigmath.MustParse("0.3", prec), o, prec)
	require.ErrorIs(t, err, ErrNotConverged)
	require.NotNil(t, r)
	require.False(t, r.Converged)
	require.NotNil(t, r.Residual)
	require.Equal(t, 15, r.Iter)
}

func TestZeroDerivative(t *testing.T) {
	const prec = 128
	r, err := Polish(sqrt2, bigmath.NewFloat(0, prec), opts(1, "1e-20", prec), prec)
	require.ErrorIs(t, err, ErrNotConverged)
	require.Zero(t, r.Root.Sign())
}

func TestDomainErrorIsFatal(t *testing.T) {
	const prec = 128
	_, err := Polish(logMinusOne, bigmath.NewFloat(-1, prec), opts(1, "1e-20", prec), prec)
	require.ErrorIs(t, err, taylor.ErrDomain)
	require.False(t, errors.Is(err, ErrNotConverged))
}

func TestInvalidOptions(t *testing.T) {
	const prec = 64
	o := opts(0, "1e-10", prec)
	_, err := Polish(sqrt2, bigmath.NewFloat(1, prec), o, prec)
	require.Error(t, err)
}

func TestScan(t *testing.T) {
	const prec = 128
	o := opts(1, "1e-25", prec)

	found, err := Scan(sqrt2, bigmath.NewFloat(-3, prec), bigmath.NewFloat(3, prec), 24, o, prec)
	require.NoError(t, err)
	require.Len(t, found, 2)

	lo, _ := found[0].Root.Float64()
	hi, _ := found[1].Root.Float64()
	require.InDelta(t, -math.Sqrt2, lo, 1e-15)
	require.InDelta(t, math.Sqrt2, hi, 1e-15)
}

func TestScanSkipsDomainGaps(t *testing.T) {
	const prec = 128
	o := opts(1, "1e-25", prec)

	found, err := Scan(logMinusOne, bigmath.NewFloat(-2, prec), bigmath.NewFloat(5, prec), 14, o, prec)
	require.NoError(t, err)
	require.Len(t, found, 1)

	e, _ := found[0].Root.Float64()
	require.InDelta(t, math.E, e, 1e-15)
}

func TestScanExactGridRoot(t *testing.T) {
	const prec = 128
	o := opts(1, "1e-25", prec)
	// x(x-1) vanishes exactly on the grid points 0 and 1.
	f := func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
		y := s.Sqr(s.Jet(), x)
		return s.Sub(y, y, x), nil
	}

	found, err := Scan(f, bigmath.NewFloat(-1, prec), bigmath.NewFloat(2, prec), 3, o, prec)
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Zero(t, found[0].Root.Sign())
	require.Zero(t, found[1].Root.Cmp(bigmath.NewFloat(1, prec)))
}
