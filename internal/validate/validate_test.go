package validate

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/taylorsim/internal/ad"
	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

func session(t *testing.T, order int, prec uint) *ad.Session {
	t.Helper()
	s, err := ad.NewSession(order, prec)
	require.NoError(t, err)
	return s
}

func TestRunInsideEveryDomain(t *testing.T) {
	const prec = 128
	s := session(t, 10, prec)
	r := Run(s, SamplePoint(s, bigmath.NewFloat(1, prec)), bigmath.Tolerance(prec, 8))

	for _, c := range r.Failures() {
		t.Log(c)
	}
	require.True(t, r.OK())
	require.Zero(t, r.Skipped)
	require.Equal(t, len(identities), r.Passed)
	require.Len(t, r.Checks, len(identities))
}

func TestRunSkipsOutsideDomain(t *testing.T) {
	const prec = 128
	s := session(t, 8, prec)
	r := Run(s, SamplePoint(s, bigmath.MustParse("-2.5", prec)), bigmath.Tolerance(prec, 8))

	require.True(t, r.OK())
	require.Equal(t, 11, r.Skipped)
	require.Equal(t, len(identities)-11, r.Passed)

	skipped := make(map[string]string)
	for _, c := range r.Checks {
		if c.Status == Skipped {
			require.Nil(t, c.Residual)
			skipped[c.Name] = c.Reason
		}
	}
	require.Equal(t, "requires x > 0", skipped["sqrt"])
	require.Equal(t, "requires |x| < π/2", skipped["asin-sin"])
	require.Equal(t, "requires 0 < x < π", skipped["acos-cos"])
	require.NotContains(t, skipped, "asinh-sinh")
}

func TestRunNegativeToleranceFailsEverything(t *testing.T) {
	const prec = 64
	s := session(t, 4, prec)
	r := Run(s, SamplePoint(s, bigmath.MustParse("0.5", prec)), bigmath.NewFloat(-1, prec))

	require.False(t, r.OK())
	require.Zero(t, r.Passed)
	require.Equal(t, len(identities), r.Failed)
	require.Len(t, r.Failures(), r.Failed)
	require.Contains(t, r.Failures()[0].Reason, "exceeds")
}

func TestRunPoints(t *testing.T) {
	const prec = 128
	s := session(t, 8, prec)
	xs, err := Points(s, DefaultPoints)
	require.NoError(t, err)

	r := RunPoints(s, xs, bigmath.Tolerance(prec, 8))
	for _, c := range r.Failures() {
		t.Log(c)
	}
	require.True(t, r.OK())
	require.Len(t, r.Checks, len(identities)*len(DefaultPoints))
	require.Equal(t, len(r.Checks), r.Passed+r.Skipped)

	require.LessOrEqual(t, r.MeanLog10, r.MaxLog10)
	require.LessOrEqual(t, r.MedianLog10, r.MaxLog10)
	require.Less(t, r.MaxLog10, -30.0)
	require.GreaterOrEqual(t, r.MeanLog10, -float64(bigmath.Digits(prec)))
}

func TestPointsRejectsGarbage(t *testing.T) {
	s := session(t, 4, 64)
	_, err := Points(s, []string{"1", "one"})
	require.Error(t, err)
}

func TestSamplePoint(t *testing.T) {
	s := session(t, 5, 64)
	x := SamplePoint(s, bigmath.NewFloat(3, 64))
	require.Equal(t, []float64{3, 1, 0.5, 1.0 / 3, 0.25}, x.Float64s())
}

func TestResidualIsRelative(t *testing.T) {
	const prec = 64
	lhs := taylor.Jet{bigmath.NewFloat(1.5, prec), bigmath.NewFloat(2, prec)}
	rhs := taylor.Jet{bigmath.NewFloat(1, prec), bigmath.NewFloat(4, prec)}

	got, _ := residual(lhs, rhs).Float64()
	require.Equal(t, 0.5, got)
}

func TestEvaluatorKeepsFirstError(t *testing.T) {
	s := session(t, 3, 64)
	e := &evaluator{s: s}
	first := errors.New("first")

	j := e.do(nil, first)
	require.Len(t, j, 3)
	e.do(nil, errors.New("second"))
	require.Same(t, first, e.err)

	_, err := s.Ln(s.Jet(), s.Const(bigmath.NewFloat(-1, 64)))
	e = &evaluator{s: s}
	e.do2(nil, nil, err)
	require.ErrorIs(t, e.err, taylor.ErrDomain)
}

func TestEmptyReportSummary(t *testing.T) {
	r := newReport(64)
	r.summarize()
	require.True(t, r.OK())
	require.Zero(t, r.MaxLog10)
	require.Equal(t, "0 passed, 0 failed, 0 skipped; max residual 1e0.0, mean 1e0.0", r.Summary())
}

func TestExactResidualCountsAsWorkingPrecision(t *testing.T) {
	r := newReport(128)
	r.add(Check{Status: Passed, Residual: new(big.Float)})
	r.summarize()
	require.Equal(t, -float64(bigmath.Digits(128)), r.MaxLog10)
}

func TestNames(t *testing.T) {
	names := Names()
	require.Len(t, names, len(identities))
	seen := make(map[string]bool)
	for _, n := range names {
		require.False(t, seen[n], "duplicate identity %s", n)
		seen[n] = true
	}
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "pass", Passed.String())
	require.Equal(t, "FAIL", Failed.String())
	require.Equal(t, "skip", Skipped.String())
	require.Equal(t, "Status(9)", Status(9).String())
}
