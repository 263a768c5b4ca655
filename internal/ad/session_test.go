package ad

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/dual"
	"gonum.org/v1/gonum/num/hyperdual"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

const prec = 128

func session(t *testing.T, order int) *Session {
	t.Helper()
	s, err := NewSession(order, prec)
	require.NoError(t, err)
	return s
}

func f(x float64) *big.Float { return bigmath.NewFloat(x, prec) }

func TestNewSession(t *testing.T) {
	tests := []struct {
		order int
		prec  uint
		ok    bool
	}{
		{1, 64, true},
		{20, 512, true},
		{0, 64, false},
		{4, 0, false},
	}
	for _, tt := range tests {
		_, err := NewSession(tt.order, tt.prec)
		if tt.ok {
			require.NoError(t, err)
		} else {
			require.ErrorIs(t, err, ErrInvalidSession)
		}
	}
}

func TestSqrMatchesMul(t *testing.T) {
	s := session(t, 4)
	x := s.Var(f(2))

	sq := s.Sqr(s.Jet(), x)
	mul := s.Mul(s.Jet(), x, x)

	require.Empty(t, cmp.Diff(mul.Text(40), sq.Text(40)))
	require.Empty(t, cmp.Diff([]float64{4, 4, 1, 0}, sq.Float64s()))
}

func TestMulInPlace(t *testing.T) {
	s := session(t, 3)
	x := s.Var(f(3))
	s.Mul(x, x, x)
	require.Equal(t, []float64{9, 6, 1}, x.Float64s())

	y := s.Var(f(-1))
	s.Sqr(y, y)
	require.Equal(t, []float64{1, -2, 1}, y.Float64s())
}

func TestLinearOps(t *testing.T) {
	s := session(t, 3)
	u, err := s.VarString("1/2")
	require.NoError(t, err)
	v := s.Const(f(2))

	require.Equal(t, []float64{2.5, 1, 0}, s.Add(s.Jet(), u, v).Float64s())
	require.Equal(t, []float64{-1.5, 1, 0}, s.Sub(s.Jet(), u, v).Float64s())
	require.Equal(t, []float64{-0.5, -1, 0}, s.Neg(s.Jet(), u).Float64s())
	require.Equal(t, []float64{1.5, 3, 0}, s.Scale(s.Jet(), u, f(3)).Float64s())
	require.Equal(t, []float64{-0.5, 1, 0}, s.Shift(s.Jet(), u, f(-1)).Float64s())

	w := s.Var(f(0))
	s.Neg(w, w)
	require.Equal(t, []float64{0, 1, 0}, s.Abs(s.Jet(), w).Float64s())
	require.Equal(t, []float64{0.5, 1, 0}, s.Abs(s.Jet(), s.Neg(s.Jet(), u)).Float64s())
}

func TestQuoDivisionByZero(t *testing.T) {
	s := session(t, 4)
	_, err := s.Quo(s.Jet(), s.Var(f(1)), s.Var(f(0)))
	require.ErrorIs(t, err, taylor.ErrDivisionByZero)

	var de *taylor.DomainError
	require.True(t, errors.As(err, &de))
	require.Equal(t, 0, de.K)
}

func TestSelfReferentialAliasRejected(t *testing.T) {
	s := session(t, 4)
	x := s.Var(f(0.5))
	_, err := s.Exp(x, x)
	require.ErrorIs(t, err, taylor.ErrAliased)
}

func TestSessionsAreIndependent(t *testing.T) {
	lo, hi := session(t, 2), session(t, 12)

	a, err := lo.Exp(lo.Jet(), lo.Var(f(1)))
	require.NoError(t, err)
	b, err := hi.Exp(hi.Jet(), hi.Var(f(1)))
	require.NoError(t, err)

	require.Len(t, a, 2)
	require.Len(t, b, 12)
	require.Zero(t, a[1].Cmp(b[1]))
}

func TestLengthMismatchPanics(t *testing.T) {
	s := session(t, 4)
	require.Panics(t, func() { s.Add(s.Jet(), s.Jet(), taylor.NewJet(3, prec)) })
}

// fike evaluates e^x / √(sin³x + cos³x), the standard test function of
// hyperdual arithmetic.
func fike(t *testing.T, s *Session, x taylor.Jet) taylor.Jet {
	t.Helper()
	sin, cos, err := s.SinCos(s.Jet(), s.Jet(), x)
	require.NoError(t, err)
	three := f(3)
	s3, err := s.Pow(s.Jet(), sin, three)
	require.NoError(t, err)
	c3, err := s.Pow(s.Jet(), cos, three)
	require.NoError(t, err)
	root, err := s.Sqrt(s.Jet(), s.Add(s.Jet(), s3, c3))
	require.NoError(t, err)
	e, err := s.Exp(s.Jet(), x)
	require.NoError(t, err)
	out, err := s.Quo(s.Jet(), e, root)
	require.NoError(t, err)
	return out
}

func TestDualOracle(t *testing.T) {
	const x0 = 1.5
	s := session(t, 2)
	got := fike(t, s, s.Var(f(x0))).Float64s()

	x := dual.Number{Real: x0, Emag: 1}
	want := dual.Mul(
		dual.Exp(x),
		dual.Inv(dual.Sqrt(dual.Add(
			dual.PowReal(dual.Sin(x), 3),
			dual.PowReal(dual.Cos(x), 3)))))

	require.InDelta(t, want.Real, got[0], 1e-12)
	require.InDelta(t, want.Emag, got[1], 1e-12)
}

func TestHyperdualOracle(t *testing.T) {
	const x0 = 1.5
	s := session(t, 3)
	got := taylor.ToDerivatives(fike(t, s, s.Var(f(x0)))).Float64s()

	x := hyperdual.Number{Real: x0, E1mag: 1, E2mag: 1}
	want := hyperdual.Mul(
		hyperdual.Exp(x),
		hyperdual.Inv(hyperdual.Sqrt(hyperdual.Add(
			hyperdual.PowReal(hyperdual.Sin(x), 3),
			hyperdual.PowReal(hyperdual.Cos(x), 3)))))

	require.InDelta(t, 4.4978, got[0], 1e-4)
	require.InDelta(t, want.Real, got[0], 1e-12)
	require.InDelta(t, want.E1mag, got[1], 1e-11)
	require.InDelta(t, want.E1E2mag, got[2], 1e-10)
}

func TestInverseFunctionsAgainstHyperdual(t *testing.T) {
	tests := []struct {
		name  string
		x0    float64
		jet   func(s *Session, dst, x taylor.Jet) (taylor.Jet, error)
		float func(hyperdual.Number) hyperdual.Number
	}{
		{"asin", 0.3, (*Session).Asin, hyperdual.Asin},
		{"acos", -0.6, (*Session).Acos, hyperdual.Acos},
		{"atan", 2.0, (*Session).Atan, hyperdual.Atan},
		{"asinh", -1.2, (*Session).Asinh, hyperdual.Asinh},
		{"acosh", 1.7, (*Session).Acosh, hyperdual.Acosh},
		{"atanh", 0.45, (*Session).Atanh, hyperdual.Atanh},
		{"ln", 2.5, (*Session).Ln, hyperdual.Log},
		{"tanh", 0.8, (*Session).Tanh, hyperdual.Tanh},
		{"tan", 0.8, (*Session).Tan, hyperdual.Tan},
	}

	s := session(t, 3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, err := tt.jet(s, s.Jet(), s.Var(f(tt.x0)))
			require.NoError(t, err)
			got := taylor.ToDerivatives(j).Float64s()

			want := tt.float(hyperdual.Number{Real: tt.x0, E1mag: 1, E2mag: 1})
			for i, w := range []float64{want.Real, want.E1mag, want.E1E2mag} {
				require.InDelta(t, w, got[i], 1e-12*math.Max(1, math.Abs(w)), "derivative %d", i)
			}
		})
	}
}

func TestInverseDomainErrors(t *testing.T) {
	s := session(t, 3)
	tests := []struct {
		name string
		run  func() (taylor.Jet, error)
	}{
		{"asin", func() (taylor.Jet, error) { return s.Asin(s.Jet(), s.Var(f(1.5))) }},
		{"acosh", func() (taylor.Jet, error) { return s.Acosh(s.Jet(), s.Var(f(0.5))) }},
		{"atanh", func() (taylor.Jet, error) { return s.Atanh(s.Jet(), s.Var(f(1))) }},
		{"sqrt", func() (taylor.Jet, error) { return s.Sqrt(s.Jet(), s.Var(f(-4))) }},
	}
	for _, tt := range tests {
		_, err := tt.run()
		require.ErrorIs(t, err, taylor.ErrDomain, tt.name)
	}
}
