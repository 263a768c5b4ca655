package roots

import (
	"fmt"

	"github.com/san-kum/taylorsim/internal/ad"
	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

// Problem is a named test function with a starting point and a scan range.
type Problem struct {
	Name string
	Expr string
	F    Func
	X0   string
	Lo   string
	Hi   string
}

// Catalog lists the built-in test functions.
var Catalog = []Problem{
	{Name: "sqrt2", Expr: "x² - 2", F: sqrt2, X0: "1.4", Lo: "-3", Hi: "3"},
	{Name: "golden", Expr: "x² - x - 1", F: golden, X0: "1.5", Lo: "-2", Hi: "3"},
	{Name: "dottie", Expr: "cos x - x", F: dottie, X0: "1", Lo: "-1", Hi: "2"},
	{Name: "wallis", Expr: "x³ - 2x - 5", F: wallis, X0: "2", Lo: "0", Hi: "4"},
	{Name: "kepler", Expr: "E - 0.5 sin E - 1", F: keplerEq, X0: "1", Lo: "0", Hi: "3"},
	{Name: "lambert", Expr: "x eˣ - 1", F: lambert, X0: "0.5", Lo: "0", Hi: "2"},
}

// Lookup returns the catalogue entry with the given name.
func Lookup(name string) (Problem, error) {
	for _, p := range Catalog {
		if p.Name == name {
			return p, nil
		}
	}
	return Problem{}, fmt.Errorf("unknown function: %s", name)
}

func sqrt2(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
	y := s.Sqr(s.Jet(), x)
	return s.Shift(y, y, bigmath.NewFloat(-2, s.Prec())), nil
}

func golden(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
	y := s.Sqr(s.Jet(), x)
	s.Sub(y, y, x)
	return s.Shift(y, y, bigmath.NewFloat(-1, s.Prec())), nil
}

func dottie(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
	c, err := s.Cos(s.Jet(), x)
	if err != nil {
		return nil, err
	}
	return s.Sub(c, c, x), nil
}

func wallis(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
	prec := s.Prec()
	y := s.Sqr(s.Jet(), x)
	s.Mul(y, y, x)
	s.Sub(y, y, s.Scale(s.Jet(), x, bigmath.NewFloat(2, prec)))
	return s.Shift(y, y, bigmath.NewFloat(-5, prec)), nil
}

func keplerEq(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
	prec := s.Prec()
	sin, err := s.Sin(s.Jet(), x)
	if err != nil {
		return nil, err
	}
	s.Scale(sin, sin, bigmath.NewFloat(0.5, prec))
	y := s.Sub(s.Jet(), x, sin)
	return s.Shift(y, y, bigmath.NewFloat(-1, prec)), nil
}

func lambert(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
	e, err := s.Exp(s.Jet(), x)
	if err != nil {
		return nil, err
	}
	y := s.Mul(s.Jet(), x, e)
	return s.Shift(y, y, bigmath.NewFloat(-1, s.Prec())), nil
}
