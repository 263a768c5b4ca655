// Package ad drives the coefficient recurrences of package taylor across a
// whole jet, exposing one call per named operation.
//
// A Session fixes the jet length and working precision for every operation
// issued through it. Sessions carry no other state, so independent sessions
// may be used side by side.
package ad

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

// ErrInvalidSession is returned by NewSession for a non-positive order or
// a zero precision.
var ErrInvalidSession = errors.New("ad: invalid session parameters")

// Session holds the order (number of coefficients per jet) and precision
// shared by a family of jet operations. An order-2 session carries value
// and first derivative, which is dual-number arithmetic.
type Session struct {
	order int
	prec  uint
}

// NewSession returns a session whose jets hold order coefficients of prec
// bits.
func NewSession(order int, prec uint) (*Session, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: order %d", ErrInvalidSession, order)
	}
	if prec == 0 {
		return nil, fmt.Errorf("%w: zero precision", ErrInvalidSession)
	}
	return &Session{order: order, prec: prec}, nil
}

// Order returns the number of coefficients per jet.
func (s *Session) Order() int { return s.order }

// Prec returns the working precision in bits.
func (s *Session) Prec() uint { return s.prec }

// Jet returns a zero jet.
func (s *Session) Jet() taylor.Jet {
	return taylor.NewJet(s.order, s.prec)
}

// Const returns the jet of the constant x.
func (s *Session) Const(x *big.Float) taylor.Jet {
	return taylor.Constant(x, s.order, s.prec)
}

// Var returns the jet of the independent variable expanded at x.
func (s *Session) Var(x *big.Float) taylor.Jet {
	return taylor.Variable(x, s.order, s.prec)
}

// ConstString parses x at the session precision and returns its constant jet.
func (s *Session) ConstString(x string) (taylor.Jet, error) {
	v, err := bigmath.Parse(x, s.prec)
	if err != nil {
		return nil, err
	}
	return s.Const(v), nil
}

// VarString parses x at the session precision and returns the variable jet
// expanded there.
func (s *Session) VarString(x string) (taylor.Jet, error) {
	v, err := bigmath.Parse(x, s.prec)
	if err != nil {
		return nil, err
	}
	return s.Var(v), nil
}

func (s *Session) fits(js ...taylor.Jet) {
	for _, j := range js {
		if len(j) != s.order {
			panic(fmt.Sprintf("ad: jet of length %d in session of order %d", len(j), s.order))
		}
	}
}

// expand runs step for k = 0..order-1, stopping at the first error.
func (s *Session) expand(step func(k int) error) error {
	for k := 0; k < s.order; k++ {
		if err := step(k); err != nil {
			return err
		}
	}
	return nil
}
