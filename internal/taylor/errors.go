package taylor

import (
	"errors"
	"fmt"
	"math/big"
)

// Precondition errors. A recurrence that fails one of these at k=0 leaves
// every later coefficient undefined, so callers treat them as fatal.
var (
	// ErrDivisionByZero indicates a zero leading coefficient in a divisor.
	ErrDivisionByZero = errors.New("taylor: division by zero")

	// ErrDomain indicates an argument outside the domain of the function
	// (log, sqrt or pow of a non-positive value, inverse trig out of range).
	ErrDomain = errors.New("taylor: argument outside function domain")

	// ErrAliased indicates an output jet that shares coefficients with an input.
	ErrAliased = errors.New("taylor: output jet aliases an input jet")

	// ErrNonFinite indicates an infinite or NaN result.
	ErrNonFinite = errors.New("taylor: non-finite result")
)

// DomainError records the operation and coefficient that violated a
// precondition.
type DomainError struct {
	Op    string
	K     int
	Value string
	Err   error
}

func (e *DomainError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: %s at k=%d", e.Err, e.Op, e.K)
	}
	return fmt.Sprintf("%v: %s(%s) at k=%d", e.Err, e.Op, e.Value, e.K)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func domainErr(op string, k int, v *big.Float, err error) error {
	de := &DomainError{Op: op, K: k, Err: err}
	if v != nil {
		de.Value = v.Text('g', 10)
	}
	return de
}

// checkAlias rejects an output that shares storage with any input. Jets hold
// pointers, so two jets alias when a coefficient of one appears in the other;
// testing both leading elements covers every overlapping sub-slice.
func checkAlias(op string, out Jet, ins ...Jet) error {
	for _, in := range ins {
		if len(out) == 0 || len(in) == 0 {
			continue
		}
		if contains(in, out[0]) || contains(out, in[0]) {
			return domainErr(op, 0, nil, ErrAliased)
		}
	}
	return nil
}

func contains(j Jet, f *big.Float) bool {
	for _, c := range j {
		if c == f {
			return true
		}
	}
	return false
}
