package tsm

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidConfig indicates run controls outside their valid range.
	ErrInvalidConfig = errors.New("tsm: invalid configuration")

	// ErrDimensionMismatch indicates an initial state whose length differs
	// from the model dimension.
	ErrDimensionMismatch = errors.New("tsm: dimension mismatch between state and model")

	// ErrInvalidState indicates a nil or infinite initial value.
	ErrInvalidState = errors.New("tsm: invalid initial state")

	// ErrTerminated is returned by Next on a stepper that already failed.
	ErrTerminated = errors.New("tsm: stepper terminated after an error")
)

// SimulationError wraps a fatal failure with the step and time at which it
// happened. Coefficients computed after a failed recurrence are meaningless,
// so the run cannot continue.
type SimulationError struct {
	Step    int
	Time    *big.Float
	K       int
	Wrapped error
}

func (e *SimulationError) Error() string {
	t := "?"
	if e.Time != nil {
		t = e.Time.Text('g', 10)
	}
	if e.K < 0 {
		return fmt.Sprintf("tsm: step %d (t=%s): %v", e.Step, t, e.Wrapped)
	}
	return fmt.Sprintf("tsm: step %d (t=%s) coefficient %d: %v", e.Step, t, e.K, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
