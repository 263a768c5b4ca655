package tsm

import (
	"fmt"
	"math/big"

	"github.com/san-kum/taylorsim/internal/taylor"
)

// Model is a system of first-order ODEs written coefficient by coefficient.
//
// Derivatives stores in dx[i] coefficient k of dx_i/dt, given coefficients
// 0..k of every state jet x[i]. It must not read x[i][k+1:], which holds
// values left over from the previous step.
type Model interface {
	Dim() int
	Derivatives(dx []*big.Float, x []taylor.Jet, k int) error
}

// Preparer is implemented by models that keep scratch jets (sin and cos of
// a state variable, powers of a radius). Prepare is called once before the
// first step with the jet length and precision of the run.
type Preparer interface {
	Prepare(n int, prec uint)
}

// Hamiltonian is implemented by models with a conserved energy.
type Hamiltonian interface {
	Energy(x []*big.Float) *big.Float
}

// Observer receives the state once before the first step and once after
// each completed step. x is owned by the stepper and only valid during the
// call.
type Observer interface {
	OnStep(step int, t *big.Float, x []*big.Float)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(step int, t *big.Float, x []*big.Float)

func (f ObserverFunc) OnStep(step int, t *big.Float, x []*big.Float) { f(step, t, x) }

// Config holds the run controls. They are fixed for the lifetime of a
// Stepper.
type Config struct {
	// Order is the degree of the Taylor polynomial; state jets hold
	// Order+1 coefficients.
	Order int
	// Step is the fixed step size. Negative steps integrate backwards.
	Step *big.Float
	// Steps is the number of steps to take.
	Steps int
	// Prec is the working precision in bits.
	Prec uint
}

// Limits accepted by Validate. MinPrec matches a float32 mantissa.
const (
	MinPrec  = 24
	MaxOrder = 1000
)

// Validate reports the first out-of-range control, wrapped in
// ErrInvalidConfig. Steps may be zero, which emits the initial state only.
func (c Config) Validate() error {
	if c.Order < 1 || c.Order > MaxOrder {
		return fmt.Errorf("%w: order must be in [1, %d], got %d", ErrInvalidConfig, MaxOrder, c.Order)
	}
	if c.Step == nil || c.Step.Sign() == 0 || c.Step.IsInf() {
		return fmt.Errorf("%w: step must be finite and non-zero", ErrInvalidConfig)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: negative step count %d", ErrInvalidConfig, c.Steps)
	}
	if c.Prec < MinPrec {
		return fmt.Errorf("%w: precision must be at least %d bits, got %d", ErrInvalidConfig, MinPrec, c.Prec)
	}
	return nil
}

// Result is the trajectory collected by a Recorder.
type Result struct {
	States     [][]*big.Float
	Times      []*big.Float
	StepsTaken int
}

// Final returns the last recorded state, or nil for an empty result.
func (r *Result) Final() []*big.Float {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}
