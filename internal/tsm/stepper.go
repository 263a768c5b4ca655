package tsm

import (
	"fmt"
	"math/big"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/taylorsim/internal/taylor"
)

// Phase is the position of a Stepper within its cycle.
type Phase int

const (
	// Stepping computes coefficients 1..Order of every state jet.
	Stepping Phase = iota
	// Advancing sums the jets at the step size and emits the new state.
	Advancing
	// Terminal is reached once Steps steps have completed, or on error.
	Terminal
)

func (p Phase) String() string {
	switch p {
	case Stepping:
		return "stepping"
	case Advancing:
		return "advancing"
	case Terminal:
		return "terminal"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Option configures a Stepper.
type Option func(*Stepper)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l log.Logger) Option {
	return func(s *Stepper) { s.logger = l }
}

// WithObserver adds an observer. Observers are called in the order added.
func WithObserver(o Observer) Option {
	return func(s *Stepper) { s.observers = append(s.observers, o) }
}

// Stepper integrates a Model with the Taylor series method, one step per
// call to Next.
type Stepper struct {
	model     Model
	cfg       Config
	observers []Observer
	logger    log.Logger

	x     []taylor.Jet
	dx    []*big.Float
	next  []*big.Float
	state []*big.Float
	t     *big.Float
	divs  []*big.Float

	step    int
	phase   Phase
	started bool
	err     error
}

// NewStepper allocates the state jets for model and loads x0 as the initial
// expansion point. x0 is copied.
func NewStepper(model Model, x0 []*big.Float, cfg Config, opts ...Option) (*Stepper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dim := model.Dim()
	if len(x0) != dim {
		return nil, fmt.Errorf("%w: model has %d variables, got %d", ErrDimensionMismatch, dim, len(x0))
	}
	for i, v := range x0 {
		if v == nil || v.IsInf() {
			return nil, fmt.Errorf("%w: x0[%d]", ErrInvalidState, i)
		}
	}

	s := &Stepper{
		model:  model,
		cfg:    cfg,
		logger: log.NewNopLogger(),
		x:      make([]taylor.Jet, dim),
		dx:     make([]*big.Float, dim),
		next:   make([]*big.Float, dim),
		state:  make([]*big.Float, dim),
		t:      new(big.Float).SetPrec(cfg.Prec),
		divs:   make([]*big.Float, cfg.Order),
	}
	for _, opt := range opts {
		opt(s)
	}

	n := cfg.Order + 1
	for i := range s.x {
		s.x[i] = taylor.Constant(x0[i], n, cfg.Prec)
		s.dx[i] = new(big.Float).SetPrec(cfg.Prec)
		s.state[i] = s.x[i][0]
	}
	for k := range s.divs {
		s.divs[k] = new(big.Float).SetPrec(cfg.Prec).SetInt64(int64(k + 1))
	}
	if p, ok := model.(Preparer); ok {
		p.Prepare(n, cfg.Prec)
	}
	return s, nil
}

// Next performs one complete step and emits the new state. The first call
// emits the initial state before stepping. Next returns false, without
// stepping, once the configured number of steps is done or after an error.
func (s *Stepper) Next() (bool, error) {
	if s.err != nil {
		return false, ErrTerminated
	}
	if !s.started {
		s.started = true
		level.Debug(s.logger).Log("msg", "integration started", "dim", len(s.x), "order", s.cfg.Order,
			"step", s.cfg.Step.Text('g', 10), "steps", s.cfg.Steps, "prec", s.cfg.Prec)
		s.emit()
	}
	if s.step >= s.cfg.Steps {
		s.phase = Terminal
		return false, nil
	}

	s.phase = Stepping
	for k := 0; k < s.cfg.Order; k++ {
		if err := s.model.Derivatives(s.dx, s.x, k); err != nil {
			return false, s.fail(k, err)
		}
		for i, d := range s.dx {
			s.x[i][k+1].Quo(d, s.divs[k])
		}
	}

	s.phase = Advancing
	for i, j := range s.x {
		v, err := taylor.Horner(j, s.cfg.Step)
		if err != nil {
			return false, s.fail(-1, err)
		}
		s.next[i] = v
	}
	for i, v := range s.next {
		s.x[i][0].Set(v)
	}
	s.step++
	s.t.SetInt64(int64(s.step))
	s.t.Mul(s.t, s.cfg.Step)
	s.emit()

	if s.step >= s.cfg.Steps {
		s.phase = Terminal
		level.Debug(s.logger).Log("msg", "integration finished", "steps", s.step, "t", s.t.Text('g', 10))
	} else {
		s.phase = Stepping
	}
	return true, nil
}

func (s *Stepper) fail(k int, err error) error {
	s.phase = Terminal
	s.err = &SimulationError{
		Step:    s.step,
		Time:    new(big.Float).Copy(s.t),
		K:       k,
		Wrapped: err,
	}
	level.Error(s.logger).Log("msg", "integration aborted", "step", s.step, "k", k, "err", err)
	return s.err
}

func (s *Stepper) emit() {
	for _, o := range s.observers {
		o.OnStep(s.step, s.t, s.state)
	}
}

// State returns a copy of the current state.
func (s *Stepper) State() []*big.Float {
	out := make([]*big.Float, len(s.state))
	for i, v := range s.state {
		out[i] = new(big.Float).Copy(v)
	}
	return out
}

// Time returns a copy of the elapsed time.
func (s *Stepper) Time() *big.Float { return new(big.Float).Copy(s.t) }

// Step returns the number of completed steps.
func (s *Stepper) Step() int { return s.step }

// Phase returns the current phase.
func (s *Stepper) Phase() Phase { return s.phase }

// Err returns the error that terminated the stepper, if any.
func (s *Stepper) Err() error { return s.err }

// Config returns the run controls.
func (s *Stepper) Config() Config { return s.cfg }

// Jets returns the state jets of the last completed step. Coefficient 0
// holds the current state and the others the expansion that produced it.
// The jets are owned by the stepper.
func (s *Stepper) Jets() []taylor.Jet { return s.x }
