package tsm

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Run integrates model from x0 for cfg.Steps steps and returns the full
// trajectory. The context is checked between steps; on cancellation the
// partial trajectory is returned with the context error.
func Run(ctx context.Context, model Model, x0 []*big.Float, cfg Config, opts ...Option) (*Result, error) {
	rec := NewRecorder()
	s, err := NewStepper(model, x0, cfg, append(opts, WithObserver(rec))...)
	if err != nil {
		return nil, err
	}
	err = drive(ctx, s)
	return rec.Result(), err
}

// Stream integrates like Run but keeps no trajectory: states reach only the
// observers in opts. It returns the number of completed steps.
func Stream(ctx context.Context, model Model, x0 []*big.Float, cfg Config, opts ...Option) (int, error) {
	s, err := NewStepper(model, x0, cfg, opts...)
	if err != nil {
		return 0, err
	}
	err = drive(ctx, s)
	return s.Step(), err
}

func drive(ctx context.Context, s *Stepper) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// Recorder keeps a copy of every emitted state.
type Recorder struct {
	res Result
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnStep(step int, t *big.Float, x []*big.Float) {
	state := make([]*big.Float, len(x))
	for i, v := range x {
		state[i] = new(big.Float).Copy(v)
	}
	r.res.States = append(r.res.States, state)
	r.res.Times = append(r.res.Times, new(big.Float).Copy(t))
	r.res.StepsTaken = step
}

// Result returns the trajectory recorded so far.
func (r *Recorder) Result() *Result {
	return &r.res
}

// LineWriter prints one line per emitted state: the state variables followed
// by the time, in exponent notation with Digits significant digits.
type LineWriter struct {
	w      io.Writer
	digits int
	sb     strings.Builder
	err    error
}

// NewLineWriter writes to w with the given number of significant digits,
// at least one.
func NewLineWriter(w io.Writer, digits int) *LineWriter {
	if digits < 1 {
		digits = 1
	}
	return &LineWriter{w: w, digits: digits}
}

func (lw *LineWriter) OnStep(step int, t *big.Float, x []*big.Float) {
	if lw.err != nil {
		return
	}
	lw.sb.Reset()
	for _, v := range x {
		lw.sb.WriteString(v.Text('e', lw.digits-1))
		lw.sb.WriteByte(' ')
	}
	lw.sb.WriteString(t.Text('e', lw.digits-1))
	lw.sb.WriteByte('\n')
	if _, err := io.WriteString(lw.w, lw.sb.String()); err != nil {
		lw.err = fmt.Errorf("tsm: write step %d: %w", step, err)
	}
}

// Err returns the first write error.
func (lw *LineWriter) Err() error {
	return lw.err
}
