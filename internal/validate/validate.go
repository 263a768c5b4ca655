// Package validate checks the jet recurrences against algebraic identities
// at a working precision.
//
// Every identity is evaluated coefficient by coefficient: both sides are
// computed as jets through independent recurrences and compared relative to
// the size of the right-hand side. Identities whose precondition does not
// hold for the input (a logarithm of a negative value, say) are skipped, not
// failed.
package validate

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/san-kum/taylorsim/internal/ad"
	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/taylor"
)

// Status is the outcome of one check.
type Status int

const (
	Passed Status = iota
	Failed
	Skipped
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "pass"
	case Failed:
		return "FAIL"
	case Skipped:
		return "skip"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Check is one identity evaluated at one input jet.
type Check struct {
	Name     string
	Identity string
	Point    string
	Status   Status
	// Residual is the largest coefficient difference, relative to
	// max(1, |rhs[k]|). Nil when the check was skipped or errored.
	Residual *big.Float
	// Reason explains a skip or an error.
	Reason string
}

// Report collects checks and their residual statistics.
type Report struct {
	Checks  []Check
	Passed  int
	Failed  int
	Skipped int

	// Log10 residual statistics over every check with a residual. Exact
	// agreement counts as the working precision.
	MaxLog10    float64
	MeanLog10   float64
	MedianLog10 float64

	floor float64
	logs  []float64
}

func newReport(prec uint) *Report {
	return &Report{floor: -float64(bigmath.Digits(prec))}
}

// OK reports whether no check failed.
func (r *Report) OK() bool { return r.Failed == 0 }

func (r *Report) add(c Check) {
	r.Checks = append(r.Checks, c)
	switch c.Status {
	case Passed:
		r.Passed++
	case Failed:
		r.Failed++
	case Skipped:
		r.Skipped++
	}
	if c.Residual != nil {
		r.logs = append(r.logs, math.Max(bigmath.Log10(c.Residual), r.floor))
	}
}

// summarize fills the residual statistics. Empty input leaves them at zero.
func (r *Report) summarize() {
	if len(r.logs) == 0 {
		return
	}
	r.MaxLog10, _ = stats.Max(r.logs)
	r.MeanLog10, _ = stats.Mean(r.logs)
	r.MedianLog10, _ = stats.Median(r.logs)
}

// Failures returns the failed checks.
func (r *Report) Failures() []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.Status == Failed {
			out = append(out, c)
		}
	}
	return out
}

// Summary is a one-line account of the report.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped; max residual 1e%.1f, mean 1e%.1f",
		r.Passed, r.Failed, r.Skipped, r.MaxLog10, r.MeanLog10)
}

// Run evaluates every identity at x. Checks pass when the relative residual
// is at most tol.
func Run(s *ad.Session, x taylor.Jet, tol *big.Float) *Report {
	r := newReport(s.Prec())
	runAt(r, s, x, tol)
	r.summarize()
	return r
}

// RunPoints evaluates every identity at each of the given jets.
func RunPoints(s *ad.Session, xs []taylor.Jet, tol *big.Float) *Report {
	r := newReport(s.Prec())
	for _, x := range xs {
		runAt(r, s, x, tol)
	}
	r.summarize()
	return r
}

func runAt(r *Report, s *ad.Session, x taylor.Jet, tol *big.Float) {
	point := x[0].Text('g', 8)
	for _, id := range identities {
		c := Check{Name: id.name, Identity: id.expr, Point: point}
		if id.when.holds != nil && !id.when.holds(x[0]) {
			c.Status = Skipped
			c.Reason = "requires " + id.when.desc
			r.add(c)
			continue
		}

		ev := &evaluator{s: s}
		lhs, rhs := id.eval(ev, x)
		if ev.err != nil {
			c.Status = Failed
			c.Reason = ev.err.Error()
			r.add(c)
			continue
		}

		c.Residual = residual(lhs, rhs)
		if c.Residual.Cmp(tol) > 0 {
			c.Status = Failed
			c.Reason = fmt.Sprintf("residual %s exceeds %s", c.Residual.Text('e', 3), tol.Text('e', 3))
		}
		r.add(c)
	}
}

// residual returns max_k |lhs[k]-rhs[k]| / max(1, |rhs[k]|).
func residual(lhs, rhs taylor.Jet) *big.Float {
	prec := rhs.Prec()
	worst := new(big.Float).SetPrec(prec)
	d := new(big.Float).SetPrec(prec)
	scale := new(big.Float).SetPrec(prec)
	one := bigmath.NewFloat(1, prec)
	for k := range rhs {
		d.Sub(lhs[k], rhs[k])
		d.Abs(d)
		scale.Abs(rhs[k])
		if scale.Cmp(one) > 0 {
			d.Quo(d, scale)
		}
		if d.Cmp(worst) > 0 {
			worst.Set(d)
		}
	}
	return worst
}

// SamplePoint returns a jet at x0 with non-trivial higher coefficients
// (1, 1/2, 1/3, ...), so every recurrence term contributes.
func SamplePoint(s *ad.Session, x0 *big.Float) taylor.Jet {
	x := s.Var(x0)
	for k := 2; k < len(x); k++ {
		x[k].SetInt64(1)
		x[k].Quo(x[k], bigmath.NewFloat(k, s.Prec()))
	}
	return x
}

// DefaultPoints are the expansion points used by the command line check.
var DefaultPoints = []string{"-2.5", "-0.7", "0", "0.3", "1", "1/3", "2.25", "7"}

// Points parses expansion points into sample jets.
func Points(s *ad.Session, values []string) ([]taylor.Jet, error) {
	out := make([]taylor.Jet, 0, len(values))
	for _, v := range values {
		x0, err := bigmath.Parse(v, s.Prec())
		if err != nil {
			return nil, fmt.Errorf("validate: point %q: %w", v, err)
		}
		out = append(out, SamplePoint(s, x0))
	}
	return out, nil
}

// Names lists the identities in evaluation order.
func Names() []string {
	names := make([]string, len(identities))
	for i, id := range identities {
		names[i] = id.name
	}
	return names
}

func (c Check) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-14s x=%-10s %s", c.Status, c.Name, c.Point, c.Identity)
	if c.Residual != nil {
		fmt.Fprintf(&b, "  [%s]", c.Residual.Text('e', 2))
	}
	if c.Reason != "" && c.Status != Passed {
		fmt.Fprintf(&b, "  (%s)", c.Reason)
	}
	return b.String()
}
