package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/taylorsim/internal/ad"
	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/roots"
	"github.com/san-kum/taylorsim/internal/taylor"
	"github.com/san-kum/taylorsim/internal/validate"
)

// elementary maps the names accepted by the jet command to single AD
// operations.
var elementary = map[string]roots.Func{
	"sqr":   func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Sqr(s.Jet(), x), nil },
	"inv":   func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Inv(s.Jet(), x) },
	"sqrt":  func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Sqrt(s.Jet(), x) },
	"exp":   func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Exp(s.Jet(), x) },
	"ln":    func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Ln(s.Jet(), x) },
	"sin":   func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Sin(s.Jet(), x) },
	"cos":   func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Cos(s.Jet(), x) },
	"tan":   func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Tan(s.Jet(), x) },
	"tanh":  func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Tanh(s.Jet(), x) },
	"asin":  func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Asin(s.Jet(), x) },
	"acos":  func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Acos(s.Jet(), x) },
	"atan":  func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Atan(s.Jet(), x) },
	"asinh": func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Asinh(s.Jet(), x) },
	"acosh": func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Acosh(s.Jet(), x) },
	"atanh": func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) { return s.Atanh(s.Jet(), x) },
	"sinh": func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
		sh, _, err := s.SinhCosh(s.Jet(), s.Jet(), x)
		return sh, err
	},
	"cosh": func(s *ad.Session, x taylor.Jet) (taylor.Jet, error) {
		_, ch, err := s.SinhCosh(s.Jet(), s.Jet(), x)
		return ch, err
	},
}

func lookupFunc(name string) (roots.Func, error) {
	if f, ok := elementary[name]; ok {
		return f, nil
	}
	p, err := roots.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("unknown function: %s", name)
	}
	return p.F, nil
}

func printJet(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("elementary:", slices.Sorted(maps.Keys(elementary)))
		names := make([]string, len(roots.Catalog))
		for i, p := range roots.Catalog {
			names[i] = p.Name
		}
		fmt.Println("catalogue: ", names)
		return nil
	}

	f, err := lookupFunc(args[0])
	if err != nil {
		return err
	}
	s, err := ad.NewSession(jetOrder, precision)
	if err != nil {
		return err
	}
	x, err := s.VarString(at)
	if err != nil {
		return err
	}

	y, err := f(s, x)
	if err != nil {
		return fmt.Errorf("%s(%s): %w", args[0], at, err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "K\tCOEFFICIENT\tDERIVATIVE")
	d := taylor.ToDerivatives(y)
	for k := range y {
		fmt.Fprintf(w, "%d\t%s\t%s\n", k, y[k].Text('g', jetDigits), d[k].Text('g', jetDigits))
	}
	return w.Flush()
}

func findRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tFUNCTION\tX0\tSCAN")
		for _, p := range roots.Catalog {
			fmt.Fprintf(w, "%s\t%s\t%s\t[%s, %s]\n", p.Name, p.Expr, p.X0, p.Lo, p.Hi)
		}
		return w.Flush()
	}

	p, err := roots.Lookup(args[0])
	if err != nil {
		return err
	}
	opts := roots.DefaultOptions(precision)
	opts.Degree = degree
	opts.MaxIter = maxIter
	opts.Logger = logger
	if tolerance != "" {
		tol, err := bigmath.Parse(tolerance, precision)
		if err != nil {
			return fmt.Errorf("tol: %w", err)
		}
		opts.FTol, opts.XTol = tol, tol
	}

	if intervals > 0 {
		return scanRoots(p, opts)
	}

	start := p.X0
	if x0 != "" {
		start = x0
	}
	x, err := bigmath.Parse(start, precision)
	if err != nil {
		return fmt.Errorf("x0: %w", err)
	}

	r, err := roots.Polish(p.F, x, opts, precision)
	switch {
	case errors.Is(err, roots.ErrNotConverged):
		level.Warn(logger).Log("msg", "root not converged, printing best iterate", "function", p.Name, "err", err)
	case err != nil:
		return err
	}

	fmt.Printf("%s = 0\n", p.Expr)
	fmt.Printf("root      %s\n", r.Root.Text('g', rootDigits))
	fmt.Printf("residual  %s\n", r.Residual.Text('e', 3))
	fmt.Printf("iter      %d (%d evaluations, converged %v)\n", r.Iter, r.Evals, r.Converged)
	return nil
}

func scanRoots(p roots.Problem, opts roots.Options) error {
	lo, hi := p.Lo, p.Hi
	if scanLo != "" {
		lo = scanLo
	}
	if scanHi != "" {
		hi = scanHi
	}
	a, err := bigmath.Parse(lo, precision)
	if err != nil {
		return fmt.Errorf("lo: %w", err)
	}
	b, err := bigmath.Parse(hi, precision)
	if err != nil {
		return fmt.Errorf("hi: %w", err)
	}

	found, err := roots.Scan(p.F, a, b, intervals, opts, precision)
	if err != nil {
		return err
	}
	fmt.Printf("%s = 0 on [%s, %s]: %d roots\n", p.Expr, lo, hi, len(found))
	for _, r := range found {
		fmt.Printf("  %s  (residual %s)\n", r.Root.Text('g', rootDigits), r.Residual.Text('e', 3))
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := ad.NewSession(checkOrder, precision)
	if err != nil {
		return err
	}
	values := points
	if len(values) == 0 {
		values = validate.DefaultPoints
	}
	xs, err := validate.Points(s, values)
	if err != nil {
		return err
	}

	tol := bigmath.Tolerance(precision, slack)
	level.Debug(logger).Log("msg", "checking identities", "order", checkOrder, "prec", precision,
		"points", len(xs), "tol", tol.Text('e', 2))

	r := validate.RunPoints(s, xs, tol)
	for _, c := range r.Checks {
		if c.Status == validate.Failed || verbose {
			fmt.Println(c)
		}
	}
	fmt.Println(r.Summary())

	if !r.OK() {
		return fmt.Errorf("%d identity checks failed", r.Failed)
	}
	return nil
}
