package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/config"
	"github.com/san-kum/taylorsim/internal/ensemble"
	"github.com/san-kum/taylorsim/internal/models"
	"github.com/san-kum/taylorsim/internal/tsm"
)

// convergeJobs builds one job per order at the configured precision plus a
// reference job at twice the highest order and twice the precision.
func convergeJobs(cfg *config.Config, orders []int) ([]ensemble.Job, error) {
	reg := models.NewRegistry()
	ref := cfg.Clone()
	ref.Order = 2 * slices.Max(orders)
	ref.Precision = 2 * cfg.Precision

	var jobs []ensemble.Job
	for _, c := range append(runConfigs(cfg, orders), ref) {
		model, x0, err := c.Build(reg)
		if err != nil {
			return nil, err
		}
		tcfg, err := c.TSM()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, ensemble.Job{Model: model, X0: x0, Config: tcfg})
	}
	return jobs, nil
}

func runConfigs(cfg *config.Config, orders []int) []*config.Config {
	out := make([]*config.Config, len(orders))
	for i, o := range orders {
		out[i] = cfg.Clone()
		out[i].Order = o
	}
	return out
}

// agreement returns the number of decimal digits to which x matches ref,
// measured by the largest component error relative to max(1, |ref|).
func agreement(x, ref []*big.Float, prec uint) float64 {
	worst := new(big.Float).SetPrec(prec)
	one := bigmath.NewFloat(1, prec)
	for i := range x {
		d := new(big.Float).SetPrec(prec).Sub(x[i], ref[i])
		d.Abs(d)
		scale := bigmath.Abs(ref[i])
		if scale.Cmp(one) < 0 {
			scale = one
		}
		d.Quo(d, scale)
		if d.Cmp(worst) > 0 {
			worst = d
		}
	}
	if worst.Sign() == 0 {
		return float64(bigmath.Digits(prec))
	}
	return -bigmath.Log10(worst)
}

func convergeModel(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return fmt.Errorf("no orders given")
	}
	for _, o := range orders {
		if o < 1 {
			return fmt.Errorf("order must be positive, got %d", o)
		}
	}

	jobs, err := convergeJobs(cfg, orders)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level.Info(logger).Log("msg", "convergence study", "model", cfg.Model, "orders", fmt.Sprint(orders),
		"steps", cfg.Steps, "prec", cfg.Precision, "workers", workers)
	start := time.Now()
	results, err := ensemble.Run(ctx, jobs, workers, tsm.WithLogger(logger))
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "ensemble done", "elapsed", time.Since(start).Round(time.Millisecond))

	ref := results[len(results)-1].Final()
	refJob := jobs[len(jobs)-1].Config
	fmt.Printf("%s: %d steps of %s, reference order %d at %d bits\n\n",
		cfg.Model, cfg.Steps, cfg.Step, refJob.Order, refJob.Prec)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tDIGITS\tFINAL STATE")
	for i, o := range orders {
		final := results[i].Final()
		state := make([]string, len(final))
		for j, v := range final {
			state[j] = v.Text('g', cfg.Digits)
		}
		fmt.Fprintf(w, "%d\t%.1f\t%v\n", o, agreement(final, ref, cfg.Precision), state)
	}
	return w.Flush()
}
