package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/config"
	"github.com/san-kum/taylorsim/internal/metrics"
	"github.com/san-kum/taylorsim/internal/models"
	"github.com/san-kum/taylorsim/internal/storage"
	"github.com/san-kum/taylorsim/internal/tsm"
	"github.com/san-kum/taylorsim/internal/tui"
)

// stabilityThreshold bounds the state components before a run counts as
// escaping.
const stabilityThreshold = 1e6

// resolveConfig merges, in increasing priority, the defaults, the preset,
// the config file and the flags set on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	var file *config.Config
	if configFile != "" {
		var err error
		if file, err = config.Read(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if file.Model != "" {
			cfg.Model = file.Model
		}
	}
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
		}
		cfg.Overlay(p)
	}
	if file != nil {
		model := cfg.Model
		cfg.Overlay(file)
		cfg.Model = model
	}

	flags := cmd.Flags()
	if flags.Changed("order") {
		cfg.Order = order
	}
	if flags.Changed("step") {
		cfg.Step = step
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("prec") {
		cfg.Precision = precision
	}
	if flags.Changed("digits") {
		cfg.Digits = digits
	}
	if flags.Changed("state") {
		cfg.InitState = initState
	}
	if flags.Changed("param") {
		cfg.Overlay(&config.Config{Params: params})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	model, x0, err := cfg.Build(models.NewRegistry())
	if err != nil {
		return err
	}
	tcfg, err := cfg.TSM()
	if err != nil {
		return err
	}

	set := metrics.ForModel(model, stabilityThreshold)
	opts := []tsm.Option{tsm.WithLogger(logger), tsm.WithObserver(set)}
	var lw *tsm.LineWriter
	if !quiet {
		lw = tsm.NewLineWriter(os.Stdout, cfg.Digits)
		opts = append(opts, tsm.WithObserver(lw))
	}
	var rec *tsm.Recorder
	if save {
		rec = tsm.NewRecorder()
		opts = append(opts, tsm.WithObserver(rec))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level.Info(logger).Log("msg", "run", "model", cfg.Model, "order", cfg.Order, "step", cfg.Step,
		"steps", cfg.Steps, "prec", cfg.Precision)
	start := time.Now()
	taken, runErr := tsm.Stream(ctx, model, x0, tcfg, opts...)
	if lw != nil && lw.Err() != nil {
		return lw.Err()
	}

	values := set.Values()
	kv := []interface{}{"msg", "done", "steps", taken, "elapsed", time.Since(start).Round(time.Millisecond)}
	for _, m := range set {
		kv = append(kv, m.Name(), m.Value())
	}
	level.Info(logger).Log(kv...)
	for _, m := range set {
		if st, ok := m.(*metrics.Stability); ok && st.EscapedAt() >= 0 {
			level.Warn(logger).Log("msg", "state left the stability bound", "step", st.EscapedAt(), "bound", stabilityThreshold)
		}
	}

	if runErr != nil {
		return runErr
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.Run{Config: cfg, Labels: model.Labels(), Result: rec.Result(), Metrics: values})
		if err != nil {
			return err
		}
		level.Info(logger).Log("msg", "saved", "run", runID)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	model, x0, err := cfg.Build(models.NewRegistry())
	if err != nil {
		return err
	}
	tcfg, err := cfg.TSM()
	if err != nil {
		return err
	}

	live, err := tui.NewLive(model, x0, tcfg, cfg.Digits)
	if err != nil {
		return err
	}
	return tui.Run(live)
}

func listModels(cmd *cobra.Command, args []string) error {
	reg := models.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tDIM\tSTATE\tPARAMS\tHAMILTONIAN")

	for _, name := range reg.List() {
		m, err := reg.Get(name)
		if err != nil {
			return err
		}
		var ps []string
		if c, ok := m.(models.Configurable); ok {
			values := c.GetParams()
			for _, p := range c.ParamNames() {
				ps = append(ps, p+"="+values[p])
			}
		}
		_, hamiltonian := m.(tsm.Hamiltonian)
		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%v\n", name, m.Dim(), m.Labels(), ps, hamiltonian)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := models.NewRegistry().List()
	if len(args) > 0 {
		names = args
	}

	for _, model := range names {
		presets := config.ListPresets(model)
		if len(presets) == 0 {
			fmt.Printf("no presets for model: %s\n", model)
			continue
		}
		fmt.Printf("presets for %s:\n", model)
		for _, p := range presets {
			c := config.GetPreset(model, p)
			fmt.Printf("  %-12s order %d, step %s, %d steps, %d bits\n", p, c.Order, c.Step, c.Steps, c.Precision)
		}
	}
	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	reg := models.NewRegistry()
	if _, err := reg.Get(args[0]); err != nil {
		return err
	}

	orders := []int{8, 16, 32}
	precs := []uint{64, 128, 256, 512}

	fmt.Printf("benchmarking %s\n\n", args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tPREC\tSTEPS\tTIME\tSTEPS/SEC")

	for _, o := range orders {
		for _, p := range precs {
			m, _ := reg.Get(args[0])
			cfg := tsm.Config{Order: o, Step: bigmath.MustParse("0.01", p), Steps: benchSteps, Prec: p}

			start := time.Now()
			taken, err := tsm.Stream(context.Background(), m, m.DefaultState(p), cfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(taken) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n", o, p, taken, elapsed.Round(time.Microsecond), stepsPerSec)
		}
	}

	return w.Flush()
}
