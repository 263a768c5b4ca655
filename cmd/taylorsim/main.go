package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/taylorsim/internal/config"
)

var (
	dataDir string
	verbose bool
	logger  log.Logger = log.NewNopLogger()

	// Run controls
	order     int
	step      string
	steps     int
	precision uint
	digits    int
	initState []string
	params    map[string]string
	// Config file
	configFile string
	// Preset name
	preset string
	save   bool
	quiet  bool

	// Plot and export
	variable int
	outFile  string

	// Validation, roots and jets
	checkOrder int
	jetOrder   int
	rootDigits int
	jetDigits  int
	benchSteps int
	points     []string
	slack      int
	degree     int
	maxIter    int
	tolerance  string
	x0         string
	scanLo     string
	scanHi     string
	intervals  int
	at         string

	// Convergence study
	orders  []int
	workers int
)

func newLogger(verbose bool) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	if verbose {
		return level.NewFilter(l, level.AllowDebug())
	}
	return level.NewFilter(l, level.AllowInfo())
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&order, "order", config.DefaultOrder, "degree of the Taylor polynomial")
	cmd.Flags().StringVar(&step, "step", config.DefaultStep, "step size (decimal or rational)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().UintVar(&precision, "prec", config.DefaultPrecision, "working precision in bits")
	cmd.Flags().IntVar(&digits, "digits", config.DefaultDigits, "significant digits in output")
	cmd.Flags().StringSliceVar(&initState, "state", nil, "initial state, one value per variable")
	cmd.Flags().StringToStringVar(&params, "param", nil, "model parameter name=value")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// main registers the commands and runs the root command, exiting with
// status 1 if it fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "taylorsim",
		Short:         "arbitrary-precision Taylor series ODE integrator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".taylorsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and stream the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the trajectory")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models",
		Args:  cobra.NoArgs,
		RunE:  listModels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&variable, "var", -1, "plot only this state variable")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "validate the jet recurrences against identities",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
	checkCmd.Flags().IntVar(&checkOrder, "order", 12, "number of coefficients per jet")
	checkCmd.Flags().UintVar(&precision, "prec", config.DefaultPrecision, "working precision in bits")
	checkCmd.Flags().StringSliceVar(&points, "points", nil, "expansion points (default a fixed sample)")
	checkCmd.Flags().IntVar(&slack, "slack", 8, "decimal digits of tolerance below the working precision")

	rootsCmd := &cobra.Command{
		Use:   "root [function]",
		Short: "polish a root with Newton or Householder iteration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  findRoot,
	}
	rootsCmd.Flags().StringVar(&x0, "x0", "", "starting point (default per function)")
	rootsCmd.Flags().IntVar(&degree, "degree", 1, "1 for Newton, d for Householder of order d+1")
	rootsCmd.Flags().IntVar(&maxIter, "max-iter", 100, "iteration budget")
	rootsCmd.Flags().StringVar(&tolerance, "tol", "", "residual and step tolerance (default from precision)")
	rootsCmd.Flags().UintVar(&precision, "prec", config.DefaultPrecision, "working precision in bits")
	rootsCmd.Flags().IntVar(&rootDigits, "digits", 40, "significant digits in output")
	rootsCmd.Flags().StringVar(&scanLo, "lo", "", "scan from (default per function)")
	rootsCmd.Flags().StringVar(&scanHi, "hi", "", "scan to (default per function)")
	rootsCmd.Flags().IntVar(&intervals, "scan", 0, "scan this many intervals for every root")

	jetCmd := &cobra.Command{
		Use:   "jet [function]",
		Short: "print Taylor coefficients and derivatives of a function",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printJet,
	}
	jetCmd.Flags().StringVar(&at, "at", "1", "expansion point")
	jetCmd.Flags().IntVar(&jetOrder, "order", 8, "number of coefficients")
	jetCmd.Flags().UintVar(&precision, "prec", config.DefaultPrecision, "working precision in bits")
	jetCmd.Flags().IntVar(&jetDigits, "digits", 25, "significant digits in output")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run a model with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge [model]",
		Short: "compare the final state across orders against a high-precision reference",
		Args:  cobra.MaximumNArgs(1),
		RunE:  convergeModel,
	}
	addRunFlags(convergeCmd)
	convergeCmd.Flags().IntSliceVar(&orders, "orders", []int{4, 8, 12, 16, 24}, "orders to compare")
	convergeCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "concurrent integrations")

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark a model across orders and precisions",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 200, "steps per measurement")

	rootCmd.AddCommand(runCmd, modelsCmd, presetsCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		checkCmd, rootsCmd, jetCmd, liveCmd, convergeCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
