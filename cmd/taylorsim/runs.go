package main

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/taylorsim/internal/storage"
	"github.com/san-kum/taylorsim/internal/tui"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tORDER\tSTEP\tSTEPS\tPREC")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Order,
			run.Step,
			run.Steps,
			run.Precision,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(result.States))

	return plotStates(os.Stdout, meta.Labels, result.States, variable)
}

// plotStates draws one chart per state variable, or a single chart for
// index only when it is not negative.
func plotStates(w io.Writer, labels []string, states [][]*big.Float, only int) error {
	numVars := len(states[0])
	if only >= numVars {
		return fmt.Errorf("run has %d state variables, no index %d", numVars, only)
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		if only >= 0 && varIdx != only {
			continue
		}
		label := fmt.Sprintf("x%d", varIdx)
		if varIdx < len(labels) {
			label = labels[varIdx]
		}

		data, hidden := tui.PlotSeries(states, varIdx)
		fmt.Fprintln(w, tui.Chart(data, 10, 80, tui.Caption(label+" vs time", hidden)))
		fmt.Fprintln(w)
	}
	return nil
}

// output opens the --out file, or stdout when none was given.
func output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	w, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportCSV(w, meta.Labels, result, meta.Digits); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	w, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, result, meta.Digits); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
