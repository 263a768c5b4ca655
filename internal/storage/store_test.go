package storage

import (
	"bytes"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/config"
	"github.com/san-kum/taylorsim/internal/tsm"
)

func testRun() Run {
	const prec = 128
	third := bigmath.MustParse("1/3", prec)
	return Run{
		Config: config.GetPreset("pendulum", "small"),
		Labels: []string{"theta", "omega"},
		Result: &tsm.Result{
			States: [][]*big.Float{
				{bigmath.NewFloat(1, prec), bigmath.NewFloat(0, prec)},
				{third, bigmath.MustParse("-0.1", prec)},
			},
			Times:      []*big.Float{bigmath.NewFloat(0, prec), bigmath.MustParse("0.05", prec)},
			StepsTaken: 1,
		},
		Metrics: map[string]float64{"energy_drift": 1.5e-30},
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return st
}

func TestStoreSaveLoad(t *testing.T) {
	st := newStore(t)

	runID, err := st.Save(testRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "pendulum_") {
		t.Errorf("unexpected run id %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Model != "pendulum" {
		t.Errorf("expected model 'pendulum', got '%s'", meta.Model)
	}

	if meta.Order != 20 || meta.Step != "0.05" || meta.Precision != 128 {
		t.Errorf("unexpected metadata %+v", meta)
	}

	if meta.Metrics["energy_drift"] != 1.5e-30 {
		t.Errorf("expected drift 1.5e-30, got %g", meta.Metrics["energy_drift"])
	}

	res, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}

	if len(res.States) != 2 || len(res.Times) != 2 || res.StepsTaken != 1 {
		t.Fatalf("expected 2 states, got %d (%d times)", len(res.States), len(res.Times))
	}

	// 1/3 survives to the stored digit count, not to float64.
	diff := new(big.Float).Sub(res.States[1][0], bigmath.MustParse("1/3", 128))
	if e := bigmath.Log10(diff); e > -20 || e < -22 {
		t.Errorf("stored 1/3 off by 1e%.1f", e)
	}
	if res.States[1][0].Prec() != 128 {
		t.Errorf("expected states at 128 bits, got %d", res.States[1][0].Prec())
	}
}

func TestRunIDDependsOnConfig(t *testing.T) {
	at := time.Unix(1700000000, 0)
	a, err := RunID(config.GetPreset("pendulum", "small"), at)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := RunID(config.GetPreset("pendulum", "large"), at)
	c, _ := RunID(config.GetPreset("pendulum", "small"), at)

	if a == b {
		t.Error("different configs share a run id")
	}
	if a != c {
		t.Errorf("run id not deterministic: %s vs %s", a, c)
	}
	if !strings.HasPrefix(a, "pendulum_1700000000_") || len(a) != len("pendulum_1700000000_")+8 {
		t.Errorf("unexpected run id %s", a)
	}
}

func TestStoreList(t *testing.T) {
	st := newStore(t)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	clock := time.Unix(1700000000, 0)
	st.now = func() time.Time { return clock }
	second := testRun()
	second.Config = config.GetPreset("kepler", "circle")

	for _, run := range []Run{testRun(), second} {
		if _, err := st.Save(run); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		clock = clock.Add(time.Second)
	}

	if err := os.Mkdir(filepath.Join(st.baseDir, "stray"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Model != "pendulum" || runs[1].Model != "kepler" {
		t.Errorf("runs not in time order: %s, %s", runs[0].Model, runs[1].Model)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	st := newStore(t)

	runID, err := st.Save(testRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(st.baseDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	csvPath := filepath.Join(runDir, "states.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal("states.csv not created")
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 || lines[0] != "time,theta,omega" {
		t.Errorf("unexpected csv:\n%s", data)
	}
}

func TestLoadStatesRejectsCorruptValues(t *testing.T) {
	st := newStore(t)
	runID, err := st.Save(testRun())
	if err != nil {
		t.Fatal(err)
	}

	csvPath := filepath.Join(st.baseDir, runID, "states.csv")
	if err := os.WriteFile(csvPath, []byte("time,theta,omega\n0,1,abc\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadStates(runID); err == nil {
		t.Error("expected error for corrupt value")
	}
}

func TestExportJSON(t *testing.T) {
	run := testRun()
	meta := &RunMetadata{Model: "pendulum", Order: 20, Step: "0.05", Precision: 128, Labels: run.Labels}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, run.Result, 30); err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Steps != 1 || len(got.States) != 2 || len(got.Times) != 2 {
		t.Errorf("unexpected export %+v", got)
	}
	if got.States[1][0] != "0.333333333333333333333333333333" {
		t.Errorf("expected 30 digits of 1/3, got %s", got.States[1][0])
	}
	if got.Times[1] != "0.05" {
		t.Errorf("expected time 0.05, got %s", got.Times[1])
	}
}
