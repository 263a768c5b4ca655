package storage

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/zeebo/blake3"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/config"
	"github.com/san-kum/taylorsim/internal/tsm"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Order     int                `json:"order"`
	Step      string             `json:"step"`
	Steps     int                `json:"steps"`
	Precision uint               `json:"precision"`
	Digits    int                `json:"digits"`
	InitState []string           `json:"init_state,omitempty"`
	Params    map[string]string  `json:"params,omitempty"`
	Labels    []string           `json:"labels"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Run is a finished trajectory with the configuration that produced it.
type Run struct {
	Config  *config.Config
	Labels  []string
	Result  *tsm.Result
	Metrics map[string]float64
}

// RunID returns <model>_<unix>_<hash>, the hash being a BLAKE3 prefix of
// the configuration, so runs of different settings started in the same
// second do not collide.
func RunID(cfg *config.Config, at time.Time) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return fmt.Sprintf("%s_%d_%s", cfg.Model, at.Unix(), hex.EncodeToString(sum[:4])), nil
}

// Save writes metadata.json and states.csv under a new run directory.
// States are stored as decimal strings with cfg.Digits significant digits.
func (s *Store) Save(run Run) (string, error) {
	now := s.now()
	runID, err := RunID(run.Config, now)
	if err != nil {
		return "", err
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	cfg := run.Config
	meta := RunMetadata{
		ID:        runID,
		Model:     cfg.Model,
		Timestamp: now,
		Order:     cfg.Order,
		Step:      cfg.Step,
		Steps:     cfg.Steps,
		Precision: cfg.Precision,
		Digits:    cfg.Digits,
		InitState: cfg.InitState,
		Params:    cfg.Params,
		Labels:    run.Labels,
		Metrics:   run.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := ExportCSV(csvFile, run.Labels, run.Result, cfg.Digits); err != nil {
		return "", err
	}
	return runID, csvFile.Close()
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// ExportCSV writes a header (time and labels) and one row per recorded
// state.
func ExportCSV(w io.Writer, labels []string, result *tsm.Result, digits int) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time"}, labels...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, state := range result.States {
		row := make([]string, 0, len(state)+1)
		row = append(row, result.Times[i].Text('g', digits))
		for _, val := range state {
			row = append(row, val.Text('g', digits))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// List returns the stored runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", metaPath, err)
	}

	return &meta, nil
}

// LoadStates reads a stored trajectory back at the run precision.
func (s *Store) LoadStates(runID string) (*tsm.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", csvPath, err)
	}

	res := &tsm.Result{}
	if len(records) < 2 {
		return res, nil
	}

	parse := func(line int, field string) (*big.Float, error) {
		v, err := bigmath.Parse(field, meta.Precision)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", csvPath, line+1, err)
		}
		return v, nil
	}

	for i, record := range records[1:] {
		t, err := parse(i+1, record[0])
		if err != nil {
			return nil, err
		}
		state := make([]*big.Float, len(record)-1)
		for j, field := range record[1:] {
			if state[j], err = parse(i+1, field); err != nil {
				return nil, err
			}
		}
		res.Times = append(res.Times, t)
		res.States = append(res.States, state)
	}
	res.StepsTaken = len(res.States) - 1

	return res, nil
}
