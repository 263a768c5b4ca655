package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/taylorsim/internal/tsm"
)

type ExportData struct {
	Model     string             `json:"model"`
	Order     int                `json:"order"`
	Step      string             `json:"step"`
	Precision uint               `json:"precision"`
	Steps     int                `json:"steps"`
	Params    map[string]string  `json:"params,omitempty"`
	Labels    []string           `json:"labels"`
	Times     []string           `json:"times"`
	States    [][]string         `json:"states"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// ExportJSON writes a trajectory as indented JSON with decimal strings of
// digits significant digits, so no precision is lost to float64.
func ExportJSON(w io.Writer, meta *RunMetadata, result *tsm.Result, digits int) error {
	data := ExportData{
		Model:     meta.Model,
		Order:     meta.Order,
		Step:      meta.Step,
		Precision: meta.Precision,
		Steps:     result.StepsTaken,
		Params:    meta.Params,
		Labels:    meta.Labels,
		Times:     make([]string, len(result.Times)),
		States:    make([][]string, len(result.States)),
		Metrics:   meta.Metrics,
	}

	for i, t := range result.Times {
		data.Times[i] = t.Text('g', digits)
	}
	for i, s := range result.States {
		row := make([]string, len(s))
		for j, v := range s {
			row[j] = v.Text('g', digits)
		}
		data.States[i] = row
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
