package metrics

import (
	"math/big"
	"sort"
	"testing"

	"github.com/san-kum/taylorsim/internal/models"
)

func TestStability(t *testing.T) {
	s := NewStability(10)
	if s.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %g", s.Value())
	}

	s.OnStep(0, new(big.Float), vec(1, -9))
	s.OnStep(1, new(big.Float), vec(1, -11))
	s.OnStep(2, new(big.Float), vec(12, 13))
	s.OnStep(3, new(big.Float), vec(0, 10))

	if got := s.Value(); got != 0.5 {
		t.Errorf("expected 0.5, got %g", got)
	}
	if s.EscapedAt() != 1 {
		t.Errorf("escaped at step %d, want 1", s.EscapedAt())
	}
	s.Reset()
	if s.Value() != 1 || s.EscapedAt() != -1 {
		t.Error("expected a clean slate after reset")
	}
}

func TestExtent(t *testing.T) {
	e := NewExtent(2)
	if e.Value() != 0 {
		t.Errorf("expected 0 with no samples, got %g", e.Value())
	}

	e.OnStep(0, new(big.Float), vec(1, -2))
	e.OnStep(1, new(big.Float), vec(-3, 0.5))
	e.OnStep(2, new(big.Float), vec(0, 4))

	tests := []struct {
		i      int
		lo, hi float64
	}{
		{0, -3, 1},
		{1, -2, 4},
	}
	for _, tt := range tests {
		lo, hi := e.Range(tt.i)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("range %d = [%g, %g], want [%g, %g]", tt.i, lo, hi, tt.lo, tt.hi)
		}
	}
	if e.Value() != 6 {
		t.Errorf("expected widest range 6, got %g", e.Value())
	}
}

func TestForModel(t *testing.T) {
	tests := []struct {
		model models.Model
		want  []string
	}{
		{models.NewLorenz(), []string{"extent", "stability"}},
		{models.NewKepler(), []string{"energy_drift", "extent", "stability"}},
	}
	for _, tt := range tests {
		set := ForModel(tt.model, 1e6)
		var names []string
		for name := range set.Values() {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) != len(tt.want) {
			t.Fatalf("%s: metrics %v, want %v", tt.model.Name(), names, tt.want)
		}
		for i := range names {
			if names[i] != tt.want[i] {
				t.Errorf("%s: metrics %v, want %v", tt.model.Name(), names, tt.want)
			}
		}
	}
}

func TestSetFansOut(t *testing.T) {
	set := Set{NewStability(1), NewExtent(1)}
	set.OnStep(0, new(big.Float), vec(2))
	set.OnStep(1, new(big.Float), vec(0))

	v := set.Values()
	if v["stability"] != 0.5 || v["extent"] != 2 {
		t.Errorf("unexpected values %v", v)
	}
	set.Reset()
	if v := set.Values(); v["stability"] != 1 || v["extent"] != 0 {
		t.Errorf("unexpected values after reset %v", v)
	}
}
