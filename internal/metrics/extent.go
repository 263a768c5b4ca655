package metrics

import (
	"math"
	"math/big"
)

// Extent records the range covered by each state variable. Its value is
// the largest range.
type Extent struct {
	name    string
	min     []float64
	max     []float64
	samples int
}

func NewExtent(dim int) *Extent {
	e := &Extent{name: "extent", min: make([]float64, dim), max: make([]float64, dim)}
	e.Reset()
	return e
}

func (e *Extent) Name() string {
	return e.name
}

func (e *Extent) OnStep(step int, t *big.Float, x []*big.Float) {
	for i, val := range x {
		if i >= len(e.min) {
			break
		}
		v, _ := val.Float64()
		e.min[i] = math.Min(e.min[i], v)
		e.max[i] = math.Max(e.max[i], v)
	}
	e.samples++
}

// Range returns the observed bounds of variable i.
func (e *Extent) Range(i int) (lo, hi float64) {
	return e.min[i], e.max[i]
}

func (e *Extent) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	var widest float64
	for i := range e.min {
		widest = math.Max(widest, e.max[i]-e.min[i])
	}
	return widest
}

func (e *Extent) Reset() {
	for i := range e.min {
		e.min[i] = math.Inf(1)
		e.max[i] = math.Inf(-1)
	}
	e.samples = 0
}
