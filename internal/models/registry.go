package models

import (
	"fmt"
	"maps"
	"slices"
)

// Registry maps model names to constructors. Each Get returns a fresh
// instance, since models own per-run scratch jets.
type Registry struct {
	models map[string]func() Model
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]func() Model)}

	r.Register("exponential", func() Model { return NewExponential() })
	r.Register("lorenz", func() Model { return NewLorenz() })
	r.Register("rossler", func() Model { return NewRossler() })
	r.Register("thomas", func() Model { return NewThomas() })
	r.Register("halvorsen", func() Model { return NewHalvorsen() })
	r.Register("vanderpol", func() Model { return NewVanDerPol() })
	r.Register("duffing", func() Model { return NewDuffing() })
	r.Register("pendulum", func() Model { return NewPendulum() })
	r.Register("doublewell", func() Model { return NewDoubleWell() })
	r.Register("kepler", func() Model { return NewKepler() })

	return r
}

// Register adds or replaces a constructor.
func (r *Registry) Register(name string, fn func() Model) {
	r.models[name] = fn
}

func (r *Registry) Get(name string) (Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	return slices.Sorted(maps.Keys(r.models))
}
