package config

import (
	"maps"
	"slices"
)

var Presets = map[string]map[string]*Config{
	"exponential": {
		"growth": {
			Model: "exponential", Order: 30, Step: "0.1", Steps: 10, Precision: 128, Digits: 30,
			InitState: []string{"1"},
		},
		"decay": {
			Model: "exponential", Order: 30, Step: "0.25", Steps: 40, Precision: 128, Digits: 30,
			InitState: []string{"1"}, Params: map[string]string{"a": "-1/2"},
		},
	},
	"lorenz": {
		"classic": {
			Model: "lorenz", Order: 20, Step: "0.01", Steps: 2000, Precision: 128, Digits: 20,
			InitState: []string{"1", "1", "1"},
		},
		"long": {
			Model: "lorenz", Order: 60, Step: "0.01", Steps: 10000, Precision: 512, Digits: 40,
			InitState: []string{"1", "1", "1"},
		},
		"periodic": {
			Model: "lorenz", Order: 24, Step: "0.005", Steps: 4000, Precision: 128, Digits: 20,
			InitState: []string{"-7", "-5", "130"}, Params: map[string]string{"rho": "160"},
		},
	},
	"rossler": {
		"spiral": {
			Model: "rossler", Order: 20, Step: "0.05", Steps: 2000, Precision: 128, Digits: 20,
			InitState: []string{"1", "1", "1"},
		},
		"funnel": {
			Model: "rossler", Order: 24, Step: "0.02", Steps: 5000, Precision: 128, Digits: 20,
			InitState: []string{"1", "1", "1"}, Params: map[string]string{"a": "0.3", "c": "8"},
		},
	},
	"thomas": {
		"labyrinth": {
			Model: "thomas", Order: 20, Step: "0.1", Steps: 3000, Precision: 128, Digits: 20,
			InitState: []string{"0.1", "0", "0"}, Params: map[string]string{"b": "0.1"},
		},
	},
	"halvorsen": {
		"default": {
			Model: "halvorsen", Order: 24, Step: "0.005", Steps: 4000, Precision: 128, Digits: 20,
			InitState: []string{"-1.48", "-1.51", "2.04"},
		},
	},
	"vanderpol": {
		"relaxation": {
			Model: "vanderpol", Order: 30, Step: "0.01", Steps: 3000, Precision: 128, Digits: 20,
			InitState: []string{"2", "0"}, Params: map[string]string{"mu": "5"},
		},
		"harmonic": {
			Model: "vanderpol", Order: 20, Step: "0.05", Steps: 1000, Precision: 128, Digits: 20,
			InitState: []string{"0.1", "0"}, Params: map[string]string{"mu": "1/10"},
		},
	},
	"duffing": {
		"twin": {
			Model: "duffing", Order: 20, Step: "0.05", Steps: 2000, Precision: 128, Digits: 20,
			InitState: []string{"1.5", "0"},
		},
		"damped": {
			Model: "duffing", Order: 20, Step: "0.05", Steps: 2000, Precision: 128, Digits: 20,
			InitState: []string{"1.5", "0"}, Params: map[string]string{"delta": "0.2"},
		},
	},
	"pendulum": {
		"small": {
			Model: "pendulum", Order: 20, Step: "0.05", Steps: 400, Precision: 128, Digits: 20,
			InitState: []string{"0.2", "0"},
		},
		"large": {
			Model: "pendulum", Order: 20, Step: "0.05", Steps: 400, Precision: 128, Digits: 20,
			InitState: []string{"2.5", "0"},
		},
		"spinning": {
			Model: "pendulum", Order: 24, Step: "0.02", Steps: 1500, Precision: 128, Digits: 20,
			InitState: []string{"0.1", "8"},
		},
	},
	"doublewell": {
		"trapped": {
			Model: "doublewell", Order: 20, Step: "0.05", Steps: 1000, Precision: 128, Digits: 20,
			InitState: []string{"1.1", "0"},
		},
		"crossing": {
			Model: "doublewell", Order: 20, Step: "0.05", Steps: 1000, Precision: 128, Digits: 20,
			InitState: []string{"1.1", "1"},
		},
	},
	"kepler": {
		"ellipse": {
			Model: "kepler", Order: 24, Step: "0.05", Steps: 2000, Precision: 128, Digits: 25,
			InitState: []string{"1", "0", "0", "1.2"},
		},
		"circle": {
			Model: "kepler", Order: 24, Step: "0.05", Steps: 1000, Precision: 128, Digits: 25,
			InitState: []string{"1", "0", "0", "1"},
		},
		"eccentric": {
			Model: "kepler", Order: 40, Step: "0.01", Steps: 5000, Precision: 256, Digits: 30,
			InitState: []string{"1", "0", "0", "1.38"},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names of a model in sorted order.
func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(modelPresets))
}
