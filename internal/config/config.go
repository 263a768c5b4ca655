package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/models"
	"github.com/san-kum/taylorsim/internal/tsm"
)

const (
	DefaultModel     = "lorenz"
	DefaultOrder     = 20
	DefaultStep      = "0.01"
	DefaultSteps     = 1000
	DefaultPrecision = 128
	DefaultDigits    = 20
)

// Config is a run description as stored in YAML. Numbers that enter the
// computation are kept as strings so they are parsed at the run precision.
type Config struct {
	Model     string            `yaml:"model"`
	Order     int               `yaml:"order"`
	Step      string            `yaml:"step"`
	Steps     int               `yaml:"steps"`
	Precision uint              `yaml:"precision"`
	Digits    int               `yaml:"digits"`
	InitState []string          `yaml:"init_state,omitempty"`
	Params    map[string]string `yaml:"params,omitempty"`

	// stepsSet records an explicit steps key, since zero steps is a valid
	// run and cannot mark the field as unset.
	stepsSet bool
}

// UnmarshalYAML decodes the mapping and notes whether steps was given.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "steps" {
				c.stepsSet = true
			}
		}
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Model:     DefaultModel,
		Order:     DefaultOrder,
		Step:      DefaultStep,
		Steps:     DefaultSteps,
		Precision: DefaultPrecision,
		Digits:    DefaultDigits,
	}
}

// Load reads a config file, filling unset fields from DefaultConfig.
func Load(path string) (*Config, error) {
	raw, err := Read(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Overlay(raw)
	return cfg, nil
}

// Read reads a config file as written, leaving unset fields zero so it can
// be overlaid on a preset.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets are never modified through a
// returned config.
func (c *Config) Clone() *Config {
	out := *c
	out.InitState = append([]string(nil), c.InitState...)
	if c.Params != nil {
		out.Params = make(map[string]string, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

// Overlay copies every field set in o over c. Parameters merge by name.
// A zero field counts as unset, except Steps read from YAML with an
// explicit steps key, so "steps: 0" in a file still overrides a preset.
func (c *Config) Overlay(o *Config) {
	if o.Model != "" {
		c.Model = o.Model
	}
	if o.Order != 0 {
		c.Order = o.Order
	}
	if o.Step != "" {
		c.Step = o.Step
	}
	if o.Steps != 0 || o.stepsSet {
		c.Steps = o.Steps
	}
	if o.Precision != 0 {
		c.Precision = o.Precision
	}
	if o.Digits != 0 {
		c.Digits = o.Digits
	}
	if len(o.InitState) > 0 {
		c.InitState = append([]string(nil), o.InitState...)
	}
	for k, v := range o.Params {
		if c.Params == nil {
			c.Params = make(map[string]string)
		}
		c.Params[k] = v
	}
}

// Validate checks the fields that do not depend on the model.
func (c *Config) Validate() error {
	var errs []error
	if c.Model == "" {
		errs = append(errs, errors.New("model is required"))
	}
	if c.Digits < 1 {
		errs = append(errs, fmt.Errorf("digits must be positive, got %d", c.Digits))
	}
	if _, err := c.TSM(); err != nil {
		errs = append(errs, err)
	}
	for i, s := range c.InitState {
		if _, err := bigmath.Parse(s, 64); err != nil {
			errs = append(errs, fmt.Errorf("init_state[%d]: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// TSM returns the integrator settings, parsing the step at the run
// precision.
func (c *Config) TSM() (tsm.Config, error) {
	prec := c.Precision
	if prec == 0 {
		prec = DefaultPrecision
	}
	step, err := bigmath.Parse(c.Step, prec)
	if err != nil {
		return tsm.Config{}, fmt.Errorf("step: %w", err)
	}
	cfg := tsm.Config{Order: c.Order, Step: step, Steps: c.Steps, Prec: c.Precision}
	if err := cfg.Validate(); err != nil {
		return tsm.Config{}, err
	}
	return cfg, nil
}

// Build returns the configured model with its parameters applied and the
// initial state parsed at the run precision. An empty InitState selects the
// model's default.
func (c *Config) Build(reg *models.Registry) (models.Model, []*big.Float, error) {
	m, err := reg.Get(c.Model)
	if err != nil {
		return nil, nil, err
	}
	if len(c.Params) > 0 {
		p, ok := m.(models.Configurable)
		if !ok {
			return nil, nil, fmt.Errorf("model %s has no parameters", c.Model)
		}
		for name, value := range c.Params {
			if err := p.SetParam(name, value); err != nil {
				return nil, nil, err
			}
		}
	}

	if len(c.InitState) == 0 {
		return m, m.DefaultState(c.Precision), nil
	}
	if len(c.InitState) != m.Dim() {
		return nil, nil, fmt.Errorf("model %s has %d state variables, init_state has %d", c.Model, m.Dim(), len(c.InitState))
	}
	x0 := make([]*big.Float, len(c.InitState))
	for i, s := range c.InitState {
		if x0[i], err = bigmath.Parse(s, c.Precision); err != nil {
			return nil, nil, fmt.Errorf("init_state[%d]: %w", i, err)
		}
	}
	return m, x0, nil
}
