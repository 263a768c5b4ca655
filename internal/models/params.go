package models

import (
	"fmt"
	"math/big"

	"github.com/san-kum/taylorsim/internal/bigmath"
)

// Params holds named model parameters as decimal or rational strings
// ("0.25", "8/3"). Values are parsed at the precision of the run by load, so
// rational parameters stay exact at any precision.
type Params struct {
	names []string
	src   map[string]string
	val   map[string]*big.Float
}

func newParams(kv ...string) *Params {
	p := &Params{src: make(map[string]string), val: make(map[string]*big.Float)}
	for i := 0; i+1 < len(kv); i += 2 {
		p.names = append(p.names, kv[i])
		p.src[kv[i]] = kv[i+1]
	}
	return p
}

// GetParams returns a copy of the parameter strings.
func (p *Params) GetParams() map[string]string {
	out := make(map[string]string, len(p.src))
	for k, v := range p.src {
		out[k] = v
	}
	return out
}

// ParamNames returns the parameter names in declaration order.
func (p *Params) ParamNames() []string {
	return append([]string(nil), p.names...)
}

// SetParam replaces a parameter. The value must parse as a finite number.
func (p *Params) SetParam(name, value string) error {
	if _, ok := p.src[name]; !ok {
		return fmt.Errorf("unknown param: %s", name)
	}
	if _, err := bigmath.Parse(value, 64); err != nil {
		return fmt.Errorf("param %s: %w", name, err)
	}
	p.src[name] = value
	return nil
}

func (p *Params) load(prec uint) {
	for name, s := range p.src {
		p.val[name] = bigmath.MustParse(s, prec)
	}
}

// at parses a parameter at prec, for use outside a run.
func (p *Params) at(name string, prec uint) *big.Float {
	return bigmath.MustParse(p.src[name], prec)
}

func (p *Params) get(name string) *big.Float {
	v, ok := p.val[name]
	if !ok {
		panic("models: parameter " + name + " read before Prepare")
	}
	return v
}
