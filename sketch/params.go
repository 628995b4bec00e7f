package sketch

import (
	"fmt"
	"maps"
	"slices"
)

// Params are the tunable numbers of one sketch variant, keyed by name.
type Params map[string]float64

// Get returns a parameter, or zero when it is not defined
func (p Params) Get(name string) float64 {
	return p[name]
}

// Int returns a parameter truncated to an int
func (p Params) Int(name string) int {
	return int(p[name])
}

func (p Params) Clone() Params {
	return maps.Clone(p)
}

// Names returns the parameter names in sorted order
func (p Params) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// With returns a copy of p with overrides applied. Overriding a name that p
// does not define is an error.
func (p Params) With(overrides map[string]float64) (Params, error) {
	out := p.Clone()
	if out == nil {
		out = Params{}
	}
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		if _, ok := p[name]; !ok {
			return nil, fmt.Errorf("unknown parameter %q", name)
		}
		out[name] = overrides[name]
	}
	return out, nil
}
