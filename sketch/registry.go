package sketch

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/plus3/prepositions/ecs"
)

var (
	ErrUnknownSketch  = errors.New("unknown sketch")
	ErrUnknownVariant = errors.New("unknown variant")
)

// Definition describes one variant of a preposition sketch.
type Definition struct {
	Preposition string
	Variant     string
	Summary     string

	Width, Height int

	// Params are the defaults of the variant; presets may override them.
	Params Params

	// Components registers sketch-specific component types, if any.
	Components func(registry *ecs.ComponentRegistry)
	// Setup spawns the initial entities and the sketch state.
	Setup func(scene *Scene) error
	// Systems returns the per-frame logic, run after the shared input systems.
	Systems func(scene *Scene) []ecs.System
}

// Name returns "preposition/variant"
func (d *Definition) Name() string {
	return d.Preposition + "/" + d.Variant
}

var definitions []*Definition

// Register adds a definition to the catalog. Registering the same
// preposition and variant twice panics.
func Register(def Definition) {
	if def.Preposition == "" || def.Variant == "" {
		panic("sketch definitions need a preposition and a variant")
	}
	if def.Width == 0 {
		def.Width = 400
	}
	if def.Height == 0 {
		def.Height = 300
	}
	for _, d := range definitions {
		if d.Preposition == def.Preposition && d.Variant == def.Variant {
			panic(fmt.Sprintf("sketch %s registered twice", def.Name()))
		}
	}
	definitions = append(definitions, &def)
}

// Lookup finds a definition. An empty variant selects the first variant
// registered for the preposition.
func Lookup(preposition, variant string) (*Definition, error) {
	variants := Variants(preposition)
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSketch, preposition)
	}
	if variant == "" {
		return variants[0], nil
	}
	for _, d := range variants {
		if d.Variant == variant {
			return d, nil
		}
	}
	names := make([]string, len(variants))
	for i, d := range variants {
		names[i] = d.Variant
	}
	return nil, fmt.Errorf("%w: %q for %s (have %s)", ErrUnknownVariant, variant, preposition, strings.Join(names, ", "))
}

// Variants returns the variants of one preposition in registration order
func Variants(preposition string) []*Definition {
	var out []*Definition
	for _, d := range definitions {
		if d.Preposition == preposition {
			out = append(out, d)
		}
	}
	return out
}

// All returns every definition sorted by preposition. Variants of one
// preposition keep their registration order.
func All() []*Definition {
	out := slices.Clone(definitions)
	slices.SortStableFunc(out, func(a, b *Definition) int {
		return strings.Compare(a.Preposition, b.Preposition)
	})
	return out
}

// Prepositions returns the distinct prepositions in sorted order
func Prepositions() []string {
	var out []string
	for _, d := range definitions {
		if !slices.Contains(out, d.Preposition) {
			out = append(out, d.Preposition)
		}
	}
	slices.Sort(out)
	return out
}

// Neighbor returns the definition step positions away from def in the catalog
// order, wrapping around. With variants set it moves between the variants of
// def's preposition instead.
func Neighbor(def *Definition, step int, variants bool) *Definition {
	if variants {
		list := Variants(def.Preposition)
		i := slices.Index(list, def)
		return list[wrap(i+step, len(list))]
	}

	preps := Prepositions()
	i := slices.Index(preps, def.Preposition)
	next, _ := Lookup(preps[wrap(i+step, len(preps))], "")
	return next
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
