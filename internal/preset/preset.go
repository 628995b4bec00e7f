// Package preset loads JSON files that override the parameters of a sketch
// variant. A preset names the sketch and variant it tunes:
//
//	{"sketch": "beside", "variant": "classic", "params": {"alignmentTolerance": 40}}
//
// Files are validated against an embedded JSON Schema before they are
// decoded, and every parameter must exist on the variant.
package preset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/plus3/prepositions/sketch"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "mem://schemas/preset.json"

//go:embed preset.schema.json
var schemaJSON []byte

var ErrInvalidPreset = errors.New("invalid preset")

type Preset struct {
	Sketch      string             `json:"sketch"`
	Variant     string             `json:"variant,omitempty"`
	Description string             `json:"description,omitempty"`
	Params      map[string]float64 `json:"params"`

	// Source is the file the preset was read from, if any.
	Source string `json:"-"`
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add preset schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Parse validates and decodes one preset document and checks it against the
// sketch registry.
func Parse(data []byte) (*Preset, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}

	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	def, err := p.Definition()
	if err != nil {
		return nil, err
	}
	for _, name := range slices.Sorted(maps.Keys(p.Params)) {
		if _, ok := def.Params[name]; !ok {
			return nil, fmt.Errorf("%w: %s has no parameter %q", ErrInvalidPreset, def.Name(), name)
		}
	}
	return &p, nil
}

// Load reads and parses a preset file
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	p.Source = path
	return p, nil
}

// LoadDir loads every *.json file in dir in name order. The first file that
// fails to load stops the scan.
func LoadDir(dir string) ([]*Preset, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)

	presets := make([]*Preset, 0, len(paths))
	for _, path := range paths {
		p, err := Load(path)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// Definition returns the registered definition the preset targets
func (p *Preset) Definition() (*sketch.Definition, error) {
	def, err := sketch.Lookup(p.Sketch, p.Variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	return def, nil
}

// Matches reports whether the preset targets def
func (p *Preset) Matches(def *sketch.Definition) bool {
	target, err := p.Definition()
	return err == nil && target == def
}

// Apply returns a copy of def with the preset's parameters in place of the
// defaults. def itself is not modified.
func (p *Preset) Apply(def *sketch.Definition) (*sketch.Definition, error) {
	params, err := def.Params.With(p.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPreset, def.Name(), err)
	}
	out := *def
	out.Params = params
	return &out, nil
}

// ApplyAll applies, in order, every preset that targets def. Later presets
// win where they set the same parameter.
func ApplyAll(presets []*Preset, def *sketch.Definition) (*sketch.Definition, error) {
	out := def
	for _, p := range presets {
		if !p.Matches(def) {
			continue
		}
		var err error
		if out, err = p.Apply(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
