// Package host runs sketch sessions, either in an Ebiten window or headless
// on a ticker.
package host

import (
	"fmt"
	"strings"

	"github.com/plus3/prepositions/internal/logger"
	"github.com/plus3/prepositions/internal/preset"
	"github.com/plus3/prepositions/sketch"
)

// Launcher builds sessions for catalog definitions. Presets that target a
// definition are applied before it starts.
type Launcher struct {
	Presets    []*preset.Preset
	Script     string
	Extensions []sketch.Extension
	// Seed makes every session reproducible when non-zero.
	Seed uint64
	Log  *logger.Logger
}

// Start builds a fresh session of def reading from input
func (l *Launcher) Start(def *sketch.Definition, input sketch.InputSource) (*sketch.Session, error) {
	log := l.Log
	if log == nil {
		log = logger.Discard()
	}

	tuned, err := preset.ApplyAll(l.Presets, def)
	if err != nil {
		return nil, err
	}

	opts := []sketch.Option{sketch.WithInput(input)}
	if l.Script != "" {
		opts = append(opts, sketch.WithScript(l.Script))
	}
	if l.Seed != 0 {
		opts = append(opts, sketch.WithSeed(l.Seed))
	}
	for _, ext := range l.Extensions {
		opts = append(opts, sketch.WithExtension(ext))
	}

	session, err := sketch.NewSession(tuned, opts...)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", def.Name(), err)
	}
	log.Info("started %s%s", def.Name(), describeParams(tuned.Params))
	return session, nil
}

func describeParams(params sketch.Params) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, name := range params.Names() {
		parts = append(parts, fmt.Sprintf("%s=%g", name, params[name]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// Title is the window title for a definition
func Title(def *sketch.Definition) string {
	return fmt.Sprintf("Prepositions - %s (%s)", def.Preposition, def.Variant)
}
