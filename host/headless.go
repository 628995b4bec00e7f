package host

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/internal/logger"
	"github.com/plus3/prepositions/sketch"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz int
	// Ticks stops the run after that many frames; zero runs until ctx ends.
	Ticks uint64
	// Taps are replayed from the first tick, one press or release per frame.
	Taps TapList
}

// RunHeadless starts def without a window and runs its scheduler on a ticker.
// Every change of the status line is logged. It returns the last status.
func RunHeadless(ctx context.Context, launcher *Launcher, def *sketch.Definition, cfg HeadlessConfig, log *logger.Logger) (sketch.Status, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return sketch.Status{}, fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	src := sketch.NewScriptSource()
	for _, p := range cfg.Taps {
		src.Tap(p.X, p.Y)
	}
	session, err := launcher.Start(def, src)
	if err != nil {
		return sketch.Status{}, err
	}

	watch := &statusLog{log: log}
	session.Scheduler().Register(watch)

	err = session.Scheduler().Run(ctx, d, cfg.Ticks)
	if err != nil {
		log.Info("stopped after %d ticks", watch.tick)
		return watch.last, err
	}
	for _, line := range watch.last.Info {
		log.Debug("  %s", line)
	}
	return watch.last, nil
}

// statusLog runs after the sketch systems and logs every change of the status
// line with the tick it happened on.
type statusLog struct {
	Status ecs.Singleton[sketch.Status]

	log  *logger.Logger
	tick uint64
	last sketch.Status
}

func (s *statusLog) Execute(frame *ecs.UpdateFrame) {
	s.tick++
	status := s.Status.Get()
	if status.Text != s.last.Text || status.Highlight != s.last.Highlight {
		marker := ""
		if status.Highlight {
			marker = " *"
		}
		s.log.Info("tick %d: %s%s", s.tick, status.Text, marker)
	}
	s.last = sketch.Status{Text: status.Text, Highlight: status.Highlight, Info: slices.Clone(status.Info)}
}
