package sketch

import (
	"fmt"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/prepositions/ecs"
)

// Extension plugs extra components and systems into every session, such as a
// debug overlay. Its systems run before the input system.
type Extension interface {
	RegisterComponents(registry *ecs.ComponentRegistry)
	Setup(storage *ecs.Storage)
	Systems() []ecs.System
}

type sessionConfig struct {
	source     InputSource
	params     map[string]float64
	seed       uint64
	seeded     bool
	script     string
	extensions []Extension
}

type Option func(*sessionConfig)

// WithInput sets the input source. Sessions without one see no input.
func WithInput(source InputSource) Option {
	return func(c *sessionConfig) {
		c.source = source
	}
}

// WithParams overrides parameters of the definition
func WithParams(params map[string]float64) Option {
	return func(c *sessionConfig) {
		c.params = params
	}
}

// WithSeed makes random placement reproducible
func WithSeed(seed uint64) Option {
	return func(c *sessionConfig) {
		c.seed = seed
		c.seeded = true
	}
}

// WithScript hands source text to the sketch, see Scene.Script
func WithScript(src string) Option {
	return func(c *sessionConfig) {
		c.script = src
	}
}

func WithExtension(ext Extension) Option {
	return func(c *sessionConfig) {
		c.extensions = append(c.extensions, ext)
	}
}

// Session is one running sketch. It owns the storage and the update and draw
// schedulers; switching sketches discards the session and builds a new one.
type Session struct {
	def     *Definition
	storage *ecs.Storage
	update  *ecs.Scheduler
	draw    *ecs.Scheduler
	status  *ecs.Singleton[Status]
	screen  *ecs.Singleton[Screen]
}

// NewSession builds a fresh world for def and runs its Setup.
func NewSession(def *Definition, opts ...Option) (*Session, error) {
	cfg := sessionConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.seeded {
		cfg.seed = rand.Uint64()
	}

	params, err := def.Params.With(cfg.params)
	if err != nil {
		return nil, fmt.Errorf("sketch %s: %w", def.Name(), err)
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	if def.Components != nil {
		def.Components(registry)
	}
	for _, ext := range cfg.extensions {
		ext.RegisterComponents(registry)
	}

	storage := ecs.NewStorage(registry)
	canvas := Canvas{Width: float64(def.Width), Height: float64(def.Height), Background: Background}
	rng := Random{rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))}

	storage.AddSingleton(canvas)
	storage.AddSingleton(Clock{})
	storage.AddSingleton(Status{})
	storage.AddSingleton(ButtonPress{})
	storage.AddSingleton(Pointer{})
	storage.AddSingleton(Keys{})
	storage.AddSingleton(PointerCapture{})
	storage.AddSingleton(rng)
	storage.AddSingleton(params)
	storage.AddSingleton(Screen{})

	var canvasPtr *Canvas
	storage.ReadSingleton(&canvasPtr)

	scene := &Scene{
		Storage: storage,
		Canvas:  canvasPtr,
		Params:  params,
		Rand:    rng,
		Script:  cfg.script,
	}
	if def.Setup != nil {
		if err := def.Setup(scene); err != nil {
			return nil, fmt.Errorf("sketch %s: setup: %w", def.Name(), err)
		}
	}

	update := ecs.NewScheduler(storage)
	for _, ext := range cfg.extensions {
		ext.Setup(storage)
		for _, sys := range ext.Systems() {
			update.Register(sys)
		}
	}
	update.Register(&ClockSystem{})
	update.Register(&InputSystem{Source: cfg.source})
	update.Register(&ButtonSystem{})
	update.Register(&DragSystem{})
	if def.Systems != nil {
		for _, sys := range def.Systems(scene) {
			update.Register(sys)
		}
	}
	update.Register(&ParticleSystem{})

	draw := ecs.NewScheduler(storage)
	draw.Register(&RenderSystem{})
	draw.Register(&HUDSystem{})

	return &Session{
		def:     def,
		storage: storage,
		update:  update,
		draw:    draw,
		status:  ecs.NewSingleton[Status](storage),
		screen:  ecs.NewSingleton[Screen](storage),
	}, nil
}

func (s *Session) Definition() *Definition {
	return s.def
}

// Step advances the sketch by one frame of dt seconds
func (s *Session) Step(dt float64) {
	s.update.Once(dt)
}

// Draw renders the current frame into screen
func (s *Session) Draw(screen *ebiten.Image) {
	s.screen.Get().Image = screen
	s.draw.Once(0)
}

// Status returns a copy of the current status
func (s *Session) Status() Status {
	st := *s.status.Get()
	st.Info = append([]string(nil), st.Info...)
	return st
}

func (s *Session) Storage() *ecs.Storage {
	return s.storage
}

// Scheduler returns the update scheduler
func (s *Session) Scheduler() *ecs.Scheduler {
	return s.update
}
