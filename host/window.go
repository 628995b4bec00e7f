package host

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	debugui_ebiten "github.com/plus3/prepositions/ecs/debugui/ebiten"
	"github.com/plus3/prepositions/internal/logger"
	"github.com/plus3/prepositions/sketch"
)

// WindowConfig sizes and paces the window.
type WindowConfig struct {
	Scale float64
	TPS   int
}

// Window is the ebiten.Game that shows one sketch at a time. Switching sketch
// discards the session and starts a new one.
type Window struct {
	launcher *Launcher
	overlay  *Overlay
	backend  debugui_ebiten.ImguiBackend
	input    *sketch.EbitenSource
	cfg      WindowConfig
	log      *logger.Logger

	def     *sketch.Definition
	session *sketch.Session
}

// NewWindow prepares a window starting on def. The overlay is added to the
// launcher's extensions.
func NewWindow(launcher *Launcher, def *sketch.Definition, overlay *Overlay, cfg WindowConfig, log *logger.Logger) (*Window, error) {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	launcher.Extensions = append(launcher.Extensions, overlay)

	w := &Window{
		launcher: launcher,
		overlay:  overlay,
		input:    sketch.NewEbitenSource(),
		cfg:      cfg,
		log:      log,
	}
	width, height := w.windowSize(def)
	w.backend = debugui_ebiten.NewImguiBackend(Title(def), width, height)
	ebiten.SetTPS(cfg.TPS)

	if err := w.show(def); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Window) windowSize(def *sketch.Definition) (int, int) {
	return int(float64(def.Width) * w.cfg.Scale), int(float64(def.Height) * w.cfg.Scale)
}

func (w *Window) show(def *sketch.Definition) error {
	session, err := w.launcher.Start(def, w.input)
	if err != nil {
		return err
	}
	w.overlay.Attach(session)
	w.def, w.session = def, session

	ebiten.SetWindowTitle(Title(def))
	ebiten.SetWindowSize(w.windowSize(def))
	return nil
}

// Run opens the window and blocks until it is closed
func (w *Window) Run() error {
	err := ebiten.RunGame(w)
	w.log.Info("window closed")
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (w *Window) Update() error {
	typing := w.overlay.Visible() && w.session != nil && w.keyboardCaptured()
	if !typing && (inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		w.overlay.Toggle()
	}

	if !typing {
		var next *sketch.Definition
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
			next = sketch.Neighbor(w.def, -1, false)
		case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
			next = sketch.Neighbor(w.def, 1, false)
		case inpututil.IsKeyJustPressed(ebiten.KeyComma):
			next = sketch.Neighbor(w.def, -1, true)
		case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
			next = sketch.Neighbor(w.def, 1, true)
		}
		if next != nil && next != w.def {
			if err := w.show(next); err != nil {
				return fmt.Errorf("switch sketch: %w", err)
			}
		}
	}

	w.backend.BeginFrame()
	w.session.Step(1.0 / float64(w.cfg.TPS))
	w.backend.EndFrame()
	return nil
}

func (w *Window) keyboardCaptured() bool {
	var capture *sketch.PointerCapture
	return w.session.Storage().ReadSingleton(&capture) && capture.Keyboard
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.session.Draw(screen)
	if w.overlay.Visible() {
		w.backend.Draw(screen)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.backend.Layout(w.def.Width, w.def.Height)
	return w.def.Width, w.def.Height
}
