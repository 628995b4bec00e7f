package sketch

import (
	"slices"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
)

// Pointer is the single pointer every sketch reads, whether the platform
// delivered mouse or touch events.
type Pointer struct {
	Pos      geom.Vec
	Down     bool
	Pressed  bool
	Released bool
	Moved    bool
	// Consumed is set when a button or a drag claimed this frame's press.
	Consumed bool
}

// Update moves the pointer to a new sample and derives the edge flags
func (p *Pointer) Update(pos geom.Vec, down bool) {
	p.Pressed = down && !p.Down
	p.Released = !down && p.Down
	p.Moved = pos != p.Pos
	p.Down = down
	p.Pos = pos
	p.Consumed = false
}

// Click reports an unconsumed press and where it happened
func (p *Pointer) Click() (geom.Vec, bool) {
	return p.Pos, p.Pressed && !p.Consumed
}

// Key is a typed character. Keys without a character use the constants below.
type Key rune

const (
	KeyUp Key = 0xE000 + iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyBackspace
)

const KeySpace Key = ' '

// Keys holds the keys pressed during the current frame.
type Keys struct {
	Pressed []Key
}

// Has reports whether any of the keys was pressed this frame
func (k *Keys) Has(keys ...Key) bool {
	for _, key := range keys {
		if slices.Contains(k.Pressed, key) {
			return true
		}
	}
	return false
}

func (k *Keys) reset() {
	k.Pressed = k.Pressed[:0]
}

// PointerCapture reports that an overlay window owns the pointer or keyboard.
type PointerCapture struct {
	Mouse    bool
	Keyboard bool
}

// InputSource feeds one frame of pointer and keyboard state.
type InputSource interface {
	Poll(pointer *Pointer, keys *Keys)
}

// InputSystem polls the session's input source into the Pointer and Keys singletons.
type InputSystem struct {
	Source InputSource

	Pointer ecs.Singleton[Pointer]
	Keys    ecs.Singleton[Keys]
	Capture ecs.Singleton[PointerCapture]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	pointer := s.Pointer.Get()
	keys := s.Keys.Get()
	keys.reset()

	if s.Source == nil {
		pointer.Update(pointer.Pos, pointer.Down)
		return
	}
	s.Source.Poll(pointer, keys)

	capture := s.Capture.Get()
	if capture.Mouse {
		// let an ongoing drag finish but start nothing new under the overlay
		pointer.Pressed = false
		pointer.Moved = false
	}
	if capture.Keyboard {
		keys.reset()
	}
}

type scriptKind int

const (
	scriptMove scriptKind = iota
	scriptPress
	scriptRelease
	scriptKey
	scriptIdle
)

type scriptEvent struct {
	kind scriptKind
	pos  geom.Vec
	key  Key
}

// ScriptSource replays queued pointer and key events, one per frame. It drives
// sessions in tests and in headless runs. When the queue is empty the pointer
// holds its last state.
type ScriptSource struct {
	events []scriptEvent
	pos    geom.Vec
	down   bool
}

func NewScriptSource() *ScriptSource {
	return &ScriptSource{}
}

func (s *ScriptSource) Press(x, y float64) *ScriptSource {
	s.events = append(s.events, scriptEvent{kind: scriptPress, pos: geom.V(x, y)})
	return s
}

func (s *ScriptSource) Move(x, y float64) *ScriptSource {
	s.events = append(s.events, scriptEvent{kind: scriptMove, pos: geom.V(x, y)})
	return s
}

func (s *ScriptSource) Release() *ScriptSource {
	s.events = append(s.events, scriptEvent{kind: scriptRelease})
	return s
}

// Tap presses and releases at (x, y) over two frames
func (s *ScriptSource) Tap(x, y float64) *ScriptSource {
	return s.Press(x, y).Release()
}

// Drag presses at from, moves to each point in turn and releases
func (s *ScriptSource) Drag(from geom.Vec, through ...geom.Vec) *ScriptSource {
	s.Press(from.X, from.Y)
	for _, p := range through {
		s.Move(p.X, p.Y)
	}
	return s.Release()
}

func (s *ScriptSource) Key(k Key) *ScriptSource {
	s.events = append(s.events, scriptEvent{kind: scriptKey, key: k})
	return s
}

// Idle queues n frames without input
func (s *ScriptSource) Idle(n int) *ScriptSource {
	for range n {
		s.events = append(s.events, scriptEvent{kind: scriptIdle})
	}
	return s
}

// Pending returns the number of queued events
func (s *ScriptSource) Pending() int {
	return len(s.events)
}

func (s *ScriptSource) Poll(pointer *Pointer, keys *Keys) {
	if len(s.events) > 0 {
		ev := s.events[0]
		s.events = s.events[1:]

		switch ev.kind {
		case scriptPress:
			s.pos, s.down = ev.pos, true
		case scriptMove:
			s.pos = ev.pos
		case scriptRelease:
			s.down = false
		case scriptKey:
			keys.Pressed = append(keys.Pressed, ev.key)
		}
	}
	pointer.Update(s.pos, s.down)
}
