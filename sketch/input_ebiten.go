package sketch

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/prepositions/geom"
)

var namedKeys = map[ebiten.Key]Key{
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
	ebiten.KeyEnter:      KeyEnter,
	ebiten.KeyBackspace:  KeyBackspace,
}

// EbitenSource reads the first active touch, falling back to the mouse, plus
// the characters typed this frame.
type EbitenSource struct {
	touches []ebiten.TouchID
	chars   []rune
	lastPos geom.Vec
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (s *EbitenSource) Poll(pointer *Pointer, keys *Keys) {
	s.touches = ebiten.AppendTouchIDs(s.touches[:0])

	var pos geom.Vec
	var down bool
	if len(s.touches) > 0 {
		x, y := ebiten.TouchPosition(s.touches[0])
		pos, down = geom.V(float64(x), float64(y)), true
	} else if s.touchEnded() {
		// a lifted finger reports no position; release where it was
		pos = s.lastPos
	} else {
		x, y := ebiten.CursorPosition()
		pos = geom.V(float64(x), float64(y))
		down = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}
	s.lastPos = pos
	pointer.Update(pos, down)

	s.chars = ebiten.AppendInputChars(s.chars[:0])
	for _, r := range s.chars {
		keys.Pressed = append(keys.Pressed, Key(r))
	}
	for ek, k := range namedKeys {
		if inpututil.IsKeyJustPressed(ek) {
			keys.Pressed = append(keys.Pressed, k)
		}
	}
}

func (s *EbitenSource) touchEnded() bool {
	return len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0
}
