package geom

// Trail is a bounded list of recent positions. Once full, pushing a point
// evicts the oldest one.
type Trail struct {
	buf   []Vec
	start int
	n     int
}

// NewTrail creates an empty trail holding at most capacity points
func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{buf: make([]Vec, capacity)}
}

func (t *Trail) Push(p Vec) {
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

// Points returns the points from oldest to newest
func (t *Trail) Points() []Vec {
	out := make([]Vec, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

func (t *Trail) Len() int {
	return t.n
}

func (t *Trail) Cap() int {
	return len(t.buf)
}

func (t *Trail) Clear() {
	t.start = 0
	t.n = 0
}
