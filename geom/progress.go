package geom

// Progress advances a value from 0 towards 1 by a fixed step per frame.
type Progress struct {
	Value float64
	Step  float64
}

// Advance adds Step to Value, clamping at 1. It returns true on the single
// call that brings Value to 1.
func (p *Progress) Advance() bool {
	if p.Value >= 1 {
		return false
	}
	p.Value += p.Step
	if p.Value >= 1 {
		p.Value = 1
		return true
	}
	return false
}

// Done reports whether the progress has reached 1
func (p *Progress) Done() bool {
	return p.Value >= 1
}

func (p *Progress) Reset() {
	p.Value = 0
}
