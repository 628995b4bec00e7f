package host

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plus3/prepositions/geom"
)

// TapList collects repeated -tap x,y flags. It implements flag.Value.
type TapList []geom.Vec

func (t *TapList) String() string {
	parts := make([]string, len(*t))
	for i, p := range *t {
		parts[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func (t *TapList) Set(value string) error {
	p, err := ParseTap(value)
	if err != nil {
		return err
	}
	*t = append(*t, p)
	return nil
}

// ParseTap reads a point written as "x,y"
func ParseTap(value string) (geom.Vec, error) {
	xs, ys, ok := strings.Cut(value, ",")
	if !ok {
		return geom.Vec{}, fmt.Errorf("tap %q: want x,y", value)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Vec{}, fmt.Errorf("tap %q: bad x: %w", value, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Vec{}, fmt.Errorf("tap %q: bad y: %w", value, err)
	}
	return geom.V(x, y), nil
}
