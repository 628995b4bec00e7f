// Package script runs small Lua programs that describe motion paths.
//
// A path script defines a global function path(t) that maps t in [0, 1] to
// a point on the canvas:
//
//	function path(t)
//	  return 50 + t * 300, 150
//	end
package script

import (
	_ "embed"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/plus3/prepositions/geom"
)

// DefaultWave is the path used when no script is configured.
//
//go:embed wave.lua
var DefaultWave string

var ErrNoPathFunc = errors.New("script does not define function path(t)")

// Path is a compiled path script. It owns a Lua state and must be closed.
type Path struct {
	luaState *lua.LState
	fn       *lua.LFunction
}

// CompilePath runs src in a fresh Lua state and looks up its path function
func CompilePath(src string) (*Path, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("lua compile error: %w", err)
	}

	fn, ok := L.GetGlobal("path").(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, ErrNoPathFunc
	}
	return &Path{luaState: L, fn: fn}, nil
}

// At evaluates the path at t
func (p *Path) At(t float64) (geom.Vec, error) {
	L := p.luaState
	if err := L.CallByParam(lua.P{Fn: p.fn, NRet: 2, Protect: true}, lua.LNumber(t)); err != nil {
		return geom.Vec{}, fmt.Errorf("path(%g): %w", t, err)
	}
	x, y := L.Get(-2), L.Get(-1)
	L.Pop(2)

	xn, okX := x.(lua.LNumber)
	yn, okY := y.(lua.LNumber)
	if !okX || !okY {
		return geom.Vec{}, fmt.Errorf("path(%g) returned %s, %s; want two numbers", t, x.Type(), y.Type())
	}
	return geom.V(float64(xn), float64(yn)), nil
}

// Sample evaluates the path at n evenly spaced values of t, both ends included
func (p *Path) Sample(n int) ([]geom.Vec, error) {
	if n < 2 {
		return nil, fmt.Errorf("sample count %d: need at least 2", n)
	}
	points := make([]geom.Vec, n)
	for i := range points {
		v, err := p.At(float64(i) / float64(n-1))
		if err != nil {
			return nil, err
		}
		points[i] = v
	}
	return points, nil
}

// Close releases the Lua state
func (p *Path) Close() {
	if p.luaState != nil {
		p.luaState.Close()
		p.luaState = nil
	}
}
