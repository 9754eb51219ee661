package engine

import (
	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/vmath"
)

// Gestures splits a pointer stream into taps and drags by movement slop
type Gestures struct {
	down     bool
	dragging bool
	origin   vmath.Vec2
	last     vmath.Vec2
	slop     float64
}

// NewGestures creates a recognizer with the default slop
func NewGestures() *Gestures {
	return &Gestures{slop: parameter.TapSlop}
}

// Down starts a gesture
func (g *Gestures) Down(pos vmath.Vec2) {
	g.down = true
	g.dragging = false
	g.origin = pos
	g.last = pos
}

// Move returns the drag delta since the last reported position
// Nothing is reported until the pointer leaves the slop radius; the first delta covers all prior movement
func (g *Gestures) Move(pos vmath.Vec2) (vmath.Vec2, bool) {
	if !g.down {
		return vmath.Vec2{}, false
	}
	if !g.dragging {
		if vmath.V2Dist(pos, g.origin) <= g.slop {
			return vmath.Vec2{}, false
		}
		g.dragging = true
	}
	d := vmath.V2Sub(pos, g.last)
	g.last = pos
	return d, true
}

// Up ends the gesture, returning true if it was a tap
func (g *Gestures) Up(pos vmath.Vec2) bool {
	if !g.down {
		return false
	}
	g.down = false
	tap := !g.dragging && vmath.V2Dist(pos, g.origin) <= g.slop
	g.dragging = false
	return tap
}

// Dragging reports whether the current gesture passed the slop
func (g *Gestures) Dragging() bool {
	return g.dragging
}
