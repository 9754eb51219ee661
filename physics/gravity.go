package physics

import (
	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/vmath"
)

// GravityController turns drag input into a smoothed gravity vector
// Target follows input and decays when idle; current chases target with a first-order filter
type GravityController struct {
	target  vmath.Vec2
	current vmath.Vec2
	idle    float64 // Seconds since last input
	norm    float64 // Drag distance mapping to one unit of gravity
}

// NewGravityController creates a controller scaled to the arena
func NewGravityController(a Arena) *GravityController {
	g := &GravityController{}
	g.Resize(a)
	return g
}

// Resize rescales drag normalization for a new arena
func (g *GravityController) Resize(a Arena) {
	g.norm = a.MinDim() * parameter.DragNormFraction
	if g.norm <= 0 {
		g.norm = 1
	}
}

// OnDragDelta maps a drag displacement (pixels) onto the target vector
func (g *GravityController) OnDragDelta(d vmath.Vec2) {
	g.target = vmath.V2ClampMag(vmath.V2Add(g.target, vmath.V2Scale(d, 1/g.norm)), parameter.GravityMax)
	g.idle = 0
}

// SetTarget replaces the target vector and counts as input
func (g *GravityController) SetTarget(v vmath.Vec2) {
	g.target = vmath.V2ClampMag(v, parameter.GravityMax)
	g.idle = 0
}

// Tick advances idle decay and smoothing, returns the current vector
func (g *GravityController) Tick(dt float64) vmath.Vec2 {
	g.idle += dt
	if g.idle > parameter.GravityIdleThreshold {
		g.target = vmath.V2Scale(g.target, vmath.Decay(parameter.GravityDecayRate, dt))
	}

	g.current = vmath.V2Lerp(g.current, g.target, vmath.Approach(parameter.GravitySmoothRate, dt))
	g.current = vmath.V2ClampMag(g.current, parameter.GravityMax)
	return g.current
}

// Current returns the smoothed gravity vector
func (g *GravityController) Current() vmath.Vec2 {
	return g.current
}

// Target returns the input-driven target vector
func (g *GravityController) Target() vmath.Vec2 {
	return g.target
}

// Reset zeroes both vectors
func (g *GravityController) Reset() {
	g.target = vmath.Vec2{}
	g.current = vmath.Vec2{}
	g.idle = 0
}
