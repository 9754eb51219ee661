package physics

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tiltpick/vmath"
)

// Body is a floating selectable circle representing one answer option
type Body struct {
	ID  int    // Slot index within the round
	Key string // Answer key, e.g. "3" or "apple"

	Pos    vmath.Vec2
	Vel    vmath.Vec2 // Pixels per reference frame
	Radius float64    // Fixed at creation

	Spawn  float64 // Spawn-in progress [0,1]
	Squash float64 // Impact deformation [0,1], decays each tick
	Phase  float64 // Ambient drift phase (radians)
	Shake  float64 // Transient shake offset after a wrong pick

	Color colorful.Color
}

// NewBody creates a body at rest with spawn-in starting from zero
func NewBody(id int, key string, pos vmath.Vec2, radius float64) *Body {
	return &Body{
		ID:     id,
		Key:    key,
		Pos:    pos,
		Radius: radius,
	}
}

// Contains reports whether p lies within scale*radius of the body center
func (b *Body) Contains(p vmath.Vec2, scale float64) bool {
	r := b.Radius * scale
	return vmath.V2MagSq(vmath.V2Sub(p, b.Pos)) <= r*r
}
