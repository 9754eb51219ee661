// Package particle runs short-lived decorative particles: ambient trails behind
// moving bodies and radial bursts on picks, completion and idle sparkle.
// Particles carry no gameplay state and never interact with bodies.
package particle

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tiltpick/vmath"
)

// Kind distinguishes trail puffs from burst sparkles
type Kind uint8

const (
	KindTrail Kind = iota
	KindBurst
)

func (k Kind) String() string {
	switch k {
	case KindTrail:
		return "trail"
	case KindBurst:
		return "burst"
	default:
		return "unknown"
	}
}

// Particle is one feedback unit, removed once Life reaches zero
type Particle struct {
	Pos      vmath.Vec2
	Vel      vmath.Vec2 // Pixels per reference frame
	Life     float64    // Starts at 1
	Decay    float64    // Life lost per reference frame
	Scale    float64
	Rotation float64 // Radians
	Spin     float64 // Radians per reference frame
	Color    colorful.Color
	Kind     Kind
}
