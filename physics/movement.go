package physics

import (
	"github.com/lixenwraith/tiltpick/vmath"
)

// ImpulseMode defines how impulse is applied to velocity
type ImpulseMode uint8

const (
	// ImpulseAdditive adds impulse to existing velocity (standard physics)
	ImpulseAdditive ImpulseMode = iota
	// ImpulseOverride replaces velocity with impulse (hard redirect)
	ImpulseOverride
)

// ApplyImpulse adds velocity delta
func ApplyImpulse(b *Body, impulse vmath.Vec2) {
	b.Vel = vmath.V2Add(b.Vel, impulse)
}

// SetImpulse overrides velocity
func SetImpulse(b *Body, impulse vmath.Vec2) {
	b.Vel = impulse
}

// Impart applies impulse according to mode
func Impart(b *Body, impulse vmath.Vec2, mode ImpulseMode) {
	switch mode {
	case ImpulseAdditive:
		ApplyImpulse(b, impulse)
	case ImpulseOverride:
		SetImpulse(b, impulse)
	}
}

// CapSpeed limits the velocity magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(vel *vmath.Vec2, maxSpeed float64) bool {
	if vmath.V2MagSq(*vel) <= maxSpeed*maxSpeed {
		return false
	}
	*vel = vmath.V2ClampMag(*vel, maxSpeed)
	return true
}
