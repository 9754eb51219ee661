package physics

import (
	"math"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/vmath"
)

// Integrate advances one body by dt seconds under gravity g (semi-implicit Euler)
// v += a*f; v *= damping; cap; p += v*f, where f is dt in reference frames
func Integrate(b *Body, g vmath.Vec2, dt float64) {
	f := vmath.FrameScale(dt)

	// Ambient drift, independent of gravity
	b.Phase += parameter.DriftPhaseRate * dt
	drift := vmath.Vec2{
		X: math.Sin(b.Phase) * parameter.DriftAmplitude,
		Y: math.Cos(b.Phase*0.7) * parameter.DriftAmplitude,
	}

	accel := vmath.V2Scale(vmath.V2Add(g, drift), b.Radius*parameter.AccelPerRadius)
	b.Vel = vmath.V2Add(b.Vel, vmath.V2Scale(accel, f))
	b.Vel = vmath.V2Scale(b.Vel, vmath.Decay(parameter.DampingRate, dt))
	CapSpeed(&b.Vel, b.Radius*parameter.MaxSpeedRadii)

	b.Pos = vmath.V2Add(b.Pos, vmath.V2Scale(b.Vel, f))

	b.Squash *= vmath.Decay(parameter.SquashDecayRate, dt)
	b.Shake *= vmath.Decay(parameter.ShakeDecayRate, dt)
	if b.Spawn < 1 {
		b.Spawn = math.Min(1, b.Spawn+parameter.SpawnRate*dt)
	}
}

// ReflectBoundsX handles horizontal wall contact, returns the impact speed (0 if none)
// Snaps the center to radius from the wall and reflects with restitution
func ReflectBoundsX(b *Body, width float64, walls Walls, restitution float64) float64 {
	if walls&WallLeft != 0 && b.Pos.X < b.Radius {
		b.Pos.X = b.Radius
		if b.Vel.X < 0 {
			speed := -b.Vel.X
			b.Vel.X = speed * restitution
			return speed
		}
	}
	if walls&WallRight != 0 && b.Pos.X > width-b.Radius {
		b.Pos.X = width - b.Radius
		if b.Vel.X > 0 {
			speed := b.Vel.X
			b.Vel.X = -speed * restitution
			return speed
		}
	}
	return 0
}

// ReflectBoundsY handles vertical wall contact, returns the impact speed (0 if none)
func ReflectBoundsY(b *Body, height float64, walls Walls, restitution float64) float64 {
	if walls&WallTop != 0 && b.Pos.Y < b.Radius {
		b.Pos.Y = b.Radius
		if b.Vel.Y < 0 {
			speed := -b.Vel.Y
			b.Vel.Y = speed * restitution
			return speed
		}
	}
	if walls&WallBottom != 0 && b.Pos.Y > height-b.Radius {
		b.Pos.Y = height - b.Radius
		if b.Vel.Y > 0 {
			speed := b.Vel.Y
			b.Vel.Y = -speed * restitution
			return speed
		}
	}
	return 0
}

// ClampBounds snaps position inside enabled walls without touching velocity
func ClampBounds(b *Body, a Arena, walls Walls) {
	lo, hi := b.Radius, a.Width-b.Radius
	if hi < lo {
		// Arena narrower than the body, center it on this axis
		lo, hi = a.Width/2, a.Width/2
	}
	if walls&WallLeft != 0 && b.Pos.X < lo {
		b.Pos.X = lo
	}
	if walls&WallRight != 0 && b.Pos.X > hi {
		b.Pos.X = hi
	}

	lo, hi = b.Radius, a.Height-b.Radius
	if hi < lo {
		lo, hi = a.Height/2, a.Height/2
	}
	if walls&WallTop != 0 && b.Pos.Y < lo {
		b.Pos.Y = lo
	}
	if walls&WallBottom != 0 && b.Pos.Y > hi {
		b.Pos.Y = hi
	}
}
