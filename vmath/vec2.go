package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector used by the arena simulation
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

func V2MagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Mag(v Vec2) float64 {
	return math.Sqrt(V2MagSq(v))
}

// V2Dist returns the Euclidean distance between two points
func V2Dist(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// V2Normalize returns the unit vector, zero-safe
func V2Normalize(v Vec2) Vec2 {
	mag := V2Mag(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// V2ClampMag limits vector to maxMag while preserving direction
func V2ClampMag(v Vec2, maxMag float64) Vec2 {
	magSq := V2MagSq(v)
	if magSq <= maxMag*maxMag || magSq == 0 {
		return v
	}
	return V2Scale(v, maxMag/math.Sqrt(magSq))
}

// V2Lerp moves a toward b by fraction t
func V2Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// V2FromAngle returns a vector of length mag pointing at angle (radians)
func V2FromAngle(angle, mag float64) Vec2 {
	return Vec2{math.Cos(angle) * mag, math.Sin(angle) * mag}
}
