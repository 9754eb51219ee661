package physics

import (
	"math"

	"github.com/lixenwraith/tiltpick/vmath"
)

// Walls is a bitmask of enabled arena boundaries
type Walls uint8

const (
	WallLeft Walls = 1 << iota
	WallRight
	WallTop
	WallBottom

	WallsAll = WallLeft | WallRight | WallTop | WallBottom
)

// Arena is the bounded simulation rectangle anchored at the origin
type Arena struct {
	Width, Height float64
}

// MinDim returns the shorter arena side
func (a Arena) MinDim() float64 {
	return math.Min(a.Width, a.Height)
}

// Center returns the arena midpoint
func (a Arena) Center() vmath.Vec2 {
	return vmath.Vec2{X: a.Width / 2, Y: a.Height / 2}
}

// Rect returns the arena as a rectangle
func (a Arena) Rect() vmath.Rect {
	return vmath.Rect{MaxX: a.Width, MaxY: a.Height}
}
