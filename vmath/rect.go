package vmath

// Rect is an axis-aligned rectangle in arena coordinates
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func RectWidth(r Rect) float64 {
	return r.MaxX - r.MinX
}

func RectHeight(r Rect) float64 {
	return r.MaxY - r.MinY
}

// RectCenter returns the center point of the rectangle
func RectCenter(r Rect) Vec2 {
	return Vec2{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// RectContains checks if point is within rectangle, edges inclusive
func RectContains(r Rect, p Vec2) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// RectEmpty reports a degenerate rectangle with no interior
func RectEmpty(r Rect) bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// RectRandomPoint returns a uniform random point within rectangle using provided RNG
// Degenerate axes collapse to their midpoint
func RectRandomPoint(r Rect, rng *FastRand) Vec2 {
	c := RectCenter(r)
	x, y := c.X, c.Y
	if r.MaxX > r.MinX {
		x = rng.Range(r.MinX, r.MaxX)
	}
	if r.MaxY > r.MinY {
		y = rng.Range(r.MinY, r.MaxY)
	}
	return Vec2{x, y}
}
