package round

import (
	"math"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/physics"
	"github.com/lixenwraith/tiltpick/vmath"
)

// Placement is a sampled body center
type Placement struct {
	Pos      vmath.Vec2
	Fallback bool // Sampling exhausted, placed at the safe rectangle center
}

// RadiusFor sizes bodies from arena and option count, fewer options give larger bodies
func RadiusFor(a physics.Arena, n int) float64 {
	if n < 1 {
		n = 1
	}
	r := a.MinDim() * parameter.RadiusScale / math.Sqrt(float64(n))
	return vmath.Clamp(r, parameter.RadiusMin, parameter.RadiusMax)
}

// SafeRect insets the arena by the body margin and reserves the top UI band
// A degenerate result collapses to the arena center
func SafeRect(a physics.Arena, radius float64) vmath.Rect {
	margin := math.Max(radius*parameter.SafeMarginFactor, parameter.SafeMarginMin)
	top := a.Height * parameter.TopBandFraction

	r := vmath.Rect{
		MinX: margin,
		MinY: top + margin,
		MaxX: a.Width - margin,
		MaxY: a.Height - margin,
	}
	if vmath.RectEmpty(r) {
		c := a.Center()
		return vmath.Rect{MinX: c.X, MinY: c.Y, MaxX: c.X, MaxY: c.Y}
	}
	return r
}

// Place picks n centers by rejection sampling inside safe
// Each accepted center is farther than PlacementSeparation*radius from all earlier ones
func Place(n int, radius float64, safe vmath.Rect, rng *vmath.FastRand) []Placement {
	minDist := parameter.PlacementSeparation * radius
	minDistSq := minDist * minDist

	out := make([]Placement, 0, n)
	for i := 0; i < n; i++ {
		placed := false
		for attempt := 0; attempt < parameter.PlacementAttempts; attempt++ {
			p := vmath.RectRandomPoint(safe, rng)
			if clearOf(p, out, minDistSq) {
				out = append(out, Placement{Pos: p})
				placed = true
				break
			}
		}
		if !placed {
			out = append(out, Placement{Pos: vmath.RectCenter(safe), Fallback: true})
		}
	}
	return out
}

func clearOf(p vmath.Vec2, placed []Placement, minDistSq float64) bool {
	for _, q := range placed {
		if vmath.V2MagSq(vmath.V2Sub(p, q.Pos)) <= minDistSq {
			return false
		}
	}
	return true
}
