package physics

import (
	"math"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/vmath"
)

// Impact reports an approaching body pair resolved during a tick
type Impact struct {
	A, B      int        // Body IDs
	Point     vmath.Vec2 // Contact midpoint
	Intensity float64    // Normal relative speed over the smaller radius, [0,1]
}

// Resolver separates overlapping bodies and exchanges normal momentum
// All pairs are tested, O(n²); rounds hold at most a handful of bodies so no broadphase is used
type Resolver struct {
	Restitution float64
	Tolerance   float64 // Accepted residual overlap as a fraction of combined radius
	MaxPasses   int

	arena   Arena
	walls   Walls
	bounded bool
}

// NewResolver creates a resolver with the default tuning
func NewResolver() *Resolver {
	return &Resolver{
		Restitution: parameter.PairRestitution,
		Tolerance:   parameter.ResolverTolerance,
		MaxPasses:   parameter.ResolverMaxPasses,
	}
}

// SetBounds makes every pass end with bodies clamped inside the enabled walls
func (r *Resolver) SetBounds(a Arena, walls Walls) {
	r.arena = a
	r.walls = walls
	r.bounded = true
}

// Resolve runs one collision pass with velocity response, then positional-only
// relaxation passes until the worst overlap is within tolerance
// With bounds set, each pass is followed by a wall clamp so the result is contained
// Impacts from the first pass are appended to dst and returned
func (r *Resolver) Resolve(bodies []*Body, dst []Impact) []Impact {
	dst = r.pass(bodies, dst, true)
	r.contain(bodies)
	for i := 1; i < r.MaxPasses && MaxOverlap(bodies) > r.Tolerance; i++ {
		r.pass(bodies, nil, false)
		r.contain(bodies)
	}
	return dst
}

func (r *Resolver) contain(bodies []*Body) {
	if !r.bounded {
		return
	}
	for _, b := range bodies {
		ClampBounds(b, r.arena, r.walls)
	}
}

// pass resolves every unordered pair once in index order
func (r *Resolver) pass(bodies []*Body, dst []Impact, respond bool) []Impact {
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]

			minDist := a.Radius + b.Radius
			delta := vmath.V2Sub(b.Pos, a.Pos)
			distSq := vmath.V2MagSq(delta)
			if distSq >= minDist*minDist {
				continue
			}

			d := math.Sqrt(distSq)
			if d < parameter.ResolverEpsilon {
				// Coincident centers have no meaningful normal, skip this pair
				continue
			}
			n := vmath.V2Scale(delta, 1/d)

			overlap := minDist - d

			// Symmetric half push, all bodies weigh the same
			half := vmath.V2Scale(n, overlap/2)
			a.Pos = vmath.V2Sub(a.Pos, half)
			b.Pos = vmath.V2Add(b.Pos, half)

			if !respond {
				continue
			}

			vn := vmath.V2Dot(vmath.V2Sub(b.Vel, a.Vel), n)
			if vn >= 0 {
				continue // Separating
			}

			j := (1 + r.Restitution) * -vn / 2
			ApplyImpulse(a, vmath.V2Scale(n, -j))
			ApplyImpulse(b, vmath.V2Scale(n, j))

			intensity := vmath.Clamp(-vn/math.Min(a.Radius, b.Radius), 0, 1)
			a.Squash = math.Max(a.Squash, intensity)
			b.Squash = math.Max(b.Squash, intensity)

			dst = append(dst, Impact{
				A:         a.ID,
				B:         b.ID,
				Point:     vmath.V2Add(a.Pos, vmath.V2Scale(n, a.Radius)),
				Intensity: intensity,
			})
		}
	}
	return dst
}

// MaxOverlap returns the worst pairwise overlap relative to combined radius
func MaxOverlap(bodies []*Body) float64 {
	worst := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			minDist := a.Radius + b.Radius
			d := vmath.V2Dist(a.Pos, b.Pos)
			if d < minDist {
				if rel := (minDist - d) / minDist; rel > worst {
					worst = rel
				}
			}
		}
	}
	return worst
}
