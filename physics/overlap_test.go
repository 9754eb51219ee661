package physics_test

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/physics"
	"github.com/lixenwraith/tiltpick/round"
	"github.com/lixenwraith/tiltpick/vmath"
)

const stepDt = 1.0 / 60.0

// dealRound places n bodies the way a round does, reporting how many fell back to the center
func dealRound(arena physics.Arena, n int, seed uint64) ([]*physics.Body, int) {
	rng := vmath.NewFastRand(seed)
	r := round.RadiusFor(arena, n)
	placements := round.Place(n, r, round.SafeRect(arena, r), rng)
	bodies := make([]*physics.Body, n)
	fallbacks := 0
	for i, pl := range placements {
		bodies[i] = physics.NewBody(i, fmt.Sprint(i), pl.Pos, r)
		if pl.Fallback {
			fallbacks++
		}
	}
	return bodies, fallbacks
}

// gridRound lays n bodies out in rows with clear gaps
func gridRound(arena physics.Arena, n, perRow int) []*physics.Body {
	r := round.RadiusFor(arena, n)
	bodies := make([]*physics.Body, n)
	for i := range bodies {
		pos := vmath.V2(
			r*1.5+float64(i%perRow)*r*2.3,
			r*1.5+float64(i/perRow)*r*2.3,
		)
		bodies[i] = physics.NewBody(i, fmt.Sprint(i), pos, r)
	}
	return bodies
}

// TestWorldOverlapAfterTick checks containment and the overlap tolerance both hold after every tick
func TestWorldOverlapAfterTick(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		arena := physics.Arena{
			Width:  rapid.Float64Range(400, 1200).Draw(t, "w"),
			Height: rapid.Float64Range(300, 900).Draw(t, "h"),
		}
		n := rapid.IntRange(2, 7).Draw(t, "n")
		w := physics.NewWorld(arena)
		bodies, fallbacks := dealRound(arena, n, rapid.Uint64Min(1).Draw(t, "seed"))
		if fallbacks > 1 {
			// Stacked fallback centers are coincident and intentionally left alone
			t.Skip("placement stacked bodies at the center")
		}
		w.Replace(bodies)

		grav := vmath.V2(
			rapid.Float64Range(-parameter.GravityMax, parameter.GravityMax).Draw(t, "gx"),
			rapid.Float64Range(-parameter.GravityMax, parameter.GravityMax).Draw(t, "gy"),
		)
		grav = vmath.V2ClampMag(grav, parameter.GravityMax)

		for tick := 0; tick < 300; tick++ {
			w.Tick(stepDt, grav)

			if o := physics.MaxOverlap(w.Bodies()); o > parameter.ResolverTolerance+1e-9 {
				t.Fatalf("tick %d: overlap %f exceeds tolerance", tick, o)
			}
			for _, b := range w.Bodies() {
				const eps = 1e-9
				if b.Pos.X < b.Radius-eps || b.Pos.X > arena.Width-b.Radius+eps ||
					b.Pos.Y < b.Radius-eps || b.Pos.Y > arena.Height-b.Radius+eps {
					t.Fatalf("tick %d: body %d at %v escaped arena %v", tick, b.ID, b.Pos, arena)
				}
			}
		}
	})
}

// TestWorldCornerPileWithinTolerance holds a full round in one corner under steady tilt
func TestWorldCornerPileWithinTolerance(t *testing.T) {
	arena := physics.Arena{Width: 640, Height: 368}
	w := physics.NewWorld(arena)
	w.Replace(gridRound(arena, 7, 4))

	worst := 0.0
	for tick := 0; tick < 600; tick++ {
		w.Tick(stepDt, vmath.V2(1.2, 1.2))
		worst = max(worst, physics.MaxOverlap(w.Bodies()))
	}
	if worst > parameter.ResolverTolerance+1e-9 {
		t.Errorf("Expected overlap within %f, worst %f", parameter.ResolverTolerance, worst)
	}
}
