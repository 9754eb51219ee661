package physics

import (
	"math"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/vmath"
)

// World owns the live bodies of the current round
// Not safe for concurrent use; all mutation happens on the tick goroutine
type World struct {
	arena    Arena
	walls    Walls
	bodies   []*Body
	resolver *Resolver
	impacts  []Impact
}

// NewWorld creates an empty world with all walls enabled
func NewWorld(a Arena) *World {
	w := &World{
		arena:    a,
		walls:    WallsAll,
		resolver: NewResolver(),
		impacts:  make([]Impact, 0, 16),
	}
	w.resolver.SetBounds(a, w.walls)
	return w
}

// Arena returns the current arena bounds
func (w *World) Arena() Arena {
	return w.arena
}

// Resize changes arena bounds and clamps bodies into them
func (w *World) Resize(a Arena) {
	w.arena = a
	w.resolver.SetBounds(a, w.walls)
	for _, b := range w.bodies {
		ClampBounds(b, a, w.walls)
	}
}

// SetWalls selects which boundaries contain bodies
func (w *World) SetWalls(walls Walls) {
	w.walls = walls
	w.resolver.SetBounds(w.arena, walls)
}

// Replace swaps the whole body set, used on round transitions
func (w *World) Replace(bodies []*Body) {
	w.bodies = bodies
}

// Clear removes all bodies
func (w *World) Clear() {
	w.bodies = nil
}

// Remove deletes a body by ID, returns false if absent
func (w *World) Remove(id int) bool {
	for i, b := range w.bodies {
		if b.ID == id {
			w.bodies = append(w.bodies[:i:i], w.bodies[i+1:]...)
			return true
		}
	}
	return false
}

// Body returns the body with the given ID or nil
func (w *World) Body(id int) *Body {
	for _, b := range w.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Bodies returns the live body slice; callers must not retain it across ticks
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Len returns the live body count
func (w *World) Len() int {
	return len(w.bodies)
}

// Tick integrates all bodies, contains them, and resolves pair overlaps
// The returned impacts are valid until the next Tick
func (w *World) Tick(dt float64, gravity vmath.Vec2) []Impact {
	w.impacts = w.impacts[:0]
	if dt <= 0 {
		return w.impacts
	}

	for _, b := range w.bodies {
		Integrate(b, gravity, dt)

		sx := ReflectBoundsX(b, w.arena.Width, w.walls, parameter.WallRestitution)
		sy := ReflectBoundsY(b, w.arena.Height, w.walls, parameter.WallRestitution)
		if s := math.Max(sx, sy); s > 0 {
			b.Squash = math.Max(b.Squash, vmath.Clamp(s/b.Radius, 0, 1))
		}
	}

	// The resolver clamps to the walls after every pass, so both containment
	// and the overlap tolerance hold when it returns
	w.impacts = w.resolver.Resolve(w.bodies, w.impacts)
	return w.impacts
}

// Snapshot copies body state for readers outside the tick goroutine
func (w *World) Snapshot(dst []Body) []Body {
	dst = dst[:0]
	for _, b := range w.bodies {
		dst = append(dst, *b)
	}
	return dst
}
