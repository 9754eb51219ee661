package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/vmath"
)

const tickDt = 1.0 / 60.0

// TestGravityIdleDecay verifies target (1.5,0) with no input for 2 seconds settles below 0.05
func TestGravityIdleDecay(t *testing.T) {
	g := NewGravityController(Arena{Width: 800, Height: 600})
	g.SetTarget(vmath.V2(1.5, 0))

	for i := 0; i < 120; i++ {
		g.Tick(tickDt)
	}

	if mag := vmath.V2Mag(g.Current()); mag >= 0.05 {
		t.Errorf("Expected current gravity below 0.05 after 2s idle, got %f", mag)
	}
	if mag := vmath.V2Mag(g.Target()); mag >= 0.05 {
		t.Errorf("Expected target gravity below 0.05 after 2s idle, got %f", mag)
	}
}

// TestGravityMonotonicDecay verifies magnitude strictly decreases once current passes the decaying target
func TestGravityMonotonicDecay(t *testing.T) {
	g := NewGravityController(Arena{Width: 800, Height: 600})
	g.SetTarget(vmath.V2(1.2, -0.8))

	for i := 0; i < 30; i++ {
		g.Tick(tickDt)
	}

	prev := vmath.V2Mag(g.Current())
	for i := 0; i < 120; i++ {
		mag := vmath.V2Mag(g.Tick(tickDt))
		if mag >= prev {
			t.Fatalf("Expected strictly decreasing magnitude at tick %d: %f >= %f", i, mag, prev)
		}
		prev = mag
	}
}

// TestGravityDragClamp verifies drag input saturates at the maximum magnitude
func TestGravityDragClamp(t *testing.T) {
	g := NewGravityController(Arena{Width: 800, Height: 600})

	for i := 0; i < 20; i++ {
		g.OnDragDelta(vmath.V2(200, 200))
	}

	if mag := vmath.V2Mag(g.Target()); math.Abs(mag-parameter.GravityMax) > 1e-9 {
		t.Errorf("Expected target clamped to %f, got %f", parameter.GravityMax, mag)
	}

	for i := 0; i < 600; i++ {
		g.OnDragDelta(vmath.V2(1, 1))
		if mag := vmath.V2Mag(g.Tick(tickDt)); mag > parameter.GravityMax+1e-9 {
			t.Fatalf("Expected current within max, got %f", mag)
		}
	}
}

// TestGravityDragNormalization verifies drag maps by the shorter arena side
func TestGravityDragNormalization(t *testing.T) {
	g := NewGravityController(Arena{Width: 1000, Height: 400})
	norm := 400 * parameter.DragNormFraction

	g.OnDragDelta(vmath.V2(norm/2, 0))

	if got := g.Target().X; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected target.X 0.5, got %f", got)
	}
}

// TestGravitySmoothing verifies current lags target instead of jumping
func TestGravitySmoothing(t *testing.T) {
	g := NewGravityController(Arena{Width: 800, Height: 600})
	g.SetTarget(vmath.V2(0, 1))

	first := g.Tick(tickDt)
	if first.Y <= 0 || first.Y >= 1 {
		t.Errorf("Expected partial approach after one tick, got %f", first.Y)
	}

	// Input keeps arriving, target holds
	for i := 0; i < 60; i++ {
		g.SetTarget(vmath.V2(0, 1))
		g.Tick(tickDt)
	}
	if got := g.Current().Y; math.Abs(got-1) > 0.01 {
		t.Errorf("Expected current to converge to 1, got %f", got)
	}
}

// TestGravityReset verifies reset zeroes state
func TestGravityReset(t *testing.T) {
	g := NewGravityController(Arena{Width: 800, Height: 600})
	g.SetTarget(vmath.V2(1, 1))
	g.Tick(tickDt)
	g.Reset()

	if g.Current() != (vmath.Vec2{}) || g.Target() != (vmath.Vec2{}) {
		t.Errorf("Expected zero vectors after reset, got %v %v", g.Current(), g.Target())
	}
}
