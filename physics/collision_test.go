package physics

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/vmath"
)

// TestResolverConvergence checks post-resolution overlap stays within tolerance over random configurations
func TestResolverConvergence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 8).Draw(t, "n")
		bodies := make([]*Body, n)
		for i := range bodies {
			// Disjoint column bands keep centers distinct
			x := 200 + float64(i)*30 + rapid.Float64Range(0, 20).Draw(t, fmt.Sprintf("x%d", i))
			y := rapid.Float64Range(200, 400).Draw(t, fmt.Sprintf("y%d", i))
			r := rapid.Float64Range(20, 60).Draw(t, fmt.Sprintf("r%d", i))
			bodies[i] = NewBody(i, fmt.Sprint(i), vmath.V2(x, y), r)
			bodies[i].Vel = vmath.V2(
				rapid.Float64Range(-10, 10).Draw(t, fmt.Sprintf("vx%d", i)),
				rapid.Float64Range(-10, 10).Draw(t, fmt.Sprintf("vy%d", i)),
			)
		}

		NewResolver().Resolve(bodies, nil)

		if worst := MaxOverlap(bodies); worst > parameter.ResolverTolerance {
			t.Fatalf("overlap %f exceeds tolerance after resolution", worst)
		}
	})
}

// TestResolverElasticExchange verifies head-on equal bodies swap normal velocity
func TestResolverElasticExchange(t *testing.T) {
	a := NewBody(0, "a", vmath.V2(100, 100), 20)
	b := NewBody(1, "b", vmath.V2(135, 100), 20)
	a.Vel = vmath.V2(5, 0)
	b.Vel = vmath.V2(-5, 0)

	impacts := NewResolver().Resolve([]*Body{a, b}, nil)

	if len(impacts) != 1 {
		t.Fatalf("Expected 1 impact, got %d", len(impacts))
	}
	if a.Vel.X != -5 || b.Vel.X != 5 {
		t.Errorf("Expected velocities swapped to -5/5, got %f/%f", a.Vel.X, b.Vel.X)
	}
	if got := vmath.V2Dist(a.Pos, b.Pos); got < 40-1e-9 {
		t.Errorf("Expected separation 40, got %f", got)
	}
	// Relative normal speed 10 over radius 20
	if impacts[0].Intensity != 0.5 {
		t.Errorf("Expected intensity 0.5, got %f", impacts[0].Intensity)
	}
	if a.Squash != 0.5 || b.Squash != 0.5 {
		t.Errorf("Expected squash 0.5 on both bodies, got %f/%f", a.Squash, b.Squash)
	}
}

// TestResolverSeparatingPair verifies overlap is corrected without velocity change when moving apart
func TestResolverSeparatingPair(t *testing.T) {
	a := NewBody(0, "a", vmath.V2(100, 100), 20)
	b := NewBody(1, "b", vmath.V2(130, 100), 20)
	a.Vel = vmath.V2(-3, 0)
	b.Vel = vmath.V2(3, 0)

	impacts := NewResolver().Resolve([]*Body{a, b}, nil)

	if len(impacts) != 0 {
		t.Errorf("Expected no impacts for separating pair, got %d", len(impacts))
	}
	if a.Vel.X != -3 || b.Vel.X != 3 {
		t.Errorf("Expected velocities unchanged, got %f/%f", a.Vel.X, b.Vel.X)
	}
	// Symmetric correction, 5 each
	if a.Pos.X != 95 || b.Pos.X != 135 {
		t.Errorf("Expected positions 95/135, got %f/%f", a.Pos.X, b.Pos.X)
	}
}

// TestResolverCoincidentCenters verifies degenerate geometry is a no-op
func TestResolverCoincidentCenters(t *testing.T) {
	a := NewBody(0, "a", vmath.V2(50, 50), 10)
	b := NewBody(1, "b", vmath.V2(50, 50), 10)
	b.Vel = vmath.V2(1, 0)

	impacts := NewResolver().Resolve([]*Body{a, b}, nil)

	if len(impacts) != 0 {
		t.Errorf("Expected no impacts, got %d", len(impacts))
	}
	if a.Pos != b.Pos {
		t.Errorf("Expected positions untouched, got %v %v", a.Pos, b.Pos)
	}
	if b.Vel.X != 1 {
		t.Errorf("Expected velocity untouched, got %f", b.Vel.X)
	}
}

// TestResolverIntensityClamp verifies intensity saturates at 1
func TestResolverIntensityClamp(t *testing.T) {
	a := NewBody(0, "a", vmath.V2(0, 0), 5)
	b := NewBody(1, "b", vmath.V2(8, 0), 5)
	a.Vel = vmath.V2(20, 0)

	impacts := NewResolver().Resolve([]*Body{a, b}, nil)

	if len(impacts) != 1 || impacts[0].Intensity != 1 {
		t.Errorf("Expected single impact with intensity 1, got %+v", impacts)
	}
}
