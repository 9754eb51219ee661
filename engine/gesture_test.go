package engine

import (
	"testing"

	"github.com/lixenwraith/tiltpick/vmath"
)

// TestGestureTap verifies small movement stays a tap
func TestGestureTap(t *testing.T) {
	g := NewGestures()
	g.Down(vmath.V2(100, 100))

	if _, ok := g.Move(vmath.V2(104, 103)); ok {
		t.Error("Expected no drag within slop")
	}
	if !g.Up(vmath.V2(105, 103)) {
		t.Error("Expected tap")
	}
}

// TestGestureDrag verifies drag deltas sum to total displacement once past slop
func TestGestureDrag(t *testing.T) {
	g := NewGestures()
	g.Down(vmath.V2(100, 100))

	var sum vmath.Vec2
	for _, p := range []vmath.Vec2{{X: 105, Y: 100}, {X: 130, Y: 100}, {X: 160, Y: 90}} {
		if d, ok := g.Move(p); ok {
			sum = vmath.V2Add(sum, d)
		}
	}

	if sum != vmath.V2(60, -10) {
		t.Errorf("Expected total drag (60,-10), got %v", sum)
	}
	if !g.Dragging() {
		t.Error("Expected dragging state")
	}
	if g.Up(vmath.V2(100, 100)) {
		t.Error("Expected drag release not to tap, even back at origin")
	}
}

// TestGestureWithoutDown verifies stray moves and releases are ignored
func TestGestureWithoutDown(t *testing.T) {
	g := NewGestures()
	if _, ok := g.Move(vmath.V2(500, 500)); ok {
		t.Error("Expected move without press ignored")
	}
	if g.Up(vmath.V2(0, 0)) {
		t.Error("Expected release without press ignored")
	}
}
