package engine

import (
	"testing"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/physics"
)

// TestImpactGateThreshold verifies weak impacts never trigger
func TestImpactGateThreshold(t *testing.T) {
	g := NewImpactGate()
	if g.Admit(parameter.ImpactThreshold-0.01, 1) {
		t.Error("Expected weak impact rejected")
	}
	if !g.Admit(parameter.ImpactThreshold, 2) {
		t.Error("Expected threshold impact admitted")
	}
}

// TestImpactGateThrottle verifies admitted impacts are spaced by the interval
func TestImpactGateThrottle(t *testing.T) {
	g := NewImpactGate()
	if !g.Admit(0.9, 100) {
		t.Fatal("Expected first impact admitted")
	}
	if g.Admit(0.9, 100+parameter.ImpactThrottleTicks-1) {
		t.Error("Expected throttled impact rejected")
	}
	if !g.Admit(0.9, 100+parameter.ImpactThrottleTicks) {
		t.Error("Expected impact admitted after interval")
	}

	g.Reset()
	if !g.Admit(0.5, 1) {
		t.Error("Expected admission after reset")
	}
}

// TestStrongest verifies the max-intensity impact is chosen
func TestStrongest(t *testing.T) {
	if _, ok := Strongest(nil); ok {
		t.Error("Expected no impact from empty slice")
	}
	im, ok := Strongest([]physics.Impact{{A: 0, Intensity: 0.2}, {A: 1, Intensity: 0.7}, {A: 2, Intensity: 0.4}})
	if !ok || im.A != 1 {
		t.Errorf("Expected impact 1, got %+v", im)
	}
}

// TestBounceSoundMapping verifies harder impacts play higher and louder
func TestBounceSoundMapping(t *testing.T) {
	r0, v0 := BounceSound(0)
	r1, v1 := BounceSound(1)
	r2, v2 := BounceSound(5)

	if r0 != parameter.BounceRateBase || v0 != parameter.BounceVolumeBase {
		t.Errorf("Expected base mapping, got rate=%f vol=%f", r0, v0)
	}
	if r1 <= r0 || v1 <= v0 {
		t.Error("Expected rate and volume to rise with intensity")
	}
	if r2 != r1 || v2 != v1 {
		t.Error("Expected intensity clamped to 1")
	}
}
