package engine

import (
	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/physics"
	"github.com/lixenwraith/tiltpick/vmath"
)

// ImpactGate throttles bounce feedback to strong impacts spaced by a minimum tick gap
type ImpactGate struct {
	Threshold float64
	Interval  uint64

	last  uint64
	fired bool
}

// NewImpactGate creates a gate with the default threshold and spacing
func NewImpactGate() *ImpactGate {
	return &ImpactGate{
		Threshold: parameter.ImpactThreshold,
		Interval:  parameter.ImpactThrottleTicks,
	}
}

// Admit reports whether an impact of intensity at tick should produce feedback
func (g *ImpactGate) Admit(intensity float64, tick uint64) bool {
	if intensity < g.Threshold {
		return false
	}
	if g.fired && tick-g.last < g.Interval {
		return false
	}
	g.fired = true
	g.last = tick
	return true
}

// Reset forgets the last admitted tick
func (g *ImpactGate) Reset() {
	g.fired = false
	g.last = 0
}

// Strongest returns the impact with the highest intensity, false if none
func Strongest(impacts []physics.Impact) (physics.Impact, bool) {
	if len(impacts) == 0 {
		return physics.Impact{}, false
	}
	best := impacts[0]
	for _, im := range impacts[1:] {
		if im.Intensity > best.Intensity {
			best = im
		}
	}
	return best, true
}

// BounceSound maps impact intensity to playback rate and volume
func BounceSound(intensity float64) (rate, volume float64) {
	i := vmath.Clamp(intensity, 0, 1)
	rate = parameter.BounceRateBase + parameter.BounceRateSpan*i
	volume = parameter.BounceVolumeBase + parameter.BounceVolumeSpan*i
	return rate, volume
}
