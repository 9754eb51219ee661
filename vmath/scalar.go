package vmath

import "math"

// FrameRate is the reference frame rate per-frame constants are tuned against
const FrameRate = 60.0

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Decay returns the multiplier exp(-rate*dt) for first-order exponential decay
func Decay(rate, dt float64) float64 {
	return math.Exp(-rate * dt)
}

// Approach returns the blend factor 1-exp(-rate*dt) for a first-order filter
func Approach(rate, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}

// FrameScale converts seconds to reference frames
func FrameScale(dt float64) float64 {
	return dt * FrameRate
}

// PerFrame converts a per-reference-frame multiplier to the equivalent for dt
// e.g. PerFrame(0.9, dt) shrinks by 0.9 each 1/60 s regardless of tick length
func PerFrame(factor, dt float64) float64 {
	return math.Pow(factor, FrameScale(dt))
}
