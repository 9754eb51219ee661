package parameter

// Trail particles
const (
	// TrailInterval is the tick cadence of trail emission per live body
	TrailInterval = 6

	// TrailDecay is life lost per reference frame (life starts at 1)
	TrailDecay = 0.08

	// TrailShrink is the per-frame scale multiplier
	TrailShrink = 0.9

	TrailScale  = 0.5
	TrailJitter = 0.6
)

// Burst particles
const (
	BurstDecay    = 0.018
	BurstShrink   = 0.98
	BurstScale    = 1.0
	BurstGravity  = 0.15
	BurstSpeedMin = 2.0
	BurstSpeedMax = 7.0
	BurstSpin     = 0.2

	// BurstHueJitter is the max hue offset in degrees applied to the color hint
	BurstHueJitter = 24.0
)

// ParticleMax caps the live particle count, oldest dropped first
const ParticleMax = 512
