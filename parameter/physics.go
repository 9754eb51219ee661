package parameter

// Gravity steering
const (
	// GravityMax clamps both target and current gravity magnitude
	GravityMax = 1.7

	// GravityIdleThreshold is seconds without drag input before the target starts decaying
	GravityIdleThreshold = 0.12

	// GravityDecayRate is the idle decay rate of the target vector (1/sec)
	GravityDecayRate = 4.2

	// GravitySmoothRate is the rate current gravity follows target (1/sec)
	GravitySmoothRate = 10.0

	// DragNormFraction of the arena's shorter side maps to a unit of gravity
	DragNormFraction = 0.35
)

// Body integration, velocities are pixels per reference frame (1/60 sec)
const (
	// AccelPerRadius scales gravity into per-frame acceleration, proportional to body radius
	AccelPerRadius = 0.0025

	// DriftAmplitude is the ambient sinusoidal term added to gravity per body
	DriftAmplitude = 0.12

	// DriftPhaseRate advances each body's drift phase (rad/sec)
	DriftPhaseRate = 1.3

	// DampingRate is exponential velocity damping (1/sec)
	DampingRate = 1.9

	// MaxSpeedRadii caps speed at this multiple of radius per frame
	// Must stay above the wrong-pick kick on a typical body so the hop survives the cap
	MaxSpeedRadii = 1.0

	// SquashDecayRate and ShakeDecayRate pull transient scalars to zero (1/sec)
	SquashDecayRate = 7.0
	ShakeDecayRate  = 9.0

	// SpawnRate is spawn-in progress per second
	SpawnRate = 3.0
)

// Boundary and pair collision
const (
	// WallRestitution scales the reflected velocity component on wall contact
	WallRestitution = 0.83

	// PairRestitution is body-body elasticity (1.0 = elastic)
	PairRestitution = 1.0

	// ResolverMaxPasses bounds positional relaxation passes per tick
	ResolverMaxPasses = 200

	// ResolverTolerance is accepted residual overlap as a fraction of combined radius
	ResolverTolerance = 0.01

	// ResolverEpsilon guards the normal divisor for coincident centers
	ResolverEpsilon = 1e-6

	// ImpactThreshold is the minimum intensity that triggers bounce feedback
	ImpactThreshold = 0.18

	// ImpactThrottleTicks is the minimum tick gap between bounce feedback
	ImpactThrottleTicks = 12
)
