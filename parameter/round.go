package parameter

// Body sizing and placement
const (
	// RadiusScale of the arena's shorter side, divided by sqrt(option count)
	RadiusScale = 0.3
	RadiusMin   = 18.0
	RadiusMax   = 140.0

	// SafeMarginFactor insets the placement rectangle by this multiple of radius
	SafeMarginFactor = 1.25

	// SafeMarginMin is the absolute minimum inset (pixels)
	SafeMarginMin = 12.0

	// TopBandFraction of arena height is reserved for UI chrome
	TopBandFraction = 0.12

	// PlacementAttempts per body before falling back to the safe rectangle center
	PlacementAttempts = 100

	// PlacementSeparation is the minimum center distance as a multiple of radius
	PlacementSeparation = 2.1

	// InitialDriftMax is the seeded speed bound per axis (pixels/frame)
	InitialDriftMax = 1.5
)

// Tap handling
const (
	// TapRadiusFactor enlarges the hit circle over the visual radius
	TapRadiusFactor = 1.35

	// WrongTapImpulseY overrides vertical velocity on a wrong pick (pixels/frame, up is negative)
	WrongTapImpulseY = -35.0

	// WrongTapImpulseX bounds the random horizontal velocity on a wrong pick
	WrongTapImpulseX = 20.0

	// WrongTapShake is the shake offset pulse on a wrong pick
	WrongTapShake = 30.0

	// HintDelay is seconds without taps before replaying the prompt
	HintDelay = 8.0
)

// Burst counts
const (
	BurstCorrect  = 24
	BurstComplete = 60
	BurstHint     = 6
)

// AmbientPalette is the round-robin body color palette
var AmbientPalette = []string{
	"#7ec8e3",
	"#f6b26b",
	"#b4a7d6",
	"#93c47d",
	"#ea9999",
	"#ffd966",
}
