package parameter

import "time"

// Tick loop
const (
	// TickInterval is the fixed simulation tick (~60 per second)
	TickInterval = 16 * time.Millisecond

	// MaxTickDelta clamps dt after stalls so a long pause does not launch bodies
	MaxTickDelta = 0.05

	// FrameUpdateInterval is the render refresh of the terminal host
	FrameUpdateInterval = 16 * time.Millisecond
)

// Pointer input
const (
	// PointerQueueSize bounds input pending between ticks after coalescing
	PointerQueueSize = 256

	// TapSlop is the movement from pointer-down (pixels) beyond which a gesture is a drag
	TapSlop = 10.0
)
