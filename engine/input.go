package engine

import (
	"sync"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/physics"
	"github.com/lixenwraith/tiltpick/vmath"
)

// InputKind identifies a host input event
type InputKind uint8

const (
	InputDown InputKind = iota
	InputMove
	InputUp
	InputResize
	InputRestart
	InputTilt
)

// InputEvent is a host event queued for the tick goroutine
type InputEvent struct {
	Kind  InputKind
	Pos   vmath.Vec2    // Pointer position (Down/Move/Up) or gravity target (Tilt)
	Arena physics.Arena // New bounds (Resize)
}

// coalesces reports whether a pending event of the same kind can be replaced by a newer one
// Moves only matter for their last position; gestures track deltas from the last seen point
func (k InputKind) coalesces() bool {
	return k == InputMove || k == InputTilt || k == InputResize
}

// InputQueue buffers host input for the tick goroutine
// Consecutive moves, tilts and resizes collapse into the newest one, so a fast drag
// between ticks costs one slot. Discrete events (down, up, restart) are never merged.
// When full the oldest event is dropped and counted.
type InputQueue struct {
	mu      sync.Mutex
	pending []InputEvent
	dropped uint64
}

// NewInputQueue creates an empty queue
func NewInputQueue() *InputQueue {
	return &InputQueue{pending: make([]InputEvent, 0, parameter.PointerQueueSize)}
}

// Push adds ev, merging it into the newest pending event of the same coalescing kind
func (q *InputQueue) Push(ev InputEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n := len(q.pending); n > 0 && ev.Kind.coalesces() && q.pending[n-1].Kind == ev.Kind {
		q.pending[n-1] = ev
		return
	}
	if len(q.pending) >= parameter.PointerQueueSize {
		copy(q.pending, q.pending[1:])
		q.pending = q.pending[:len(q.pending)-1]
		q.dropped++
	}
	q.pending = append(q.pending, ev)
}

// Consume appends pending events to dst in push order and empties the queue
// Returns the events and the number dropped since the last call
func (q *InputQueue) Consume(dst []InputEvent) ([]InputEvent, uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	dst = append(dst, q.pending...)
	q.pending = q.pending[:0]
	dropped := q.dropped
	q.dropped = 0
	return dst, dropped
}
