package vmath

import (
	"time"
)

// FastRand is a xorshift64 source; not safe for concurrent use
// One instance per owner (world, particles, round manager)
type FastRand struct {
	state uint64
}

// NewFastRand seeds a generator, zero seed maps to 1
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// NewTimeRand seeds from the wall clock; rounds are intentionally not reproducible
func NewTimeRand() *FastRand {
	return NewFastRand(uint64(time.Now().UnixNano()))
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Shuffle permutes n elements in place via swap (Fisher-Yates)
func (r *FastRand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
