package status

import (
	"math"
	"sync/atomic"
)

// Gauge is an atomic float64 stored as bits; zero value reads 0.0
type Gauge struct {
	bits atomic.Uint64
}

// Set stores v
func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

// Get loads the current value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Max raises the gauge to v if v is larger, returns the resulting value
func (g *Gauge) Max(v float64) float64 {
	for {
		old := g.bits.Load()
		cur := math.Float64frombits(old)
		if v <= cur {
			return cur
		}
		if g.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return v
		}
	}
}
