// Package status holds process-wide counters and gauges written by the
// simulation, round and audio layers and read by the host HUD and tests.
package status

import "sync/atomic"

// Metric keys
const (
	TicksTotal        = "engine.ticks"
	InputDropped      = "engine.input_dropped"
	ImpactsTotal      = "physics.impacts"
	ImpactsFed        = "physics.impacts_fed"
	RoundsStarted     = "round.started"
	TapsCorrect       = "round.taps_correct"
	TapsWrong         = "round.taps_wrong"
	TapsMissed        = "round.taps_missed"
	PlacementFallback = "round.placement_fallback"
	HintsPlayed       = "round.hints"
	EffectsPlayed     = "audio.effects"
	LinesPlayed       = "audio.lines_played"
	LinesSpoken       = "audio.lines_spoken"
	LinesDropped      = "audio.lines_dropped"
	LinesInterrupted  = "audio.lines_interrupted"
	GravityMagnitude  = "physics.gravity"
	ImpactPeak        = "physics.impact_peak"
)

// Registry is the central metrics facade
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[Gauge]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[Gauge](),
	}
}

// Snapshot flattens all metrics into a map for display
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64)
	r.Ints.Collect(out, func(v *atomic.Int64) float64 { return float64(v.Load()) })
	r.Floats.Collect(out, (*Gauge).Get)
	return out
}

// Inc bumps a counter on a possibly nil registry
func (r *Registry) Inc(key string) {
	if r == nil {
		return
	}
	r.Ints.Get(key).Add(1)
}
