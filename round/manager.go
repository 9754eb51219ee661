package round

import (
	"log/slog"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/physics"
	"github.com/lixenwraith/tiltpick/status"
	"github.com/lixenwraith/tiltpick/vmath"
)

// Narrator receives sound requests; implemented by audio.Sequencer
type Narrator interface {
	PlayEffect(id string, rate, volume float64, duck bool)
	PlayNarration(clip, fallback string, interrupt bool)
}

// Emitter receives particle bursts; implemented by particle.System
type Emitter interface {
	EmitBurst(pos vmath.Vec2, count int, hint colorful.Color)
}

// Haptics is the tactile feedback sink
type Haptics interface {
	Pulse()
}

// Outcome classifies a tap
type Outcome uint8

const (
	OutcomeMiss Outcome = iota
	OutcomeCorrect
	OutcomeWrong
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	default:
		return "miss"
	}
}

// TapResult reports what a tap hit and what it caused
type TapResult struct {
	Outcome   Outcome
	BodyID    int
	Key       string
	Completed bool // Deck exhausted by this tap
}

// Option configures a Manager
type Option func(*Manager)

// WithNarrator routes effects and narration
func WithNarrator(n Narrator) Option {
	return func(m *Manager) { m.narrator = n }
}

// WithEmitter routes particle bursts
func WithEmitter(e Emitter) Option {
	return func(m *Manager) { m.emitter = e }
}

// WithHaptics routes haptic pulses
func WithHaptics(h Haptics) Option {
	return func(m *Manager) { m.haptics = h }
}

// WithRand fixes the random source, used by tests for reproducible rounds
func WithRand(rng *vmath.FastRand) Option {
	return func(m *Manager) { m.rng = rng }
}

// WithStatus records round counters
func WithStatus(reg *status.Registry) Option {
	return func(m *Manager) { m.reg = reg }
}

// Manager sequences packs, spawns bodies and adjudicates taps
// Runs on the tick goroutine alongside the world it mutates
type Manager struct {
	world   *physics.World
	deck    *Deck
	rng     *vmath.FastRand
	palette []colorful.Color

	narrator Narrator
	emitter  Emitter
	haptics  Haptics
	reg      *status.Registry

	current  Pack
	active   bool
	done     bool
	progress int
	idle     float64 // Seconds since last tap or hint
}

// NewManager creates a manager over world dealing from packs
func NewManager(world *physics.World, packs []Pack, opts ...Option) *Manager {
	m := &Manager{
		world:    world,
		palette:  Palette(),
		narrator: nopNarrator{},
		emitter:  nopEmitter{},
		haptics:  nopHaptics{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = vmath.NewTimeRand()
	}
	m.deck = NewDeck(packs, m.rng)
	return m
}

// Start reshuffles the deck and begins the first round
// Its prompt interrupts so narration left from a previous session is cut
// Returns false when there are no packs
func (m *Manager) Start() bool {
	m.deck.Reset()
	m.progress = 0
	m.done = false
	p, ok := m.deck.Next()
	if !ok {
		m.active = false
		m.world.Clear()
		return false
	}
	m.startRound(p, true)
	return true
}

// StartRound spawns the bodies for pack and queues its prompt
func (m *Manager) StartRound(p Pack) {
	m.startRound(p, false)
}

func (m *Manager) startRound(p Pack, interrupt bool) {
	keys := p.Keys()
	m.rng.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})

	arena := m.world.Arena()
	radius := RadiusFor(arena, len(keys))
	placements := Place(len(keys), radius, SafeRect(arena, radius), m.rng)

	bodies := make([]*physics.Body, len(keys))
	for i, key := range keys {
		pl := placements[i]
		if pl.Fallback {
			slog.Debug("placement fallback", "key", key, "radius", radius)
			m.reg.Inc(status.PlacementFallback)
		}
		b := physics.NewBody(i, key, pl.Pos, radius)
		b.Vel = vmath.V2(
			m.rng.Range(-parameter.InitialDriftMax, parameter.InitialDriftMax),
			m.rng.Range(-parameter.InitialDriftMax, parameter.InitialDriftMax),
		)
		b.Phase = m.rng.Range(0, 2*math.Pi)
		if len(m.palette) > 0 {
			b.Color = m.palette[i%len(m.palette)]
		}
		bodies[i] = b
	}
	m.world.Replace(bodies)

	m.current = p
	m.active = true
	m.idle = 0
	m.reg.Inc(status.RoundsStarted)
	m.narrator.PlayNarration(p.Clip, p.Prompt, interrupt)
}

// OnTap hit-tests pos against live bodies and applies the outcome
func (m *Manager) OnTap(pos vmath.Vec2) TapResult {
	if !m.active {
		return TapResult{Outcome: OutcomeMiss, BodyID: -1}
	}
	m.idle = 0

	var hit *physics.Body
	for _, b := range m.world.Bodies() {
		if b.Contains(pos, parameter.TapRadiusFactor) {
			hit = b
			break
		}
	}
	if hit == nil {
		m.reg.Inc(status.TapsMissed)
		return TapResult{Outcome: OutcomeMiss, BodyID: -1}
	}

	res := TapResult{BodyID: hit.ID, Key: hit.Key}
	if hit.Key == m.current.Correct {
		res.Outcome = OutcomeCorrect
		res.Completed = m.correct(hit)
		return res
	}

	res.Outcome = OutcomeWrong
	m.wrong(hit)
	return res
}

func (m *Manager) correct(b *physics.Body) bool {
	m.reg.Inc(status.TapsCorrect)
	m.narrator.PlayEffect(parameter.EffectCorrect, 1, parameter.TapEffectVolume, true)
	m.narrator.PlayNarration(parameter.ClipWin, parameter.ClipWinText, true)
	m.emitter.EmitBurst(b.Pos, parameter.BurstCorrect, b.Color)
	m.haptics.Pulse()
	m.world.Remove(b.ID)
	m.progress++

	if next, ok := m.deck.Next(); ok {
		m.StartRound(next)
		return false
	}

	m.active = false
	m.done = true
	m.world.Clear()
	m.narrator.PlayEffect(parameter.EffectComplete, 1, parameter.CompleteEffectVol, true)
	m.narrator.PlayNarration(parameter.ClipComplete, parameter.ClipCompleteText, false)
	m.emitter.EmitBurst(m.world.Arena().Center(), parameter.BurstComplete, b.Color)
	return true
}

func (m *Manager) wrong(b *physics.Body) {
	m.reg.Inc(status.TapsWrong)
	m.narrator.PlayEffect(parameter.EffectWrong, 1, parameter.TapEffectVolume, true)
	m.haptics.Pulse()

	kick := vmath.V2(
		m.rng.Range(-parameter.WrongTapImpulseX, parameter.WrongTapImpulseX),
		parameter.WrongTapImpulseY,
	)
	physics.Impart(b, kick, physics.ImpulseOverride)
	b.Shake = parameter.WrongTapShake
}

// Tick advances the idle timer and replays the prompt when it lapses
func (m *Manager) Tick(dt float64) {
	if !m.active || dt <= 0 {
		return
	}
	m.idle += dt
	if m.idle < parameter.HintDelay {
		return
	}
	m.idle = 0
	m.reg.Inc(status.HintsPlayed)
	m.narrator.PlayNarration(m.current.Clip, m.current.Prompt, false)
	for _, b := range m.world.Bodies() {
		if b.Key == m.current.Correct {
			m.emitter.EmitBurst(b.Pos, parameter.BurstHint, b.Color)
			break
		}
	}
}

// Current returns the active pack
func (m *Manager) Current() Pack {
	return m.current
}

// Progress returns the number of correctly answered packs
func (m *Manager) Progress() int {
	return m.progress
}

// Total returns the deck size
func (m *Manager) Total() int {
	return m.deck.Len()
}

// Active reports whether a round is accepting taps
func (m *Manager) Active() bool {
	return m.active
}

// Done reports whether every pack has been answered
func (m *Manager) Done() bool {
	return m.done
}

// Palette parses the ambient body colors
func Palette() []colorful.Color {
	out := make([]colorful.Color, 0, len(parameter.AmbientPalette))
	for _, hex := range parameter.AmbientPalette {
		c, err := colorful.Hex(hex)
		if err != nil {
			slog.Debug("bad palette color", "hex", hex, "err", err)
			continue
		}
		out = append(out, c)
	}
	return out
}

type nopNarrator struct{}

func (nopNarrator) PlayEffect(string, float64, float64, bool) {}
func (nopNarrator) PlayNarration(string, string, bool)        {}

type nopEmitter struct{}

func (nopEmitter) EmitBurst(vmath.Vec2, int, colorful.Color) {}

type nopHaptics struct{}

func (nopHaptics) Pulse() {}
