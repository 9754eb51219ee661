// Package engine wires the simulation, round, particle and audio layers into a
// single fixed-step tick and exposes pointer input and render snapshots to a host.
package engine

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/particle"
	"github.com/lixenwraith/tiltpick/physics"
	"github.com/lixenwraith/tiltpick/round"
	"github.com/lixenwraith/tiltpick/status"
	"github.com/lixenwraith/tiltpick/vmath"
)

// Audio is the sound layer driven by the game; implemented by audio.Sequencer
type Audio interface {
	round.Narrator
	Stop()
}

// Options configures a Game
type Options struct {
	Arena    physics.Arena
	Walls    physics.Walls // Zero means all walls
	Packs    []round.Pack
	Audio    Audio
	Haptics  round.Haptics
	Registry *status.Registry
	Seed     uint64 // Zero seeds from the clock
	Logger   *slog.Logger
}

// Snapshot is an immutable copy of render state published once per tick
type Snapshot struct {
	Session   string
	Tick      uint64
	Arena     physics.Arena
	Gravity   vmath.Vec2
	Bodies    []physics.Body
	Particles []particle.Particle
	Prompt    string
	Progress  int
	Total     int
	Done      bool
}

// Game owns all simulation state; Step must only be called from one goroutine
// Pointer and resize calls are safe from any goroutine
type Game struct {
	session string
	log     *slog.Logger
	reg     *status.Registry

	input    *InputQueue
	events   []InputEvent
	gestures *Gestures

	gravity   *physics.GravityController
	world     *physics.World
	particles *particle.System
	rounds    *round.Manager
	gate      *ImpactGate

	audio   Audio
	haptics round.Haptics

	tick   uint64
	snap   atomic.Pointer[Snapshot]
	closed atomic.Bool

	statTicks   *atomic.Int64
	statImpacts *atomic.Int64
	statFed     *atomic.Int64
	statDropped *atomic.Int64
	statGravity *status.Gauge
	statPeak    *status.Gauge
}

// NewGame builds the game and deals the first round
func NewGame(opts Options) *Game {
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Haptics == nil {
		opts.Haptics = nopHaptics{}
	}
	if opts.Audio == nil {
		opts.Audio = nopAudio{}
	}

	var rng, prng *vmath.FastRand
	if opts.Seed != 0 {
		rng = vmath.NewFastRand(opts.Seed)
		prng = vmath.NewFastRand(opts.Seed ^ 0x9e3779b97f4a7c15)
	}

	g := &Game{
		session:   uuid.NewString(),
		reg:       opts.Registry,
		input:     NewInputQueue(),
		events:    make([]InputEvent, 0, parameter.PointerQueueSize),
		gestures:  NewGestures(),
		gravity:   physics.NewGravityController(opts.Arena),
		world:     physics.NewWorld(opts.Arena),
		particles: particle.NewSystem(prng),
		gate:      NewImpactGate(),
		audio:     opts.Audio,
		haptics:   opts.Haptics,
	}
	g.log = opts.Logger.With("session", g.session)
	if opts.Walls != 0 {
		g.world.SetWalls(opts.Walls)
	}

	roundOpts := []round.Option{
		round.WithNarrator(g.audio),
		round.WithEmitter(g.particles),
		round.WithHaptics(g.haptics),
		round.WithStatus(g.reg),
	}
	if rng != nil {
		roundOpts = append(roundOpts, round.WithRand(rng))
	}
	g.rounds = round.NewManager(g.world, opts.Packs, roundOpts...)

	g.statTicks = g.reg.Ints.Get(status.TicksTotal)
	g.statImpacts = g.reg.Ints.Get(status.ImpactsTotal)
	g.statFed = g.reg.Ints.Get(status.ImpactsFed)
	g.statDropped = g.reg.Ints.Get(status.InputDropped)
	g.statGravity = g.reg.Floats.Get(status.GravityMagnitude)
	g.statPeak = g.reg.Floats.Get(status.ImpactPeak)

	if !g.rounds.Start() {
		g.log.Warn("no packs to play")
	}
	g.publish(vmath.Vec2{})
	return g
}

// Session returns the session identifier
func (g *Game) Session() string {
	return g.session
}

// PointerDown queues a pointer press
func (g *Game) PointerDown(pos vmath.Vec2) {
	g.input.Push(InputEvent{Kind: InputDown, Pos: pos})
}

// PointerMove queues a pointer motion
func (g *Game) PointerMove(pos vmath.Vec2) {
	g.input.Push(InputEvent{Kind: InputMove, Pos: pos})
}

// PointerUp queues a pointer release
func (g *Game) PointerUp(pos vmath.Vec2) {
	g.input.Push(InputEvent{Kind: InputUp, Pos: pos})
}

// Resize queues new arena bounds
func (g *Game) Resize(a physics.Arena) {
	g.input.Push(InputEvent{Kind: InputResize, Arena: a})
}

// Restart queues a fresh deal of all packs
func (g *Game) Restart() {
	g.input.Push(InputEvent{Kind: InputRestart})
}

// Tilt queues a direct gravity target, e.g. from arrow keys
func (g *Game) Tilt(target vmath.Vec2) {
	g.input.Push(InputEvent{Kind: InputTilt, Pos: target})
}

// Snapshot returns the latest published render state
func (g *Game) Snapshot() Snapshot {
	return *g.snap.Load()
}

// Step advances one tick of dt seconds
func (g *Game) Step(dt float64) {
	if g.closed.Load() || dt <= 0 {
		return
	}
	dt = min(dt, parameter.MaxTickDelta)
	g.tick++

	var dropped uint64
	g.events, dropped = g.input.Consume(g.events[:0])
	if dropped > 0 {
		g.statDropped.Add(int64(dropped))
		slog.Debug("input dropped", "count", dropped)
	}
	for _, ev := range g.events {
		g.handle(ev)
	}

	grav := g.gravity.Tick(dt)
	impacts := g.world.Tick(dt, grav)
	g.feedback(impacts)

	g.particles.Tick(dt)
	if g.tick%parameter.TrailInterval == 0 {
		for _, b := range g.world.Bodies() {
			g.particles.EmitTrail(b.Pos, b.Color)
		}
	}

	g.rounds.Tick(dt)
	g.publish(grav)
	g.statTicks.Add(1)
}

func (g *Game) handle(ev InputEvent) {
	switch ev.Kind {
	case InputDown:
		g.gestures.Down(ev.Pos)
	case InputMove:
		if d, ok := g.gestures.Move(ev.Pos); ok {
			g.gravity.OnDragDelta(d)
		}
	case InputUp:
		if g.gestures.Up(ev.Pos) {
			res := g.rounds.OnTap(ev.Pos)
			g.log.Debug("tap", "outcome", res.Outcome, "key", res.Key, "completed", res.Completed)
		}
	case InputResize:
		if ev.Arena.Width <= 0 || ev.Arena.Height <= 0 {
			return
		}
		g.world.Resize(ev.Arena)
		g.gravity.Resize(ev.Arena)
	case InputTilt:
		g.gravity.SetTarget(ev.Pos)
	case InputRestart:
		g.gravity.Reset()
		g.gate.Reset()
		g.particles.Clear()
		g.rounds.Start()
	}
}

// feedback turns the strongest pair impact into a throttled bounce sound and pulse
func (g *Game) feedback(impacts []physics.Impact) {
	if len(impacts) == 0 {
		return
	}
	g.statImpacts.Add(int64(len(impacts)))

	best, _ := Strongest(impacts)
	g.statPeak.Max(best.Intensity)
	if !g.gate.Admit(best.Intensity, g.tick) {
		return
	}
	g.statFed.Add(1)

	rate, vol := BounceSound(best.Intensity)
	g.audio.PlayEffect(parameter.EffectBounce, rate, vol, false)
	g.haptics.Pulse()
}

func (g *Game) publish(grav vmath.Vec2) {
	g.statGravity.Set(vmath.V2Mag(grav))

	current := g.rounds.Current()
	s := &Snapshot{
		Session:   g.session,
		Tick:      g.tick,
		Arena:     g.world.Arena(),
		Gravity:   grav,
		Bodies:    g.world.Snapshot(nil),
		Particles: g.particles.Particles(nil),
		Prompt:    current.Prompt,
		Progress:  g.rounds.Progress(),
		Total:     g.rounds.Total(),
		Done:      g.rounds.Done(),
	}
	g.snap.Store(s)
}

// Close stops audio and rejects further steps
func (g *Game) Close() {
	if g.closed.Swap(true) {
		return
	}
	g.audio.Stop()
	g.log.Info("game closed", "ticks", g.tick, "progress", g.rounds.Progress())
}

type nopAudio struct{}

func (nopAudio) PlayEffect(string, float64, float64, bool) {}
func (nopAudio) PlayNarration(string, string, bool)        {}
func (nopAudio) Stop()                                     {}

type nopHaptics struct{}

func (nopHaptics) Pulse() {}
