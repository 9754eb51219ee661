package particle

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/vmath"
)

// System owns all live particles
// Not safe for concurrent use; ticked and fed from the simulation goroutine only
type System struct {
	particles []Particle
	rng       *vmath.FastRand
	max       int
}

// NewSystem creates an empty system, nil rng seeds from the clock
func NewSystem(rng *vmath.FastRand) *System {
	if rng == nil {
		rng = vmath.NewTimeRand()
	}
	return &System{
		particles: make([]Particle, 0, 128),
		rng:       rng,
		max:       parameter.ParticleMax,
	}
}

// Tick ages and moves particles, dropping expired ones in place
func (s *System) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	f := vmath.FrameScale(dt)
	trailShrink := vmath.PerFrame(parameter.TrailShrink, dt)
	burstShrink := vmath.PerFrame(parameter.BurstShrink, dt)

	live := s.particles[:0]
	for _, p := range s.particles {
		p.Life -= p.Decay * f
		if p.Life <= 0 {
			continue
		}

		switch p.Kind {
		case KindTrail:
			p.Scale *= trailShrink
		case KindBurst:
			p.Scale *= burstShrink
			p.Vel.Y += parameter.BurstGravity * f
			p.Rotation += p.Spin * f
		}
		p.Pos = vmath.V2Add(p.Pos, vmath.V2Scale(p.Vel, f))

		live = append(live, p)
	}
	s.particles = live
}

// EmitTrail leaves one short-lived puff at pos
func (s *System) EmitTrail(pos vmath.Vec2, hint colorful.Color) {
	j := parameter.TrailJitter
	s.add(Particle{
		Pos:   pos,
		Vel:   vmath.V2(s.rng.Range(-j, j), s.rng.Range(-j, j)),
		Life:  1,
		Decay: parameter.TrailDecay,
		Scale: parameter.TrailScale,
		Color: hint,
		Kind:  KindTrail,
	})
}

// EmitBurst spawns count sparkles flying radially out of pos
func (s *System) EmitBurst(pos vmath.Vec2, count int, hint colorful.Color) {
	for i := 0; i < count; i++ {
		angle := 2*math.Pi*float64(i)/float64(count) + s.rng.Range(-0.3, 0.3)
		speed := s.rng.Range(parameter.BurstSpeedMin, parameter.BurstSpeedMax)
		s.add(Particle{
			Pos:      pos,
			Vel:      vmath.V2FromAngle(angle, speed),
			Life:     1,
			Decay:    parameter.BurstDecay * s.rng.Range(0.8, 1.2),
			Scale:    parameter.BurstScale,
			Rotation: s.rng.Range(0, 2*math.Pi),
			Spin:     s.rng.Range(-parameter.BurstSpin, parameter.BurstSpin),
			Color:    s.jitter(hint),
			Kind:     KindBurst,
		})
	}
}

// jitter shifts hue within BurstHueJitter degrees, keeping chroma and lightness
func (s *System) jitter(c colorful.Color) colorful.Color {
	h, ch, l := c.Hcl()
	h += s.rng.Range(-parameter.BurstHueJitter, parameter.BurstHueJitter)
	if h < 0 {
		h += 360
	} else if h >= 360 {
		h -= 360
	}
	return colorful.Hcl(h, ch, l).Clamped()
}

// add appends, dropping the oldest particle when at capacity
func (s *System) add(p Particle) {
	if s.max > 0 && len(s.particles) >= s.max {
		copy(s.particles, s.particles[1:])
		s.particles = s.particles[:len(s.particles)-1]
	}
	s.particles = append(s.particles, p)
}

// Particles copies live particles into dst for the render sink
func (s *System) Particles(dst []Particle) []Particle {
	return append(dst[:0], s.particles...)
}

// Len returns the live particle count
func (s *System) Len() int {
	return len(s.particles)
}

// Count returns live particles of one kind
func (s *System) Count(k Kind) int {
	n := 0
	for i := range s.particles {
		if s.particles[i].Kind == k {
			n++
		}
	}
	return n
}

// Clear drops all particles
func (s *System) Clear() {
	s.particles = s.particles[:0]
}
