package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a finite wave whose frequency glides linearly from freq to end
type oscillator struct {
	freq     float64
	end      float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a fixed-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, duration, wave, rate)
}

// NewGlide creates an oscillator sweeping from start to end Hz over duration
func NewGlide(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	o := &oscillator{
		freq:     start,
		end:      end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
	if wave == WaveNoise {
		o.rng = vmath.NewTimeRand()
	}
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.end-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release tail ending at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	if releaseStart < e.attackSamples {
		releaseStart = e.attackSamples
	}

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; log2(0) is -Inf so zero maps to Silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// setVolume retargets an existing volume effect
func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(vol)
}

// layer sums finite streams and ends once all of them have ended
type layer struct {
	streams []beep.Streamer
	tmp     [][2]float64
}

// Layer mixes finite streamers; unlike a mixer it drains
func Layer(s ...beep.Streamer) beep.Streamer {
	return &layer{streams: s}
}

func (l *layer) Stream(samples [][2]float64) (n int, ok bool) {
	if len(l.tmp) < len(samples) {
		l.tmp = make([][2]float64, len(samples))
	}
	clear(samples)

	live := l.streams[:0]
	for _, st := range l.streams {
		sn, sok := st.Stream(l.tmp[:len(samples)])
		for i := 0; i < sn; i++ {
			samples[i][0] += l.tmp[i][0]
			samples[i][1] += l.tmp[i][1]
		}
		n = max(n, sn)
		if sok {
			live = append(live, st)
		}
	}
	l.streams = live
	return n, n > 0
}

func (l *layer) Err() error { return nil }

// tone is a single enveloped note
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, d, wave, rate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d*2/3, rate)
}

// bell is a tone with a quieter octave overtone
func bell(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return Layer(
		newVolume(tone(freq, d, WaveSine, rate), 0.7),
		newVolume(tone(freq*2, d, WaveSine, rate), 0.3),
	)
}

// Effect durations at native rate, used to time music ducking
var EffectDurations = map[string]time.Duration{
	parameter.EffectCorrect:  330 * time.Millisecond,
	parameter.EffectWrong:    220 * time.Millisecond,
	parameter.EffectBounce:   90 * time.Millisecond,
	parameter.EffectPop:      60 * time.Millisecond,
	parameter.EffectComplete: 860 * time.Millisecond,
}

// EffectDuration returns the playback length of id at rate
func EffectDuration(id string, rate float64) time.Duration {
	d, ok := EffectDurations[id]
	if !ok {
		d = parameter.EffectDuckDuration
	}
	if rate <= 0 {
		rate = 1
	}
	return time.Duration(float64(d) / rate)
}

// Synth builds the streamer for effect id at native rate and unity gain
func Synth(id string, rate beep.SampleRate) (beep.Streamer, bool) {
	switch id {
	case parameter.EffectCorrect:
		// C6 E6 G6 rising chime
		note := 110 * time.Millisecond
		return beep.Seq(
			bell(1046.50, note, rate),
			bell(1318.51, note, rate),
			bell(1567.98, note, rate),
		), true

	case parameter.EffectWrong:
		d := 220 * time.Millisecond
		buzz := NewGlide(180, 110, d, WaveSaw, rate)
		return newVolume(NewEnvelope(buzz, d, 8*time.Millisecond, 120*time.Millisecond, rate), 0.5), true

	case parameter.EffectBounce:
		d := 90 * time.Millisecond
		boing := NewGlide(420, 260, d, WaveSine, rate)
		return NewEnvelope(boing, d, 2*time.Millisecond, 70*time.Millisecond, rate), true

	case parameter.EffectPop:
		d := 60 * time.Millisecond
		noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, time.Millisecond, 50*time.Millisecond, rate)
		click := tone(1400, d, WaveSine, rate)
		return Layer(newVolume(noise, 0.3), newVolume(click, 0.6)), true

	case parameter.EffectComplete:
		// C5 E5 G5 arpeggio resolving on a held C6
		note := 140 * time.Millisecond
		return beep.Seq(
			bell(523.25, note, rate),
			bell(659.25, note, rate),
			bell(783.99, note, rate),
			bell(1046.50, note+300*time.Millisecond, rate),
		), true

	default:
		return nil, false
	}
}
