package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// padChord is a soft A minor add9 voicing
var padChord = []float64{220.00, 261.63, 329.63, 493.88}

// swell slowly modulates the amplitude of an infinite stream
type swell struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	period   int
	pos      int
}

func (s *swell) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = s.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		cycle := float64(s.pos%s.period) / float64(s.period)
		amp := 0.6 + 0.4*math.Sin(2*math.Pi*cycle)
		samples[i][0] *= amp
		samples[i][1] *= amp
		s.pos++
	}
	return n, ok
}

func (s *swell) Err() error { return s.streamer.Err() }

// NewPad builds the endless background pad at unity master gain
func NewPad(rate beep.SampleRate) (beep.Streamer, error) {
	voices := make([]beep.Streamer, 0, len(padChord))
	gain := 0.5 / float64(len(padChord))
	for _, f := range padChord {
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			return nil, fmt.Errorf("pad voice %.2fHz: %w", f, err)
		}
		voices = append(voices, newVolume(tone, gain))
	}
	return &swell{
		streamer: beep.Mix(voices...),
		rate:     rate,
		period:   rate.N(6 * time.Second),
	}, nil
}
