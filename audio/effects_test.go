package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/tiltpick/parameter"
)

const testRate = beep.SampleRate(44100)

// drain streams s to completion and returns the sample count and peak amplitude
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

// TestOscillatorDuration verifies the oscillator stops after its duration
func TestOscillatorDuration(t *testing.T) {
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, testRate)
	n, peak := drain(osc)

	if want := testRate.N(100 * time.Millisecond); n != want {
		t.Errorf("Expected %d samples, got %d", want, n)
	}
	if peak > 1.0 || peak < 0.9 {
		t.Errorf("Expected unity sine peak, got %f", peak)
	}
}

// TestEnvelopeShapes verifies attack starts silent and release ends near silent
func TestEnvelopeShapes(t *testing.T) {
	d := 50 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)

	if n != len(buf) {
		t.Fatalf("Expected %d samples, got %d", len(buf), n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if mid := buf[n/2][0]; mid != 1 {
		t.Errorf("Expected full sustain, got %f", mid)
	}
	if tail := math.Abs(buf[n-1][0]); tail > 0.01 {
		t.Errorf("Expected release near zero, got %f", tail)
	}
}

// TestSynthEffectsMatchDurations verifies each effect's length matches the duck table
func TestSynthEffectsMatchDurations(t *testing.T) {
	for id, d := range EffectDurations {
		s, ok := Synth(id, testRate)
		if !ok {
			t.Errorf("Expected effect %s", id)
			continue
		}
		n, peak := drain(s)
		want := testRate.N(d)
		if math.Abs(float64(n-want)) > float64(want)*0.01+1 {
			t.Errorf("Expected %s to last %d samples, got %d", id, want, n)
		}
		if peak <= 0 || peak > 1.0001 {
			t.Errorf("Expected %s peak in (0,1], got %f", id, peak)
		}
	}
}

// TestSynthUnknown verifies unknown ids are rejected
func TestSynthUnknown(t *testing.T) {
	if _, ok := Synth("kazoo", testRate); ok {
		t.Error("Expected unknown effect rejected")
	}
}

// TestNewVolumeSilent verifies zero volume maps to a silent effect
func TestNewVolumeSilent(t *testing.T) {
	v := newVolume(NewOscillator(440, 10*time.Millisecond, WaveSine, testRate), 0)
	if !v.Silent {
		t.Error("Expected silent volume for 0")
	}

	setVolume(v, 0.5)
	if v.Silent || v.Volume != -1 {
		t.Errorf("Expected log2(0.5) = -1 unsilenced, got %f silent=%v", v.Volume, v.Silent)
	}
}

// TestPadIsEndless verifies the music pad keeps streaming
func TestPadIsEndless(t *testing.T) {
	pad, err := NewPad(testRate)
	if err != nil {
		t.Fatalf("Expected pad, got %v", err)
	}
	buf := make([][2]float64, 4096)
	for i := 0; i < 20; i++ {
		n, ok := pad.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("Expected full buffers, got n=%d ok=%v", n, ok)
		}
	}
}

// TestEffectIDsCovered verifies every named effect has a duration entry
func TestEffectIDsCovered(t *testing.T) {
	ids := []string{
		parameter.EffectCorrect,
		parameter.EffectWrong,
		parameter.EffectBounce,
		parameter.EffectPop,
		parameter.EffectComplete,
	}
	for _, id := range ids {
		if _, ok := EffectDurations[id]; !ok {
			t.Errorf("Expected duration for %s", id)
		}
	}
}
