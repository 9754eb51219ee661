// Package audio sequences narration and feedback sounds over pluggable ports
// and provides beep-backed implementations of those ports.
package audio

import (
	"context"
	"errors"
)

// Clip is a resolved narration asset
type Clip struct {
	Name string
	Path string
}

// EffectPort plays short one-shot feedback sounds
type EffectPort interface {
	// Play starts effect id at playback rate (1 = native pitch) and volume [0,1]
	Play(id string, rate, volume float64)
	// Stop cuts every effect still sounding
	Stop()
}

// VoicePort plays recorded narration clips one at a time
type VoicePort interface {
	// Play starts clip; the channel yields once when playback ends or fails
	Play(clip Clip) <-chan error
	// Stop cuts the current clip; its channel still yields
	Stop()
}

// MusicPort is the background music bus
type MusicPort interface {
	SetVolume(v float64)
}

// SpeechPort synthesizes text when no recorded clip exists
type SpeechPort interface {
	Ready() bool
	Speak(ctx context.Context, text string) <-chan error
	Stop()
}

// AssetResolver maps a clip name to a playable clip
type AssetResolver interface {
	Resolve(name string) (Clip, bool)
}

// Sentinel errors
var (
	ErrNoSpeechEngine = errors.New("no speech engine found")
	ErrSilent         = errors.New("audio output unavailable")
	ErrNotWAV         = errors.New("clip is not a wav file")
)

type nopEffects struct{}

func (nopEffects) Play(string, float64, float64) {}

func (nopEffects) Stop() {}

type nopVoice struct{}

func (nopVoice) Play(Clip) <-chan error {
	ch := make(chan error, 1)
	ch <- ErrSilent
	return ch
}

func (nopVoice) Stop() {}

type nopMusic struct{}

func (nopMusic) SetVolume(float64) {}

type nopSpeech struct{}

func (nopSpeech) Ready() bool { return false }

func (nopSpeech) Speak(context.Context, string) <-chan error {
	ch := make(chan error, 1)
	ch <- ErrNoSpeechEngine
	return ch
}

func (nopSpeech) Stop() {}

type nopAssets struct{}

func (nopAssets) Resolve(string) (Clip, bool) { return Clip{}, false }
