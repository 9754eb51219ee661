package parameter

import "time"

// Effect identifiers
const (
	EffectCorrect  = "correct"
	EffectWrong    = "wrong"
	EffectBounce   = "bounce"
	EffectPop      = "pop"
	EffectComplete = "complete"
)

// Narration clips and their speech fallbacks
const (
	ClipWin          = "win"
	ClipWinText      = "Great job!"
	ClipComplete     = "all_done"
	ClipCompleteText = "You found them all!"
)

// Mixer and ducking
const (
	// AudioSampleRate is the mixer output rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	MasterVolume = 0.8
	MusicVolume  = 0.5

	// DuckVolume is the music volume while narration or a ducking effect plays
	DuckVolume = 0.15

	// EffectDuckDuration is the fallback estimated length of a ducking effect
	EffectDuckDuration = 700 * time.Millisecond

	// NarrationQueueMax bounds pending narration lines, newest dropped beyond it
	NarrationQueueMax = 32

	// VoiceStopTimeout bounds the wait for a stopped clip to report completion
	VoiceStopTimeout = 250 * time.Millisecond
)

// Bounce feedback mapping from impact intensity
const (
	BounceRateBase    = 0.9
	BounceRateSpan    = 0.4
	BounceVolumeBase  = 0.25
	BounceVolumeSpan  = 0.5
	TapEffectVolume   = 0.9
	CompleteEffectVol = 1.0
)
