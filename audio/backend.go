package audio

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/tiltpick/parameter"
)

// Config holds output settings
type Config struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64
	MusicVolume  float64
	Music        bool // Play the background pad
}

// DefaultConfig returns the standard output settings
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		SampleRate:   parameter.AudioSampleRate,
		MasterVolume: parameter.MasterVolume,
		MusicVolume:  parameter.MusicVolume,
		Music:        true,
	}
}

// Backend mixes effects, narration clips and music onto the speaker
// Falls back to silent mode when disabled or the device cannot open
type Backend struct {
	cfg   Config
	sr    beep.SampleRate
	mixer *beep.Mixer
	music *effects.Volume

	silent  atomic.Bool
	running atomic.Bool

	effects *effectBus
	voice   *voiceBus
	bus     *musicBus
}

// NewBackend creates a stopped backend
func NewBackend(cfg Config) *Backend {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	b := &Backend{
		cfg:   cfg,
		sr:    beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
	b.effects = &effectBus{b: b}
	b.voice = &voiceBus{b: b}
	b.bus = &musicBus{b: b}
	b.silent.Store(true)
	return b
}

// Start opens the speaker and begins mixing
// On device failure the backend stays usable in silent mode and the error wraps ErrSilent
func (b *Backend) Start() error {
	if b.running.Swap(true) {
		return nil
	}
	if !b.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(b.sr, b.sr.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("%w: speaker init: %v", ErrSilent, err)
	}

	if b.cfg.Music {
		pad, err := NewPad(b.sr)
		if err != nil {
			slog.Debug("music pad disabled", "err", err)
		} else {
			b.music = newVolume(pad, b.cfg.MusicVolume*b.cfg.MasterVolume)
			b.mixer.Add(b.music)
		}
	}

	speaker.Play(b.mixer)
	b.silent.Store(false)
	return nil
}

// Close stops all output
func (b *Backend) Close() {
	if !b.running.Swap(false) {
		return
	}
	b.voice.Stop()
	b.effects.Stop()
	if b.silent.Swap(true) {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Silent reports whether output is discarded
func (b *Backend) Silent() bool {
	return b.silent.Load()
}

// Effects returns the effect port
func (b *Backend) Effects() EffectPort { return b.effects }

// Voice returns the clip port
func (b *Backend) Voice() VoicePort { return b.voice }

// Music returns the music bus
func (b *Backend) Music() MusicPort { return b.bus }

// effectBus mixes one-shot effects; live tracks the ones still sounding
// mu is never held while taking the speaker lock
type effectBus struct {
	b    *Backend
	mu   sync.Mutex
	live map[*beep.Ctrl]struct{}
}

func (e *effectBus) Play(id string, rate, volume float64) {
	b := e.b
	if b.silent.Load() {
		return
	}
	s, ok := Synth(id, b.sr)
	if !ok {
		slog.Debug("unknown effect", "id", id)
		return
	}
	if rate > 0 && rate != 1 {
		s = beep.ResampleRatio(4, rate, s)
	}
	s = newVolume(s, volume*b.cfg.MasterVolume)

	out := e.track(s)
	speaker.Lock()
	b.mixer.Add(out)
	speaker.Unlock()
}

// track wraps s so Stop can silence it; the wrapper forgets itself once drained
func (e *effectBus) track(s beep.Streamer) beep.Streamer {
	ctrl := &beep.Ctrl{Streamer: s}
	e.mu.Lock()
	if e.live == nil {
		e.live = make(map[*beep.Ctrl]struct{})
	}
	e.live[ctrl] = struct{}{}
	e.mu.Unlock()

	// Callback runs on the speaker goroutine with the speaker lock held
	return beep.Seq(ctrl, beep.Callback(func() {
		e.mu.Lock()
		delete(e.live, ctrl)
		e.mu.Unlock()
	}))
}

// Stop cuts every effect still sounding
func (e *effectBus) Stop() {
	e.mu.Lock()
	ctrls := make([]*beep.Ctrl, 0, len(e.live))
	for c := range e.live {
		ctrls = append(ctrls, c)
	}
	clear(e.live)
	e.mu.Unlock()

	if len(ctrls) == 0 {
		return
	}
	speaker.Lock()
	for _, c := range ctrls {
		c.Streamer = nil
	}
	speaker.Unlock()
}

func (e *effectBus) active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

type musicBus struct {
	b *Backend
}

func (m *musicBus) SetVolume(v float64) {
	b := m.b
	if b.silent.Load() || b.music == nil {
		return
	}
	speaker.Lock()
	setVolume(b.music, v*b.cfg.MasterVolume)
	speaker.Unlock()
}

// playback is one clip on the voice bus
type playback struct {
	ctrl   *beep.Ctrl
	closer io.Closer
	done   chan error
	once   sync.Once
}

func (p *playback) finish(err error) {
	p.once.Do(func() {
		if p.closer != nil {
			p.closer.Close()
		}
		p.done <- err
	})
}

// voiceBus plays one clip at a time
// mu is never held while taking the speaker lock; completion callbacks run under it
type voiceBus struct {
	b   *Backend
	mu  sync.Mutex
	cur *playback
}

func (v *voiceBus) Play(clip Clip) <-chan error {
	done := make(chan error, 1)
	b := v.b
	if b.silent.Load() {
		done <- ErrSilent
		return done
	}

	f, err := os.Open(clip.Path)
	if err != nil {
		done <- fmt.Errorf("open clip %s: %w", clip.Name, err)
		return done
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		done <- fmt.Errorf("decode clip %s: %w", clip.Name, err)
		return done
	}

	var stream beep.Streamer = s
	if format.SampleRate != b.sr {
		stream = beep.Resample(4, format.SampleRate, b.sr, s)
	}

	p := &playback{closer: s, done: done}
	p.ctrl = &beep.Ctrl{Streamer: beep.Seq(stream, beep.Callback(func() {
		v.mu.Lock()
		if v.cur == p {
			v.cur = nil
		}
		v.mu.Unlock()
		p.finish(nil)
	}))}

	v.mu.Lock()
	prev := v.cur
	v.cur = p
	v.mu.Unlock()
	if prev != nil {
		v.cut(prev)
	}

	speaker.Lock()
	b.mixer.Add(p.ctrl)
	speaker.Unlock()
	return done
}

func (v *voiceBus) Stop() {
	v.mu.Lock()
	p := v.cur
	v.cur = nil
	v.mu.Unlock()
	if p != nil {
		v.cut(p)
	}
}

func (v *voiceBus) cut(p *playback) {
	if !v.b.silent.Load() {
		speaker.Lock()
		p.ctrl.Streamer = nil
		speaker.Unlock()
	}
	p.finish(nil)
}
