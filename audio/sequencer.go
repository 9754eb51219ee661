package audio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lixenwraith/tiltpick/core"
	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/status"
)

// Ports bundles the sequencer's outputs; nil ports are replaced by no-ops
type Ports struct {
	Effects EffectPort
	Voice   VoicePort
	Music   MusicPort
	Speech  SpeechPort
	Assets  AssetResolver
}

// line is a queued narration request
type line struct {
	clip     string
	fallback string
}

// SequencerOption configures a Sequencer
type SequencerOption func(*Sequencer)

// WithVolumes sets the normal and ducked music levels
func WithVolumes(music, duck float64) SequencerOption {
	return func(s *Sequencer) {
		s.musicVolume = music
		s.duckVolume = duck
	}
}

// WithRegistry records playback counters
func WithRegistry(reg *status.Registry) SequencerOption {
	return func(s *Sequencer) { s.reg = reg }
}

// Sequencer plays effects immediately and narration strictly one line at a time
// Music is ducked while any line or ducking effect is audible
type Sequencer struct {
	ports Ports
	reg   *status.Registry

	musicVolume float64
	duckVolume  float64

	mu         sync.Mutex
	queue      []line
	cancelLine context.CancelFunc // In-flight line, nil when idle
	busy       bool
	holds      int // Active duck holds
	timers     map[*time.Timer]struct{}
	started    bool
	closed     bool
	cancel     context.CancelFunc

	wake     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewSequencer creates a stopped sequencer; lines queued before Start play once started
func NewSequencer(ports Ports, opts ...SequencerOption) *Sequencer {
	if ports.Effects == nil {
		ports.Effects = nopEffects{}
	}
	if ports.Voice == nil {
		ports.Voice = nopVoice{}
	}
	if ports.Music == nil {
		ports.Music = nopMusic{}
	}
	if ports.Speech == nil {
		ports.Speech = nopSpeech{}
	}
	if ports.Assets == nil {
		ports.Assets = nopAssets{}
	}

	s := &Sequencer{
		ports:       ports,
		musicVolume: parameter.MusicVolume,
		duckVolume:  parameter.DuckVolume,
		timers:      make(map[*time.Timer]struct{}),
		wake:        make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the narration worker
func (s *Sequencer) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.closed {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.ports.Music.SetVolume(s.musicVolume)

	s.wg.Add(1)
	core.Go(func() { s.run(ctx) })
}

// Stop cancels narration, waits for the worker and restores music
// Idempotent
func (s *Sequencer) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		if s.cancel != nil {
			s.cancel()
		}
		s.mu.Unlock()

		s.wg.Wait()

		s.mu.Lock()
		s.queue = nil
		for t := range s.timers {
			t.Stop()
		}
		clear(s.timers)
		s.holds = 0
		s.mu.Unlock()

		s.ports.Effects.Stop()
		s.ports.Voice.Stop()
		s.ports.Speech.Stop()
		s.ports.Music.SetVolume(s.musicVolume)
	})
}

// PlayEffect fires a one-shot effect; duck lowers music for its estimated length
func (s *Sequencer) PlayEffect(id string, rate, volume float64, duck bool) {
	if rate <= 0 {
		rate = 1
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if duck {
		s.holdLocked()
		var t *time.Timer
		t = time.AfterFunc(EffectDuration(id, rate), func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.timers[t]; !ok {
				return
			}
			delete(s.timers, t)
			s.releaseLocked()
		})
		s.timers[t] = struct{}{}
	}
	s.mu.Unlock()

	s.ports.Effects.Play(id, rate, volume)
	s.reg.Inc(status.EffectsPlayed)
}

// PlayNarration queues a line; interrupt discards pending lines and cuts the current one
func (s *Sequencer) PlayNarration(clip, fallback string, interrupt bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if interrupt {
		s.queue = s.queue[:0]
		if s.cancelLine != nil {
			s.cancelLine()
			s.reg.Inc(status.LinesInterrupted)
		}
	}
	if len(s.queue) >= parameter.NarrationQueueMax {
		s.mu.Unlock()
		slog.Debug("narration queue full", "clip", clip)
		s.reg.Inc(status.LinesDropped)
		return
	}
	s.queue = append(s.queue, line{clip: clip, fallback: fallback})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued lines not yet started
func (s *Sequencer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Busy reports whether a line is playing
func (s *Sequencer) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Sequencer) run(ctx context.Context) {
	defer s.wg.Done()
	for {
		l, lineCtx, ok := s.next(ctx)
		if !ok {
			return
		}
		s.play(lineCtx, l)

		s.mu.Lock()
		if s.cancelLine != nil {
			s.cancelLine()
			s.cancelLine = nil
		}
		s.busy = false
		s.mu.Unlock()
	}
}

// next blocks for the head of the queue and marks it in flight
func (s *Sequencer) next(ctx context.Context) (line, context.Context, bool) {
	for {
		s.mu.Lock()
		if ctx.Err() != nil {
			s.mu.Unlock()
			return line{}, nil, false
		}
		if len(s.queue) > 0 {
			l := s.queue[0]
			s.queue = append(s.queue[:0], s.queue[1:]...)
			lineCtx, cancel := context.WithCancel(ctx)
			s.cancelLine = cancel
			s.busy = true
			s.mu.Unlock()
			return l, lineCtx, true
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return line{}, nil, false
		case <-s.wake:
		}
	}
}

// play renders one line through the clip port, else speech, else drops it
func (s *Sequencer) play(ctx context.Context, l line) {
	if ctx.Err() != nil {
		return
	}

	var (
		done <-chan error
		stop func()
		via  string
	)
	if clip, ok := s.ports.Assets.Resolve(l.clip); ok {
		done, stop, via = s.ports.Voice.Play(clip), s.ports.Voice.Stop, "clip"
		s.reg.Inc(status.LinesPlayed)
	} else if l.fallback != "" && s.ports.Speech.Ready() {
		done, stop, via = s.ports.Speech.Speak(ctx, l.fallback), s.ports.Speech.Stop, "speech"
		s.reg.Inc(status.LinesSpoken)
	} else {
		slog.Debug("narration dropped", "clip", l.clip)
		s.reg.Inc(status.LinesDropped)
		return
	}
	if done == nil {
		return
	}

	s.hold()
	defer s.release()

	select {
	case err := <-done:
		if err != nil {
			slog.Debug("narration failed", "clip", l.clip, "via", via, "err", err)
		}
	case <-ctx.Done():
		stop()
		select {
		case <-done:
		case <-time.After(parameter.VoiceStopTimeout):
			slog.Debug("narration stop timed out", "clip", l.clip, "via", via)
		}
	}
}

func (s *Sequencer) hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdLocked()
}

func (s *Sequencer) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
}

func (s *Sequencer) holdLocked() {
	s.holds++
	if s.holds == 1 {
		s.ports.Music.SetVolume(s.duckVolume)
	}
}

func (s *Sequencer) releaseLocked() {
	if s.holds == 0 {
		return
	}
	s.holds--
	if s.holds == 0 {
		s.ports.Music.SetVolume(s.musicVolume)
	}
}
