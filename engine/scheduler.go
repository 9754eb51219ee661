package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tiltpick/core"
)

// Scheduler drives a step function on a fixed tick
// Uses deadline-based drift correction and sleeps longer while paused
type Scheduler struct {
	step     func(dt float64)
	interval time.Duration

	paused  atomic.Bool
	resumed atomic.Bool // Set by Resume so the next dt excludes paused time
	running atomic.Bool
	ticks   atomic.Uint64

	frames   chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler creates a stopped scheduler calling step every interval
func NewScheduler(interval time.Duration, step func(dt float64)) *Scheduler {
	return &Scheduler{
		step:     step,
		interval: interval,
		frames:   make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop halts the loop and waits for the in-flight step
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.running.Load() {
			s.wg.Wait()
		}
	})
}

// Pause suspends stepping
func (s *Scheduler) Pause() {
	s.paused.Store(true)
}

// Resume continues stepping without counting the paused span
func (s *Scheduler) Resume() {
	if s.paused.Swap(false) {
		s.resumed.Store(true)
	}
}

// Paused reports the pause state
func (s *Scheduler) Paused() bool {
	return s.paused.Load()
}

// Ticks returns the number of steps run
func (s *Scheduler) Ticks() uint64 {
	return s.ticks.Load()
}

// Frames signals after each step; coalesces when the reader lags
func (s *Scheduler) Frames() <-chan struct{} {
	return s.frames
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	last := time.Now()
	deadline := last.Add(s.interval)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-timer.C:
		}

		now := time.Now()
		if s.paused.Load() {
			// Poll at half rate while paused to save CPU
			timer.Reset(s.interval * 2)
			continue
		}
		if s.resumed.Swap(false) {
			last = now.Add(-s.interval)
			deadline = now
		}

		dt := now.Sub(last).Seconds()
		last = now
		s.step(dt)
		s.ticks.Add(1)

		select {
		case s.frames <- struct{}{}:
		default:
		}

		deadline = deadline.Add(s.interval)
		if now.Sub(deadline) > s.interval*2 {
			deadline = now.Add(s.interval)
		}
		timer.Reset(max(time.Until(deadline), 0))
	}
}
