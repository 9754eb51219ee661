package engine

import (
	"sync"
	"testing"
	"time"
)

// TestSchedulerTicks verifies steps run with positive dt
func TestSchedulerTicks(t *testing.T) {
	var mu sync.Mutex
	var dts []float64
	s := NewScheduler(2*time.Millisecond, func(dt float64) {
		mu.Lock()
		dts = append(dts, dt)
		mu.Unlock()
	})
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(dts) < 5 {
		t.Fatalf("Expected several ticks, got %d", len(dts))
	}
	for i, dt := range dts {
		if dt <= 0 {
			t.Errorf("Expected positive dt at %d, got %f", i, dt)
		}
	}
	if s.Ticks() != uint64(len(dts)) {
		t.Errorf("Expected tick counter %d, got %d", len(dts), s.Ticks())
	}
}

// TestSchedulerPauseResume verifies no steps while paused and a bounded dt after resume
func TestSchedulerPauseResume(t *testing.T) {
	var mu sync.Mutex
	var last float64
	s := NewScheduler(2*time.Millisecond, func(dt float64) {
		mu.Lock()
		last = dt
		mu.Unlock()
	})
	s.Start()
	defer s.Stop()

	time.Sleep(20 * time.Millisecond)
	s.Pause()
	time.Sleep(10 * time.Millisecond)
	frozen := s.Ticks()
	time.Sleep(40 * time.Millisecond)

	if got := s.Ticks(); got != frozen {
		t.Errorf("Expected no ticks while paused, got %d more", got-frozen)
	}
	if !s.Paused() {
		t.Error("Expected paused state")
	}

	s.Resume()
	deadline := time.Now().Add(time.Second)
	for s.Ticks() == frozen && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if s.Ticks() == frozen {
		t.Fatal("Expected ticks after resume")
	}

	mu.Lock()
	defer mu.Unlock()
	if last > 0.03 {
		t.Errorf("Expected resume dt to exclude paused time, got %f", last)
	}
}

// TestSchedulerStopIdempotent verifies Stop before and after Start is safe
func TestSchedulerStopIdempotent(t *testing.T) {
	s := NewScheduler(time.Millisecond, func(float64) {})
	s.Start()
	s.Stop()
	s.Stop()

	n := s.Ticks()
	time.Sleep(10 * time.Millisecond)
	if s.Ticks() != n {
		t.Error("Expected no ticks after Stop")
	}
}

// TestSchedulerFrames verifies a frame signal follows a step
func TestSchedulerFrames(t *testing.T) {
	s := NewScheduler(time.Millisecond, func(float64) {})
	s.Start()
	defer s.Stop()

	select {
	case <-s.Frames():
	case <-time.After(time.Second):
		t.Fatal("Expected frame signal")
	}
}
