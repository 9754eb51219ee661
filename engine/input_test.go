package engine

import (
	"sync"
	"testing"

	"github.com/lixenwraith/tiltpick/parameter"
	"github.com/lixenwraith/tiltpick/physics"
	"github.com/lixenwraith/tiltpick/vmath"
)

// TestInputQueueFIFO verifies discrete events come out in push order
func TestInputQueueFIFO(t *testing.T) {
	q := NewInputQueue()
	for i := 0; i < 5; i++ {
		q.Push(InputEvent{Kind: InputDown, Pos: vmath.V2(float64(i), 0)})
	}

	got, dropped := q.Consume(nil)
	if len(got) != 5 || dropped != 0 {
		t.Fatalf("Expected 5 events and no drops, got %d and %d", len(got), dropped)
	}
	for i, ev := range got {
		if ev.Pos.X != float64(i) {
			t.Errorf("Expected event %d at x=%d, got %f", i, i, ev.Pos.X)
		}
	}

	if again, _ := q.Consume(nil); len(again) != 0 {
		t.Errorf("Expected empty queue, got %d", len(again))
	}
}

// TestInputQueueCoalescesMoves verifies a drag between ticks keeps only its latest point
func TestInputQueueCoalescesMoves(t *testing.T) {
	q := NewInputQueue()
	q.Push(InputEvent{Kind: InputDown, Pos: vmath.V2(0, 0)})
	for i := 1; i <= 50; i++ {
		q.Push(InputEvent{Kind: InputMove, Pos: vmath.V2(float64(i), 0)})
	}
	q.Push(InputEvent{Kind: InputUp, Pos: vmath.V2(50, 0)})
	q.Push(InputEvent{Kind: InputResize, Arena: physics.Arena{Width: 100, Height: 100}})
	q.Push(InputEvent{Kind: InputResize, Arena: physics.Arena{Width: 200, Height: 100}})

	got, _ := q.Consume(nil)
	kinds := []InputKind{InputDown, InputMove, InputUp, InputResize}
	if len(got) != len(kinds) {
		t.Fatalf("Expected %d events, got %d", len(kinds), len(got))
	}
	for i, k := range kinds {
		if got[i].Kind != k {
			t.Errorf("Expected event %d kind %d, got %d", i, k, got[i].Kind)
		}
	}
	if got[1].Pos.X != 50 {
		t.Errorf("Expected latest move x=50, got %f", got[1].Pos.X)
	}
	if got[3].Arena.Width != 200 {
		t.Errorf("Expected latest arena width 200, got %f", got[3].Arena.Width)
	}
}

// TestInputQueueNeverMergesTaps verifies repeated downs and ups all survive
func TestInputQueueNeverMergesTaps(t *testing.T) {
	q := NewInputQueue()
	for i := 0; i < 3; i++ {
		q.Push(InputEvent{Kind: InputDown})
		q.Push(InputEvent{Kind: InputUp})
	}
	q.Push(InputEvent{Kind: InputRestart})
	q.Push(InputEvent{Kind: InputRestart})

	if got, _ := q.Consume(nil); len(got) != 8 {
		t.Errorf("Expected 8 events, got %d", len(got))
	}
}

// TestInputQueueOverflow verifies the oldest events are dropped and counted
func TestInputQueueOverflow(t *testing.T) {
	q := NewInputQueue()
	total := parameter.PointerQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(InputEvent{Kind: InputDown, Pos: vmath.V2(float64(i), 0)})
	}

	got, dropped := q.Consume(nil)
	if len(got) != parameter.PointerQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.PointerQueueSize, len(got))
	}
	if dropped != 10 {
		t.Errorf("Expected 10 dropped, got %d", dropped)
	}
	if got[0].Pos.X != 10 {
		t.Errorf("Expected oldest surviving x=10, got %f", got[0].Pos.X)
	}
	if last := got[len(got)-1].Pos.X; last != float64(total-1) {
		t.Errorf("Expected newest x=%d, got %f", total-1, last)
	}

	if _, again := q.Consume(nil); again != 0 {
		t.Errorf("Expected drop count reset, got %d", again)
	}
}

// TestInputQueueConcurrentProducers verifies no discrete events are lost below capacity
func TestInputQueueConcurrentProducers(t *testing.T) {
	q := NewInputQueue()
	const producers, each = 4, 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Push(InputEvent{Kind: InputDown})
			}
		}()
	}
	wg.Wait()

	if got, _ := q.Consume(nil); len(got) != producers*each {
		t.Errorf("Expected %d events, got %d", producers*each, len(got))
	}
}
