package model

import (
	"errors"
	"testing"
	"time"
)

func TestQueuePairsInArrivalOrder(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c"} {
		if err := q.AddPlayer(Player{ID: id}); err != nil {
			t.Fatalf("AddPlayer(%q) error: %v", id, err)
		}
	}
	if err := q.AddPlayer(Player{ID: "b"}); !errors.Is(err, ErrAlreadyQueued) {
		t.Errorf("duplicate AddPlayer error = %v, want ErrAlreadyQueued", err)
	}

	p1, p2, ok := q.GetNextPair()
	if !ok || p1.ID != "a" || p2.ID != "b" {
		t.Errorf("GetNextPair() = %q, %q, %v; want a, b, true", p1.ID, p2.ID, ok)
	}
	if _, _, ok := q.GetNextPair(); ok {
		t.Error("GetNextPair() with one player waiting reported ok")
	}
	if got := q.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestQueueRemove(t *testing.T) {
	q := NewQueue()
	q.AddPlayer(Player{ID: "a"})
	q.AddPlayer(Player{ID: "b"})

	if !q.Remove("a") {
		t.Error("Remove(a) = false")
	}
	if q.Remove("a") {
		t.Error("second Remove(a) = true")
	}
	if got := q.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestClock(t *testing.T) {
	c := NewClock(time.Second)
	if c.IsRunning() || c.GetTimeLeft() != time.Second {
		t.Fatalf("new clock running=%v left=%v", c.IsRunning(), c.GetTimeLeft())
	}
	c.Start()
	time.Sleep(20 * time.Millisecond)
	c.Stop()

	left := c.GetTimeLeft()
	if left >= time.Second || left < 500*time.Millisecond {
		t.Errorf("GetTimeLeft() = %v after ~20ms", left)
	}
	time.Sleep(10 * time.Millisecond)
	if got := c.GetTimeLeft(); got != left {
		t.Errorf("stopped clock moved from %v to %v", left, got)
	}
	if c.Expired() {
		t.Error("Expired() = true with time left")
	}
	if got := c.Tenths(); got < 5 || got > 9 {
		t.Errorf("Tenths() = %d", got)
	}
}

func TestClockExpires(t *testing.T) {
	c := NewClock(5 * time.Millisecond)
	c.Start()
	time.Sleep(15 * time.Millisecond)
	if !c.Expired() || c.GetTimeLeft() != 0 {
		t.Errorf("Expired() = %v, GetTimeLeft() = %v", c.Expired(), c.GetTimeLeft())
	}
}
