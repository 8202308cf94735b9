package model

import (
	"sync"
	"time"
)

// Clock is one side's chess clock. It only runs between Start and Stop.
type Clock struct {
	mu        sync.Mutex
	timeLeft  time.Duration
	startedAt time.Time // zero while stopped
}

func NewClock(initialTime time.Duration) *Clock {
	return &Clock{timeLeft: initialTime}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.startedAt.IsZero() {
		c.startedAt = time.Now()
	}
}

// Stop banks the time used since Start.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeLeft = c.remaining()
	c.startedAt = time.Time{}
}

func (c *Clock) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.startedAt.IsZero()
}

// GetTimeLeft never returns a negative duration.
func (c *Clock) GetTimeLeft() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return max(c.remaining(), 0)
}

func (c *Clock) remaining() time.Duration {
	if c.startedAt.IsZero() {
		return c.timeLeft
	}
	return c.timeLeft - time.Since(c.startedAt)
}

// Expired reports whether the flag has fallen.
func (c *Clock) Expired() bool {
	return c.GetTimeLeft() <= 0
}

// Tenths is the time left in tenths of a second, the unit sent to clients.
func (c *Clock) Tenths() int {
	return int(c.GetTimeLeft().Milliseconds() / 100)
}
