package mock

import (
	"sync"
	"time"
)

// Time is a clock that can be moved to a fixed instant and keeps ticking from there.
type Time struct {
	mu               sync.RWMutex
	currentStartTime time.Time
	updatedAt        time.Time
}

func NewTime() *Time {
	return &Time{
		currentStartTime: time.Now(),
		updatedAt:        time.Now(),
	}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentStartTime = currentTime
	t.updatedAt = time.Now()
}

func (t *Time) Reset() {
	t.SetCurrentTime(time.Now())
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentStartTime.Add(time.Since(t.updatedAt))
}
