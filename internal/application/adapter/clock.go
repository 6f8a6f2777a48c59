package adapter

import "time"

// Clock supplies the current instant. Use cases derive "today" from it in the configured timezone.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns a Clock reading wall time in loc.
func SystemClock(loc *time.Location) Clock {
	return ClockFunc(func() time.Time {
		return time.Now().In(loc)
	})
}
