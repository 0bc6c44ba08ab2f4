package calendar

import "time"

// Clock supplies the current time to date calculations.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Used by tests and by callers
// that need to pin "now" for a whole request.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
