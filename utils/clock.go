package utils

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Used by tests.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Today returns the calendar date of now in loc, as UTC midnight so it
// compares directly with dates parsed from "2006-01-02".
func Today(clock Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	now := clock.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
