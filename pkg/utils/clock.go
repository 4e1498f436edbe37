package utils

import "time"

// Clock abstracts the time source so date-sensitive rules can be tested
// with a fixed moment.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same moment.
type FixedClock struct {
	Moment time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Moment
}
