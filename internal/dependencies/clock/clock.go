package clock

import "time"

// Clock abstracts the time source. Session tokens, inactivity sweeps
// and audit timestamps all read time through it so tests can freeze
// and advance it deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// New returns a Clock backed by the system clock.
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}
