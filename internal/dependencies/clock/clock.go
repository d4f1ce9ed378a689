package clock

import "time"

// Clock provides the current time so that timestamps can be controlled in tests
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to the Clock interface
type Func func() time.Time

// Now calls f
func (f Func) Now() time.Time {
	return f()
}

// New returns a Clock backed by the system time
func New() Clock {
	return Func(time.Now)
}
