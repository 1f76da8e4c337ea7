// Package clock abstracts the current time so it can be fixed in tests.
package clock

import "time"

// Clock reports the current time
//
//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/dice-stats/internal/clock Clock
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// Now returns the system time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}
