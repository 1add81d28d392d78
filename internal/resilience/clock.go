// Package resilience provides the retry/backoff policy shared by every
// outbound HTTP call the engine makes.
package resilience

import "time"

// Clock abstracts time so retry/backoff logic can be driven by a fake
// clock in tests instead of wall time.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// realClock is the production Clock backed by the time package.
type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock is the shared production clock instance.
var RealClock Clock = realClock{}
