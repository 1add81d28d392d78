package resilience

import "math/rand"
import "time"

// JitteredBackOff implements cenkalti/backoff/v5's BackOff interface.
// Each retry delay is the previous delay multiplied by a factor drawn
// uniformly from [1.0, 1.5], capped at MaxInterval - the capped,
// jittered exponential policy the HTTP session's retry layer uses.
type JitteredBackOff struct {
	Initial     time.Duration
	MaxInterval time.Duration

	current time.Duration
}

// DefaultBackoffInitial/DefaultBackoffMax are the session's default
// retry policy bounds, overridable via internal/config tunables.
const (
	DefaultBackoffInitial = time.Second
	DefaultBackoffMax     = 32 * time.Second
)

// NewJitteredBackOff returns a BackOff starting at 1s, capped at 32s,
// matching the session's default retry policy.
func NewJitteredBackOff() *JitteredBackOff {
	return &JitteredBackOff{
		Initial:     DefaultBackoffInitial,
		MaxInterval: DefaultBackoffMax,
	}
}

// Reset restarts the backoff sequence from Initial.
func (b *JitteredBackOff) Reset() {
	b.current = 0
}

// NextBackOff returns the next retry delay.
func (b *JitteredBackOff) NextBackOff() time.Duration {
	if b.current == 0 {
		b.current = b.Initial
	} else {
		factor := 1.0 + rand.Float64()*0.5 // uniform in [1.0, 1.5]
		b.current = time.Duration(float64(b.current) * factor)
	}
	if b.current > b.MaxInterval {
		b.current = b.MaxInterval
	}
	return b.current
}
