// Package config loads the engine's tunable knobs - HTTP timeout,
// retry cap, backoff bounds, heartbeat default interval, and Phase-I
// retry jitter bounds - the way the teacher's internal/config.Loader
// loads AppConfig: typed defaults, overridable by environment
// variables, validated before use.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Tunables holds every engine knob the CLI doesn't expose directly.
// The CLI flag surface (see cmd/chatdl) owns per-run options like url,
// time window and output path; Tunables owns the cross-run engine
// policy an operator tunes via environment, not per invocation.
type Tunables struct {
	HTTPTimeout    time.Duration
	MaxRetries     int
	BackoffInitial time.Duration
	BackoffMax     time.Duration

	HeartbeatIntervalSecs float64

	UpcomingRetryMinSecs int
	UpcomingRetryMaxSecs int
}

// Defaults returns the built-in Tunables, matching the constants the
// C1/C6 packages fall back to when no Loader is used at all.
func Defaults() Tunables {
	return Tunables{
		HTTPTimeout:    10 * time.Second,
		MaxRetries:     10,
		BackoffInitial: time.Second,
		BackoffMax:     32 * time.Second,

		HeartbeatIntervalSecs: 60,

		UpcomingRetryMinSecs: 45,
		UpcomingRetryMaxSecs: 60,
	}
}

// Loader loads Tunables with precedence: ENV > Defaults. There is no
// file-based engine config (per the spec's design notes, the only
// persisted state is the cookie jar and the output file), so ENV is
// the sole override path.
type Loader struct{}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load loads configuration with precedence: ENV > Defaults.
func (l *Loader) Load() (Tunables, error) {
	cfg := Defaults()

	cfg.HTTPTimeout = envDuration("CHATDL_HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.MaxRetries = envInt("CHATDL_MAX_RETRIES", cfg.MaxRetries)
	cfg.BackoffInitial = envDuration("CHATDL_BACKOFF_INITIAL", cfg.BackoffInitial)
	cfg.BackoffMax = envDuration("CHATDL_BACKOFF_MAX", cfg.BackoffMax)
	cfg.HeartbeatIntervalSecs = envFloat("CHATDL_HEARTBEAT_INTERVAL_SECS", cfg.HeartbeatIntervalSecs)
	cfg.UpcomingRetryMinSecs = envInt("CHATDL_UPCOMING_RETRY_MIN_SECS", cfg.UpcomingRetryMinSecs)
	cfg.UpcomingRetryMaxSecs = envInt("CHATDL_UPCOMING_RETRY_MAX_SECS", cfg.UpcomingRetryMaxSecs)

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate defensively checks Tunables the same way the teacher's
// config.Validate checks AppConfig: every field gets its own bounds
// check, and every violation is collected rather than stopping at the
// first one.
func Validate(cfg Tunables) error {
	var errs []error
	if cfg.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTPTimeout: must be positive, got %s", cfg.HTTPTimeout))
	}
	if cfg.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("MaxRetries: must be >= 0, got %d", cfg.MaxRetries))
	}
	if cfg.BackoffInitial <= 0 {
		errs = append(errs, fmt.Errorf("BackoffInitial: must be positive, got %s", cfg.BackoffInitial))
	}
	if cfg.BackoffMax < cfg.BackoffInitial {
		errs = append(errs, fmt.Errorf("BackoffMax: must be >= BackoffInitial, got %s < %s", cfg.BackoffMax, cfg.BackoffInitial))
	}
	if cfg.HeartbeatIntervalSecs <= 0 {
		errs = append(errs, fmt.Errorf("HeartbeatIntervalSecs: must be positive, got %v", cfg.HeartbeatIntervalSecs))
	}
	if cfg.UpcomingRetryMinSecs <= 0 {
		errs = append(errs, fmt.Errorf("UpcomingRetryMinSecs: must be positive, got %d", cfg.UpcomingRetryMinSecs))
	}
	if cfg.UpcomingRetryMaxSecs < cfg.UpcomingRetryMinSecs {
		errs = append(errs, fmt.Errorf("UpcomingRetryMaxSecs: must be >= UpcomingRetryMinSecs, got %d < %d", cfg.UpcomingRetryMaxSecs, cfg.UpcomingRetryMinSecs))
	}
	return errors.Join(errs...)
}
