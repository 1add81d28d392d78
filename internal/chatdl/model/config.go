package model

import "time"

// ChatMode selects which continuation family the engine drives.
type ChatMode string

const (
	ModeLive   ChatMode = "live"
	ModeReplay ChatMode = "replay"
)

// MessageFilter selects which renderer classes are passed through to
// the caller; it never affects what's fetched, only what's emitted.
type MessageFilter string

const (
	FilterMessages  MessageFilter = "messages"
	FilterSuperchat MessageFilter = "superchat"
	FilterAll       MessageFilter = "all"
)

// EngineConfig is built by the YT engine during Phase I/II discovery
// and mutated thereafter. It is owned exclusively by the running
// engine instance and is never exposed as a process-wide singleton.
type EngineConfig struct {
	APIVersion string
	APIKey     string
	Context    map[string]any

	Title        string
	IsLive       bool
	IsUpcoming   bool
	IsUnlisted   bool
	VideoID      string

	PlayabilityStatus string

	ScheduledStartTime *time.Time
	StartTime          *time.Time
	EndTime            *time.Time

	HeartbeatParams        map[string]any
	HeartbeatIntervalSecs  float64
	HeartbeatSequenceNumber int64

	LoggedOut    bool
	NoChatError  string

	Mode ChatMode
}

// DefaultHeartbeatIntervalSecs is used when the server doesn't declare
// its own interval.
const DefaultHeartbeatIntervalSecs = 60.0
