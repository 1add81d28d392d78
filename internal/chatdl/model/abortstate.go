package model

import "time"

// StateChange records one mutation to the abort-checker state map, in
// the (key, old, new) triple form the spec requires be logged before
// conditions are evaluated.
type StateChange struct {
	Key   string
	Old   any
	New   any
	Kind  StateChangeKind
}

// StateChangeKind classifies a StateChange for logging.
type StateChangeKind string

const (
	StateAdded   StateChangeKind = "added"
	StateChanged StateChangeKind = "changed"
	StateDeleted StateChangeKind = "deleted"
)

// AbortState is the mapping consumed by the abort-condition checker
// (C4). OrigScheduledStartTime latches on first observation and is
// never overwritten.
type AbortState struct {
	OrigScheduledStartTime *time.Time
	ScheduledStartTime     *time.Time
	PlayabilityStatus      string
	PollTimestamp          time.Time

	// set tracks which keys have been observed at least once, so the
	// updater can distinguish "added" from "changed".
	set map[string]bool
}

// updateField refreshes a field and returns the StateChange describing the
// mutation, or nil if the value didn't change. Callers append non-nil
// results to a changelog and log it before invoking the checker.
func (s *AbortState) updateField(key string, old, new any, changed bool) *StateChange {
	if s.set == nil {
		s.set = make(map[string]bool)
	}
	wasSet := s.set[key]
	s.set[key] = true
	if !wasSet {
		return &StateChange{Key: key, Old: nil, New: new, Kind: StateAdded}
	}
	if !changed {
		return nil
	}
	return &StateChange{Key: key, Old: old, New: new, Kind: StateChanged}
}

// UpdateScheduledStartTime applies a freshly observed scheduled start
// time, latching OrigScheduledStartTime on first observation.
func (s *AbortState) UpdateScheduledStartTime(t *time.Time) []StateChange {
	var changes []StateChange
	if s.OrigScheduledStartTime == nil && t != nil {
		s.OrigScheduledStartTime = t
		changes = append(changes, StateChange{Key: "orig_scheduled_start_time", New: *t, Kind: StateAdded})
	}
	changed := !timeEqual(s.ScheduledStartTime, t)
	if c := s.updateField("scheduled_start_time", derefTime(s.ScheduledStartTime), derefTime(t), changed); c != nil {
		changes = append(changes, *c)
	}
	s.ScheduledStartTime = t
	return changes
}

// UpdatePlayabilityStatus applies a freshly observed playability
// status string.
func (s *AbortState) UpdatePlayabilityStatus(status string) []StateChange {
	var changes []StateChange
	if c := s.updateField("playability_status", s.PlayabilityStatus, status, s.PlayabilityStatus != status); c != nil {
		changes = append(changes, *c)
	}
	s.PlayabilityStatus = status
	return changes
}

// MarkPolled records that a heartbeat was just issued.
func (s *AbortState) MarkPolled(now time.Time) {
	s.PollTimestamp = now
}

func timeEqual(a, b *time.Time) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Equal(*b)
}

func derefTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
