// Package model holds the canonical data shapes shared across the chat
// engine: the normalized chat record, the mutable engine config built
// during discovery, and the abort-checker state map.
package model

// AuthorType is the highest-ranked badge icon identifier for a chat
// author, ordered "" < VERIFIED < MEMBER < MODERATOR < OWNER.
type AuthorType string

const (
	AuthorNone      AuthorType = ""
	AuthorVerified  AuthorType = "verified"
	AuthorMember    AuthorType = "member"
	AuthorModerator AuthorType = "moderator"
	AuthorOwner     AuthorType = "owner"
)

// authorTypeRank implements the total order from spec 3.1; higher wins.
var authorTypeRank = map[AuthorType]int{
	AuthorNone:      0,
	AuthorVerified:  1,
	AuthorMember:    2,
	AuthorModerator: 3,
	AuthorOwner:     4,
}

// Rank returns this author type's position in the total order.
func (a AuthorType) Rank() int {
	return authorTypeRank[a]
}

// MaxAuthorType returns the highest-ranked of the given author types.
func MaxAuthorType(types ...AuthorType) AuthorType {
	best := AuthorNone
	for _, t := range types {
		if t.Rank() > best.Rank() {
			best = t
		}
	}
	return best
}

// Color is a badge/header/body color decomposed from a 32-bit ARGB
// integer into both component and hex form.
type Color struct {
	RGBA [4]uint8 `json:"rgba"`
	Hex  string   `json:"hex"`
}

// Record is the canonical chat record produced by the item normalizer
// (C3), consumed by the output sink (C8) and any operator callback.
// All fields but Message are optional; JSON tags control both the
// JSON sink's field names and the CSV sink's header derivation.
type Record struct {
	Timestamp            *int64 `json:"timestamp,omitempty"`
	Datetime              string `json:"datetime,omitempty"`
	TimeText              string `json:"time_text,omitempty"`
	TimeInSeconds         *int64 `json:"time_in_seconds,omitempty"`
	VideoOffsetTimeMsec   *int64 `json:"video_offset_time_msec,omitempty"`

	Author     string     `json:"author,omitempty"`
	AuthorID   string     `json:"author_id,omitempty"`
	AuthorType AuthorType `json:"author_type,omitempty"`
	Badges     string     `json:"badges,omitempty"`

	Message string `json:"message"`
	Amount  string `json:"amount,omitempty"`

	HeaderColor *Color `json:"header_color,omitempty"`
	BodyColor   *Color `json:"body_color,omitempty"`

	// TickerDuration > 0 means this record is a ticker-mirror of a
	// superchat that also appears as a chat-class record; it stays in
	// the output buffer but is suppressed from stdout.
	TickerDuration *int64 `json:"ticker_duration,omitempty"`
}

// IsTicker reports whether this record is a ticker-mirror item that
// should be retained in the buffer but not printed.
func (r *Record) IsTicker() bool {
	return r.TickerDuration != nil && *r.TickerDuration > 0
}
