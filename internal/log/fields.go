package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldSessionID       = "session_id"
	FieldCorrelationID   = "correlation_id"
	FieldClientRequestID = "client_request_id"
	FieldJobID           = "job_id"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Chat engine fields
	FieldVideoID   = "video_id"
	FieldChannelID = "channel_id"
	FieldPlatform  = "platform"
	FieldMode      = "mode"
	FieldCursor    = "cursor"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"

	// Path / URL fields
	FieldPath    = "path"
	FieldBaseURL = "base_url"
)
