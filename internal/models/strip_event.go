package models

import "time"

// Event types recorded in the strip event log.
const (
	EventStart      = "START"
	EventStop       = "STOP"
	EventScene      = "SCENE"
	EventPixel      = "PIXEL"
	EventBrightness = "BRIGHTNESS"
	EventClear      = "CLEAR"
	EventWakeWord   = "WAKE_WORD"
)

// StripEvent is a single append-only log entry.
type StripEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // START | STOP | SCENE | PIXEL | BRIGHTNESS | CLEAR | WAKE_WORD
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
