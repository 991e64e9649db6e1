package models

import "time"

// StripSettings is the single persisted strip record: enough to restore the
// last look of the strip after a restart. Live per-pixel state stays in
// memory and is owned by the LED controller.
type StripSettings struct {
	ID          int       `json:"id"`
	Brightness  int       `json:"brightness"`
	ActiveScene string    `json:"active_scene,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
