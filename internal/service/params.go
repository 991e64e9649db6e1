package service

import "time"

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "START", "STOP", "SCENE", "PIXEL", "BRIGHTNESS", "CLEAR", "WAKE_WORD"
}

// WakeWordStatus is a read-only snapshot of the detection pipeline.
type WakeWordStatus struct {
	Running         bool    `json:"running"`
	ModelPath       string  `json:"model_path,omitempty"`
	Threshold       float64 `json:"threshold"`
	CooldownSeconds float64 `json:"cooldown_seconds"`
}
