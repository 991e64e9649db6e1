package service

import (
	"context"

	"lightbulb/internal/led"
	"lightbulb/internal/models"
	"lightbulb/internal/repository"
	"lightbulb/internal/wakeword"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Strip exposes control of the LED strip: pixels, scenes and brightness.
type Strip interface {
	SetPixel(ctx context.Context, index int, c led.Color) error
	SetAll(ctx context.Context, c led.Color) error
	GetPixel(ctx context.Context, index int) (led.Color, error)
	ApplyScene(ctx context.Context, name string) error
	Clear(ctx context.Context) error
	SetBrightness(ctx context.Context, level int) error
	GetState(ctx context.Context) led.StripState
	Scenes(ctx context.Context) []string
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.StripEvent, error)
}

// WakeWord exposes the detection pipeline status.
type WakeWord interface {
	Status(ctx context.Context) WakeWordStatus
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Strip
	EventLog
	WakeWord
	Authorization
}

// NewService wires the repository layer, the strip controller and the wake
// word listener into concrete services.
func NewService(repos *repository.Repository, strip *led.Controller, listener *wakeword.Listener) *Service {
	return &Service{
		Strip:         NewStripService(strip, repos.EventRepo, repos.SettingsRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		WakeWord:      NewWakeWordService(listener),
		Authorization: NewAuthService(repos.Auth),
	}
}
