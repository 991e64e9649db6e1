package service

import (
	"context"
	"time"

	"lightbulb/internal/led"
	"lightbulb/internal/models"
	"lightbulb/internal/repository"

	"github.com/google/uuid"
)

// StripController is the slice of led.Controller the service depends on.
type StripController interface {
	SetPixel(index int, c led.Color) error
	SetAll(c led.Color) error
	GetPixel(index int) (led.Color, error)
	ApplyScene(name string) error
	Clear() error
	SetBrightness(level int) error
	GetState() led.StripState
	SceneNames() []string
}

type StripService struct {
	strip        StripController
	eventRepo    repository.EventRepo
	settingsRepo repository.SettingsRepo
}

func NewStripService(strip StripController, eventRepo repository.EventRepo, settingsRepo repository.SettingsRepo) *StripService {
	return &StripService{strip: strip, eventRepo: eventRepo, settingsRepo: settingsRepo}
}

// SetPixel colors a single LED and logs a PIXEL event.
func (s *StripService) SetPixel(ctx context.Context, index int, c led.Color) error {
	if err := s.strip.SetPixel(index, c); err != nil {
		return err
	}
	return s.eventRepo.Append(ctx, models.StripEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventPixel,
		Description: "Pixel set",
		Metadata: map[string]any{
			"index": index,
			"color": c.Hex(),
		},
	})
}

// SetAll colors the whole strip and logs a PIXEL event.
func (s *StripService) SetAll(ctx context.Context, c led.Color) error {
	if err := s.strip.SetAll(c); err != nil {
		return err
	}
	return s.eventRepo.Append(ctx, models.StripEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventPixel,
		Description: "All pixels set",
		Metadata: map[string]any{
			"all":   true,
			"color": c.Hex(),
		},
	})
}

func (s *StripService) GetPixel(ctx context.Context, index int) (led.Color, error) {
	return s.strip.GetPixel(index)
}

// ApplyScene activates a scene, persists it as the active scene and logs a
// SCENE event.
func (s *StripService) ApplyScene(ctx context.Context, name string) error {
	if err := s.strip.ApplyScene(name); err != nil {
		return err
	}
	if err := s.persistSettings(ctx); err != nil {
		return err
	}
	return s.eventRepo.Append(ctx, models.StripEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventScene,
		Description: "Scene applied: " + name,
		Metadata:    map[string]any{"scene": name},
	})
}

// Clear turns every LED off and logs a CLEAR event.
func (s *StripService) Clear(ctx context.Context) error {
	if err := s.strip.Clear(); err != nil {
		return err
	}
	if err := s.persistSettings(ctx); err != nil {
		return err
	}
	return s.eventRepo.Append(ctx, models.StripEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventClear,
		Description: "Strip cleared",
	})
}

// SetBrightness adjusts the global brightness, persists it and logs a
// BRIGHTNESS event.
func (s *StripService) SetBrightness(ctx context.Context, level int) error {
	if err := s.strip.SetBrightness(level); err != nil {
		return err
	}
	if err := s.persistSettings(ctx); err != nil {
		return err
	}
	return s.eventRepo.Append(ctx, models.StripEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventBrightness,
		Description: "Brightness changed",
		Metadata:    map[string]any{"level": level},
	})
}

func (s *StripService) GetState(ctx context.Context) led.StripState {
	return s.strip.GetState()
}

func (s *StripService) Scenes(ctx context.Context) []string {
	return s.strip.SceneNames()
}

// persistSettings snapshots the brightness and active scene so the strip can
// restore its last look at boot.
func (s *StripService) persistSettings(ctx context.Context) error {
	st := s.strip.GetState()
	return s.settingsRepo.Save(ctx, models.StripSettings{
		ID:          1,
		Brightness:  st.Brightness,
		ActiveScene: st.ActiveScene,
		UpdatedAt:   time.Now().UTC(),
	})
}
