package service

import (
	"context"

	"lightbulb/internal/wakeword"
)

// WakeWordService reports on the detection pipeline. A nil listener means
// the wake word feature is disabled.
type WakeWordService struct {
	listener *wakeword.Listener
}

func NewWakeWordService(listener *wakeword.Listener) *WakeWordService {
	return &WakeWordService{listener: listener}
}

func (s *WakeWordService) Status(ctx context.Context) WakeWordStatus {
	if s.listener == nil {
		return WakeWordStatus{}
	}
	cfg := s.listener.Config()
	return WakeWordStatus{
		Running:         s.listener.IsRunning(),
		ModelPath:       cfg.ModelPath,
		Threshold:       cfg.Threshold,
		CooldownSeconds: cfg.Cooldown.Seconds(),
	}
}
