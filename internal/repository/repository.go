package repository

import (
	"context"
	"database/sql"
	"time"

	"lightbulb/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// SettingsRepo persists the single strip settings row (brightness, scene)
// so the strip can restore its last look at boot.
type SettingsRepo interface {
	Save(ctx context.Context, s models.StripSettings) error
	Load(ctx context.Context) (models.StripSettings, error)
}

// EventRepo is the append-only strip event log with filtered access.
type EventRepo interface {
	Append(ctx context.Context, e models.StripEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.StripEvent, error)
}

type Repository struct {
	SettingsRepo SettingsRepo
	EventRepo    EventRepo
	Auth         Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SettingsRepo: NewSettingsSQLite(db),
		EventRepo:    NewEventSQLite(db),
		Auth:         NewUserRepository(db),
	}
}
