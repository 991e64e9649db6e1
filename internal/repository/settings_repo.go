package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lightbulb/internal/models"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

var _ SettingsRepo = (*SettingsSQLite)(nil)

const (
	stripSettingsRowID = 1

	insertOrUpdateSettingsSQL = `
		INSERT INTO strip_settings (id, brightness, active_scene, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			brightness=excluded.brightness,
			active_scene=excluded.active_scene,
			updated_at=excluded.updated_at
	`

	selectSettingsSQL = `
		SELECT id, brightness, active_scene, updated_at
		FROM strip_settings WHERE id=?
	`
)

// Save updates or inserts the strip_settings row (id always 1).
func (r *SettingsSQLite) Save(ctx context.Context, s models.StripSettings) error {
	tsUTC := s.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	var scene sql.NullString
	if s.ActiveScene != "" {
		scene = sql.NullString{String: s.ActiveScene, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateSettingsSQL,
		stripSettingsRowID,
		s.Brightness,
		scene,
		tsUTC,
	)
	return err
}

// Load fetches the single strip_settings row (id=1). Returns a zero value
// when nothing has been persisted yet.
func (r *SettingsSQLite) Load(ctx context.Context) (models.StripSettings, error) {
	row := r.db.QueryRowContext(ctx, selectSettingsSQL, stripSettingsRowID)

	var (
		s     models.StripSettings
		scene sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Brightness, &scene, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StripSettings{}, nil // no settings yet
		}
		return models.StripSettings{}, err
	}
	if scene.Valid {
		s.ActiveScene = scene.String
	}
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
