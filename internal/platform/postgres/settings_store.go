package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/store"
)

// settingsRowID is the fixed key of the singleton settings row.
const settingsRowID = 1

// SettingsStore implements the store.SettingsStore interface using a
// PostgreSQL database as the storage backend.
type SettingsStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewSettingsStore creates a new PostgreSQL implementation of the
// SettingsStore interface. If logger is nil, the default logger is used.
func NewSettingsStore(pool *pgxpool.Pool, logger *slog.Logger) *SettingsStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SettingsStore{
		pool:   pool,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure SettingsStore implements store.SettingsStore interface
var _ store.SettingsStore = (*SettingsStore)(nil)

// Get implements store.SettingsStore.Get. A missing row yields the
// default settings rather than an error.
func (s *SettingsStore) Get(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings
	err := s.pool.QueryRow(ctx, `
		SELECT api_key, dark_mode, daily_reminder, ai_suggestions, language
		FROM settings WHERE id = $1`, settingsRowID).
		Scan(&settings.APIKey, &settings.DarkMode, &settings.DailyReminder,
			&settings.AISuggestions, &settings.Language)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("querying settings: %w", err)
	}

	return settings, nil
}

// Save implements store.SettingsStore.Save.
func (s *SettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (id, api_key, dark_mode, daily_reminder, ai_suggestions, language)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET api_key = EXCLUDED.api_key,
		    dark_mode = EXCLUDED.dark_mode,
		    daily_reminder = EXCLUDED.daily_reminder,
		    ai_suggestions = EXCLUDED.ai_suggestions,
		    language = EXCLUDED.language`,
		settingsRowID, settings.APIKey, settings.DarkMode, settings.DailyReminder,
		settings.AISuggestions, settings.Language,
	)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	s.logger.DebugContext(ctx, "saved settings",
		"api_key_present", settings.APIKey != "",
		"ai_suggestions", settings.AISuggestions,
		"language", settings.Language)
	return nil
}
