package main

import (
	"context"
	"strings"

	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/store"
)

// settingsSourceAdapter lets the settings store satisfy the generation
// pipeline's settings contract. fallbackKey is the deployment-level
// API key; a key stored in settings always wins.
type settingsSourceAdapter struct {
	store       store.SettingsStore
	fallbackKey string
}

func (a settingsSourceAdapter) Settings(ctx context.Context) (domain.Settings, error) {
	settings, err := a.store.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	if strings.TrimSpace(settings.APIKey) == "" {
		settings.APIKey = a.fallbackKey
	}
	return settings, nil
}
