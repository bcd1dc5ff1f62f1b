package mocks

import (
	"context"
	"sync"

	"github.com/recall-app/recall-api/internal/domain"
)

// MockSettingsSource implements generation.SettingsSource for testing
type MockSettingsSource struct {
	// SettingsFn allows test cases to mock the Settings behavior
	SettingsFn func(ctx context.Context) (domain.Settings, error)

	// Default response values
	Stored domain.Settings
	Err    error

	// Call tracking for verification
	SettingsCalls struct {
		mu    sync.Mutex
		Count int
	}
}

// Settings implements the generation.SettingsSource interface
func (m *MockSettingsSource) Settings(ctx context.Context) (domain.Settings, error) {
	m.SettingsCalls.mu.Lock()
	m.SettingsCalls.Count++
	m.SettingsCalls.mu.Unlock()

	if m.SettingsFn != nil {
		return m.SettingsFn(ctx)
	}

	return m.Stored, m.Err
}
