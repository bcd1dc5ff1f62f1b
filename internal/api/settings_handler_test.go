package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/recall-app/recall-api/internal/api"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettings(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored settings", func(t *testing.T) {
		t.Parallel()

		settingsStore := &mocks.MockSettingsStore{
			Stored: domain.Settings{
				APIKey:        "AIzaSyTestKey1234567890123456789012345",
				DarkMode:      true,
				AISuggestions: true,
				Language:      domain.LanguageIndonesian,
			},
		}
		router := newTestRouter(&mocks.MockDeckService{}, settingsStore)

		rr := doRequest(router, http.MethodGet, "/api/settings", "")

		require.Equal(t, http.StatusOK, rr.Code)

		var resp api.SettingsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "AIzaSyTestKey1234567890123456789012345", resp.APIKey)
		assert.True(t, resp.DarkMode)
		assert.False(t, resp.DailyReminder)
		assert.Equal(t, "id", resp.Language)
	})

	t.Run("returns defaults for a fresh install", func(t *testing.T) {
		t.Parallel()

		settingsStore := &mocks.MockSettingsStore{Stored: domain.DefaultSettings()}
		router := newTestRouter(&mocks.MockDeckService{}, settingsStore)

		rr := doRequest(router, http.MethodGet, "/api/settings", "")

		require.Equal(t, http.StatusOK, rr.Code)

		var resp api.SettingsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Empty(t, resp.APIKey)
		assert.Equal(t, "en", resp.Language)
	})

	t.Run("surfaces store failures without leaking details", func(t *testing.T) {
		t.Parallel()

		settingsStore := &mocks.MockSettingsStore{Err: assert.AnError}
		router := newTestRouter(&mocks.MockDeckService{}, settingsStore)

		rr := doRequest(router, http.MethodGet, "/api/settings", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), assert.AnError.Error())
	})
}

func TestUpdateSettings(t *testing.T) {
	t.Parallel()

	t.Run("persists and echoes the new settings", func(t *testing.T) {
		t.Parallel()

		settingsStore := &mocks.MockSettingsStore{}
		router := newTestRouter(&mocks.MockDeckService{}, settingsStore)

		rr := doRequest(router, http.MethodPut, "/api/settings",
			`{"api_key":"AIzaSyTestKey1234567890123456789012345","dark_mode":true,"language":"en"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, 1, settingsStore.Calls.Save)

		saved := settingsStore.Calls.Saved[0]
		assert.Equal(t, "AIzaSyTestKey1234567890123456789012345", saved.APIKey)
		assert.True(t, saved.DarkMode)
		assert.Equal(t, domain.LanguageEnglish, saved.Language)

		var resp api.SettingsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.DarkMode)
	})

	t.Run("clearing the api key is allowed", func(t *testing.T) {
		t.Parallel()

		settingsStore := &mocks.MockSettingsStore{}
		router := newTestRouter(&mocks.MockDeckService{}, settingsStore)

		rr := doRequest(router, http.MethodPut, "/api/settings",
			`{"api_key":"","language":"en"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, settingsStore.Calls.Saved[0].APIKey)
	})

	t.Run("rejects an unsupported language", func(t *testing.T) {
		t.Parallel()

		settingsStore := &mocks.MockSettingsStore{}
		router := newTestRouter(&mocks.MockDeckService{}, settingsStore)

		rr := doRequest(router, http.MethodPut, "/api/settings",
			`{"language":"de"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 0, settingsStore.Calls.Save)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		t.Parallel()

		settingsStore := &mocks.MockSettingsStore{}
		router := newTestRouter(&mocks.MockDeckService{}, settingsStore)

		rr := doRequest(router, http.MethodPut, "/api/settings", `{"language":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 0, settingsStore.Calls.Save)
	})
}
