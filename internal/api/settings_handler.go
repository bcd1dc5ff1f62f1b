package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/recall-app/recall-api/internal/api/shared"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/store"
)

// UpdateSettingsRequest represents the request body for replacing the
// user settings.
type UpdateSettingsRequest struct {
	APIKey        string `json:"api_key"`
	DarkMode      bool   `json:"dark_mode"`
	DailyReminder bool   `json:"daily_reminder"`
	AISuggestions bool   `json:"ai_suggestions"`
	Language      string `json:"language" validate:"required,oneof=en id"`
}

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsStore store.SettingsStore
	validator     *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsStore store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{
		settingsStore: settingsStore,
		validator:     validator.New(),
	}
}

// GetSettings handles GET /api/settings requests
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsStore.Get(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load settings", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// UpdateSettings handles PUT /api/settings requests
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, errInvalidRequestFormat.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	settings := domain.Settings{
		APIKey:        req.APIKey,
		DarkMode:      req.DarkMode,
		DailyReminder: req.DailyReminder,
		AISuggestions: req.AISuggestions,
		Language:      domain.Language(req.Language),
	}

	if err := h.settingsStore.Save(r.Context(), settings); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}
