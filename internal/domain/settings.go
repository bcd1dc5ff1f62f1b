package domain

import "errors"

// Language selects the language used for generation instructions and
// user-facing strings. Only English and Indonesian are supported.
type Language string

// Supported languages
const (
	LanguageEnglish    Language = "en"
	LanguageIndonesian Language = "id"
)

// ErrInvalidLanguage is returned when a language code is not supported.
var ErrInvalidLanguage = errors.New("invalid language")

// Valid reports whether the language is a supported code.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageIndonesian
}

// Settings holds the user's application preferences. A single settings
// row exists per installation; the API key and the AI-suggestions flag
// are read by the generation pipeline on every request.
type Settings struct {
	APIKey        string   `json:"api_key"`
	DarkMode      bool     `json:"dark_mode"`
	DailyReminder bool     `json:"daily_reminder"`
	AISuggestions bool     `json:"ai_suggestions"`
	Language      Language `json:"language"`
}

// DefaultSettings returns the settings applied on first run.
func DefaultSettings() Settings {
	return Settings{
		DarkMode:      true,
		DailyReminder: true,
		AISuggestions: false,
		Language:      LanguageEnglish,
	}
}

// Validate checks if the Settings have valid data.
func (s Settings) Validate() error {
	if !s.Language.Valid() {
		return ErrInvalidLanguage
	}
	return nil
}
