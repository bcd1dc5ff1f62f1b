package api

import (
	"time"

	"github.com/recall-app/recall-api/internal/domain"
)

// DeckResponse represents the response data for a deck
type DeckResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	TotalCards    int        `json:"total_cards"`
	MasteredCount int        `json:"mastered_count"`
	LastStudied   *time.Time `json:"last_studied,omitempty"`
	Status        string     `json:"status"`
	Progress      int        `json:"progress"`
	Icon          string     `json:"icon"`
	ColorClass    string     `json:"color_class"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CardResponse represents the response data for a flashcard
type CardResponse struct {
	ID       string `json:"id"`
	DeckID   string `json:"deck_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Status   string `json:"status"`
	Position int    `json:"position"`
}

// DeckWithCardsResponse bundles a deck with its cards, returned by the
// generation endpoint and the deck detail endpoint.
type DeckWithCardsResponse struct {
	Deck  DeckResponse   `json:"deck"`
	Cards []CardResponse `json:"cards"`
}

// SettingsResponse represents the response data for user settings
type SettingsResponse struct {
	APIKey        string `json:"api_key"`
	DarkMode      bool   `json:"dark_mode"`
	DailyReminder bool   `json:"daily_reminder"`
	AISuggestions bool   `json:"ai_suggestions"`
	Language      string `json:"language"`
}

// deckToResponse converts a domain.Deck to a DeckResponse
func deckToResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:            deck.ID.String(),
		Title:         deck.Title,
		TotalCards:    deck.TotalCards,
		MasteredCount: deck.MasteredCount,
		LastStudied:   deck.LastStudied,
		Status:        string(deck.Status),
		Progress:      deck.Progress,
		Icon:          deck.Icon,
		ColorClass:    deck.ColorClass,
		CreatedAt:     deck.CreatedAt,
	}
}

// cardToResponse converts a domain.Card to a CardResponse
func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:       card.ID.String(),
		DeckID:   card.DeckID.String(),
		Question: card.Question,
		Answer:   card.Answer,
		Status:   string(card.Status),
		Position: card.Position,
	}
}

// cardsToResponse converts a slice of cards, always yielding a non-nil
// slice so the JSON stays an array.
func cardsToResponse(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, cardToResponse(card))
	}
	return out
}

// decksToResponse converts a slice of decks, always yielding a non-nil
// slice so the JSON stays an array.
func decksToResponse(decks []*domain.Deck) []DeckResponse {
	out := make([]DeckResponse, 0, len(decks))
	for _, deck := range decks {
		out = append(out, deckToResponse(deck))
	}
	return out
}

// settingsToResponse converts domain.Settings to a SettingsResponse
func settingsToResponse(settings domain.Settings) SettingsResponse {
	return SettingsResponse{
		APIKey:        settings.APIKey,
		DarkMode:      settings.DarkMode,
		DailyReminder: settings.DailyReminder,
		AISuggestions: settings.AISuggestions,
		Language:      string(settings.Language),
	}
}
