package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DeckStatus represents the aggregate study state of a deck.
type DeckStatus string

// Possible deck status values
const (
	DeckStatusNew        DeckStatus = "New"
	DeckStatusInProgress DeckStatus = "In Progress"
	DeckStatusCompleted  DeckStatus = "Completed"
)

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckTitleEmpty is returned when a deck title is empty.
	ErrDeckTitleEmpty = errors.New("deck title cannot be empty")

	// ErrDeckCardCountInvalid is returned when a deck's total card count is negative.
	ErrDeckCardCountInvalid = errors.New("deck card count cannot be negative")

	// ErrInvalidDeckStatus is returned when a deck status is not valid.
	ErrInvalidDeckStatus = errors.New("invalid deck status")

	// ErrMasteredCountInvalid is returned when the mastered count is negative
	// or exceeds the deck's total card count.
	ErrMasteredCountInvalid = errors.New("mastered count out of range")
)

// Deck represents a named, ordered collection of flashcards plus
// aggregate progress metadata. Progress is a 0-100 percentage of
// mastered cards; Icon and ColorClass are presentation hints stored
// alongside the deck so clients render it consistently.
type Deck struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	TotalCards    int        `json:"total_cards"`
	MasteredCount int        `json:"mastered_count"`
	LastStudied   *time.Time `json:"last_studied,omitempty"`
	Status        DeckStatus `json:"status"`
	Progress      int        `json:"progress"`
	Icon          string     `json:"icon"`
	ColorClass    string     `json:"color_class"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewDeck creates a new Deck with the given title and total card count.
// It generates a new UUID for the deck ID, sets the status to New, and
// applies the default presentation hints.
// Returns an error if validation fails.
func NewDeck(title string, totalCards int) (*Deck, error) {
	deck := &Deck{
		ID:         uuid.New(),
		Title:      strings.TrimSpace(title),
		TotalCards: totalCards,
		Status:     DeckStatusNew,
		Icon:       "auto-awesome",
		ColorClass: "purple",
		CreatedAt:  time.Now().UTC(),
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
// Returns an error if any field fails validation.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.Title == "" {
		return ErrDeckTitleEmpty
	}

	if d.TotalCards < 0 {
		return ErrDeckCardCountInvalid
	}

	if d.MasteredCount < 0 || d.MasteredCount > d.TotalCards {
		return ErrMasteredCountInvalid
	}

	if !isValidDeckStatus(d.Status) {
		return ErrInvalidDeckStatus
	}

	return nil
}

// RecordProgress updates the deck's mastered count, recomputes the
// progress percentage and status, and stamps the last-studied time.
// A deck reaches Completed only when every card is mastered.
// Returns an error if the mastered count is out of range.
func (d *Deck) RecordProgress(masteredCount int) error {
	if masteredCount < 0 || masteredCount > d.TotalCards {
		return ErrMasteredCountInvalid
	}

	d.MasteredCount = masteredCount
	if d.TotalCards > 0 {
		d.Progress = masteredCount * 100 / d.TotalCards
	}

	if d.Progress == 100 {
		d.Status = DeckStatusCompleted
	} else {
		d.Status = DeckStatusInProgress
	}

	now := time.Now().UTC()
	d.LastStudied = &now
	return nil
}

// isValidDeckStatus checks if the given status is a valid DeckStatus.
func isValidDeckStatus(status DeckStatus) bool {
	switch status {
	case DeckStatusNew, DeckStatusInProgress, DeckStatusCompleted:
		return true
	default:
		return false
	}
}
