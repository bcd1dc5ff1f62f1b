package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// CardStatus represents the study state of a flashcard.
type CardStatus string

// Possible card status values. Cards start as "new"; study sessions move
// them to "mastered" or "hard", and "review" marks cards queued for a
// missed-card round.
const (
	CardStatusNew      CardStatus = "new"
	CardStatusMastered CardStatus = "mastered"
	CardStatusHard     CardStatus = "hard"
	CardStatusReview   CardStatus = "review"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardQuestionEmpty is returned when a card's question is empty.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card's answer is empty.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")

	// ErrInvalidCardStatus is returned when a card status is not valid.
	ErrInvalidCardStatus = errors.New("invalid card status")
)

// Card represents a question/answer flashcard belonging to a deck.
// Position preserves the order in which the generator produced the card.
type Card struct {
	ID       uuid.UUID  `json:"id"`
	DeckID   uuid.UUID  `json:"deck_id"`
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
	Status   CardStatus `json:"status"`
	Position int        `json:"position"`
}

// NewCard creates a new Card with the given deck ID, content, and position.
// It generates a new UUID for the card ID and sets the status to new.
// Returns an error if validation fails.
func NewCard(deckID uuid.UUID, question, answer string, position int) (*Card, error) {
	card := &Card{
		ID:       uuid.New(),
		DeckID:   deckID,
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
		Status:   CardStatusNew,
		Position: position,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if c.Question == "" {
		return ErrCardQuestionEmpty
	}

	if c.Answer == "" {
		return ErrCardAnswerEmpty
	}

	if !isValidCardStatus(c.Status) {
		return ErrInvalidCardStatus
	}

	return nil
}

// UpdateStatus updates the card's study status.
// Returns an error if the new status is invalid.
func (c *Card) UpdateStatus(status CardStatus) error {
	if !isValidCardStatus(status) {
		return ErrInvalidCardStatus
	}

	c.Status = status
	return nil
}

// isValidCardStatus checks if the given status is a valid CardStatus.
func isValidCardStatus(status CardStatus) bool {
	switch status {
	case CardStatusNew, CardStatusMastered, CardStatusHard, CardStatusReview:
		return true
	default:
		return false
	}
}
