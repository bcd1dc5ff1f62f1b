// Package store defines the persistence interfaces consumed by the
// service layer, keeping the application core independent of the
// database driver.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/recall-app/recall-api/internal/domain"
)

// Common store errors
var (
	// ErrDeckNotFound is returned when a deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrCardNotFound is returned when a card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidEntity is returned when an entity fails validation
	// before a write.
	ErrInvalidEntity = errors.New("invalid entity")
)

// DeckStore defines the interface for deck persistence.
type DeckStore interface {
	// CreateWithCards saves a deck and its cards atomically, preserving
	// card order. Either everything is stored or nothing is.
	CreateWithCards(ctx context.Context, deck *domain.Deck, cards []*domain.Card) error

	// GetByID retrieves a deck by its ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// List returns all decks, newest first.
	List(ctx context.Context) ([]*domain.Deck, error)

	// Update persists the deck's mutable progress fields.
	// Returns ErrDeckNotFound if the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes a deck; its cards are removed by the schema's
	// cascade constraint.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CardStore defines the interface for card persistence.
type CardStore interface {
	// GetByID retrieves a card by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByDeck returns a deck's cards in position order. A limit of
	// zero or less returns all cards.
	ListByDeck(ctx context.Context, deckID uuid.UUID, limit int) ([]*domain.Card, error)

	// ListHard returns every card marked hard or review, across decks.
	ListHard(ctx context.Context) ([]*domain.Card, error)

	// UpdateStatus sets a card's study status.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CardStatus) error

	// ResetStatuses returns all of a deck's cards to the new status.
	ResetStatuses(ctx context.Context, deckID uuid.UUID) error
}

// SettingsStore defines the interface for the singleton settings row.
type SettingsStore interface {
	// Get returns the stored settings, or the defaults when nothing has
	// been saved yet.
	Get(ctx context.Context) (domain.Settings, error)

	// Save replaces the stored settings.
	Save(ctx context.Context, settings domain.Settings) error
}
