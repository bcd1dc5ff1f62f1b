package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/generation"
)

// MockDeckService implements service.DeckService for testing
type MockDeckService struct {
	GenerateDeckFn     func(ctx context.Context, req generation.Request) (*domain.Deck, []*domain.Card, error)
	ListDecksFn        func(ctx context.Context) ([]*domain.Deck, error)
	GetDeckFn          func(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)
	DeleteDeckFn       func(ctx context.Context, deckID uuid.UUID) error
	ListCardsFn        func(ctx context.Context, deckID uuid.UUID, limit int) ([]*domain.Card, error)
	ListHardCardsFn    func(ctx context.Context) ([]*domain.Card, error)
	UpdateCardStatusFn func(ctx context.Context, cardID uuid.UUID, status domain.CardStatus) (*domain.Deck, error)
	ResetDeckFn        func(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)

	// Default response values
	Deck  *domain.Deck
	Decks []*domain.Deck
	Cards []*domain.Card
	Err   error

	// Call tracking for verification
	Calls struct {
		mu               sync.Mutex
		GenerateDeck     int
		GenerateRequests []generation.Request
	}
}

// GenerateDeck implements the service.DeckService interface
func (m *MockDeckService) GenerateDeck(
	ctx context.Context,
	req generation.Request,
) (*domain.Deck, []*domain.Card, error) {
	m.Calls.mu.Lock()
	m.Calls.GenerateDeck++
	m.Calls.GenerateRequests = append(m.Calls.GenerateRequests, req)
	m.Calls.mu.Unlock()

	if m.GenerateDeckFn != nil {
		return m.GenerateDeckFn(ctx, req)
	}
	return m.Deck, m.Cards, m.Err
}

// ListDecks implements the service.DeckService interface
func (m *MockDeckService) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	if m.ListDecksFn != nil {
		return m.ListDecksFn(ctx)
	}
	return m.Decks, m.Err
}

// GetDeck implements the service.DeckService interface
func (m *MockDeckService) GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	if m.GetDeckFn != nil {
		return m.GetDeckFn(ctx, deckID)
	}
	return m.Deck, m.Err
}

// DeleteDeck implements the service.DeckService interface
func (m *MockDeckService) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	if m.DeleteDeckFn != nil {
		return m.DeleteDeckFn(ctx, deckID)
	}
	return m.Err
}

// ListCards implements the service.DeckService interface
func (m *MockDeckService) ListCards(
	ctx context.Context,
	deckID uuid.UUID,
	limit int,
) ([]*domain.Card, error) {
	if m.ListCardsFn != nil {
		return m.ListCardsFn(ctx, deckID, limit)
	}
	return m.Cards, m.Err
}

// ListHardCards implements the service.DeckService interface
func (m *MockDeckService) ListHardCards(ctx context.Context) ([]*domain.Card, error) {
	if m.ListHardCardsFn != nil {
		return m.ListHardCardsFn(ctx)
	}
	return m.Cards, m.Err
}

// UpdateCardStatus implements the service.DeckService interface
func (m *MockDeckService) UpdateCardStatus(
	ctx context.Context,
	cardID uuid.UUID,
	status domain.CardStatus,
) (*domain.Deck, error) {
	if m.UpdateCardStatusFn != nil {
		return m.UpdateCardStatusFn(ctx, cardID, status)
	}
	return m.Deck, m.Err
}

// ResetDeck implements the service.DeckService interface
func (m *MockDeckService) ResetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	if m.ResetDeckFn != nil {
		return m.ResetDeckFn(ctx, deckID)
	}
	return m.Deck, m.Err
}
