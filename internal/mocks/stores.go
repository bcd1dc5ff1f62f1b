package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/recall-app/recall-api/internal/domain"
)

// MockDeckStore implements store.DeckStore for testing
type MockDeckStore struct {
	CreateWithCardsFn func(ctx context.Context, deck *domain.Deck, cards []*domain.Card) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	ListFn            func(ctx context.Context) ([]*domain.Deck, error)
	UpdateFn          func(ctx context.Context, deck *domain.Deck) error
	DeleteFn          func(ctx context.Context, id uuid.UUID) error

	// Default response values
	Deck  *domain.Deck
	Decks []*domain.Deck
	Err   error

	// Call tracking for verification
	Calls struct {
		mu              sync.Mutex
		CreateWithCards int
		GetByID         int
		List            int
		Update          int
		Delete          int
		CreatedDecks    []*domain.Deck
		CreatedCards    [][]*domain.Card
		UpdatedDecks    []*domain.Deck
		DeletedIDs      []uuid.UUID
	}
}

// CreateWithCards implements the store.DeckStore interface
func (m *MockDeckStore) CreateWithCards(
	ctx context.Context,
	deck *domain.Deck,
	cards []*domain.Card,
) error {
	m.Calls.mu.Lock()
	m.Calls.CreateWithCards++
	m.Calls.CreatedDecks = append(m.Calls.CreatedDecks, deck)
	m.Calls.CreatedCards = append(m.Calls.CreatedCards, cards)
	m.Calls.mu.Unlock()

	if m.CreateWithCardsFn != nil {
		return m.CreateWithCardsFn(ctx, deck, cards)
	}
	return m.Err
}

// GetByID implements the store.DeckStore interface
func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	m.Calls.mu.Lock()
	m.Calls.GetByID++
	m.Calls.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Deck, m.Err
}

// List implements the store.DeckStore interface
func (m *MockDeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	m.Calls.mu.Lock()
	m.Calls.List++
	m.Calls.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Decks, m.Err
}

// Update implements the store.DeckStore interface
func (m *MockDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	m.Calls.mu.Lock()
	m.Calls.Update++
	m.Calls.UpdatedDecks = append(m.Calls.UpdatedDecks, deck)
	m.Calls.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, deck)
	}
	return m.Err
}

// Delete implements the store.DeckStore interface
func (m *MockDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.Calls.mu.Lock()
	m.Calls.Delete++
	m.Calls.DeletedIDs = append(m.Calls.DeletedIDs, id)
	m.Calls.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// MockCardStore implements store.CardStore for testing
type MockCardStore struct {
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	ListByDeckFn    func(ctx context.Context, deckID uuid.UUID, limit int) ([]*domain.Card, error)
	ListHardFn      func(ctx context.Context) ([]*domain.Card, error)
	UpdateStatusFn  func(ctx context.Context, id uuid.UUID, status domain.CardStatus) error
	ResetStatusesFn func(ctx context.Context, deckID uuid.UUID) error

	// Default response values
	Card  *domain.Card
	Cards []*domain.Card
	Err   error

	// Call tracking for verification
	Calls struct {
		mu              sync.Mutex
		GetByID         int
		ListByDeck      int
		ListHard        int
		UpdateStatus    int
		ResetStatuses   int
		UpdatedStatuses []domain.CardStatus
		ResetDeckIDs    []uuid.UUID
	}
}

// GetByID implements the store.CardStore interface
func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	m.Calls.mu.Lock()
	m.Calls.GetByID++
	m.Calls.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Card, m.Err
}

// ListByDeck implements the store.CardStore interface
func (m *MockCardStore) ListByDeck(
	ctx context.Context,
	deckID uuid.UUID,
	limit int,
) ([]*domain.Card, error) {
	m.Calls.mu.Lock()
	m.Calls.ListByDeck++
	m.Calls.mu.Unlock()

	if m.ListByDeckFn != nil {
		return m.ListByDeckFn(ctx, deckID, limit)
	}
	return m.Cards, m.Err
}

// ListHard implements the store.CardStore interface
func (m *MockCardStore) ListHard(ctx context.Context) ([]*domain.Card, error) {
	m.Calls.mu.Lock()
	m.Calls.ListHard++
	m.Calls.mu.Unlock()

	if m.ListHardFn != nil {
		return m.ListHardFn(ctx)
	}
	return m.Cards, m.Err
}

// UpdateStatus implements the store.CardStore interface
func (m *MockCardStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.CardStatus,
) error {
	m.Calls.mu.Lock()
	m.Calls.UpdateStatus++
	m.Calls.UpdatedStatuses = append(m.Calls.UpdatedStatuses, status)
	m.Calls.mu.Unlock()

	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return m.Err
}

// ResetStatuses implements the store.CardStore interface
func (m *MockCardStore) ResetStatuses(ctx context.Context, deckID uuid.UUID) error {
	m.Calls.mu.Lock()
	m.Calls.ResetStatuses++
	m.Calls.ResetDeckIDs = append(m.Calls.ResetDeckIDs, deckID)
	m.Calls.mu.Unlock()

	if m.ResetStatusesFn != nil {
		return m.ResetStatusesFn(ctx, deckID)
	}
	return m.Err
}

// MockSettingsStore implements store.SettingsStore for testing
type MockSettingsStore struct {
	GetFn  func(ctx context.Context) (domain.Settings, error)
	SaveFn func(ctx context.Context, settings domain.Settings) error

	// Default response values
	Stored domain.Settings
	Err    error

	// Call tracking for verification
	Calls struct {
		mu    sync.Mutex
		Get   int
		Save  int
		Saved []domain.Settings
	}
}

// Get implements the store.SettingsStore interface
func (m *MockSettingsStore) Get(ctx context.Context) (domain.Settings, error) {
	m.Calls.mu.Lock()
	m.Calls.Get++
	m.Calls.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return m.Stored, m.Err
}

// Save implements the store.SettingsStore interface
func (m *MockSettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	m.Calls.mu.Lock()
	m.Calls.Save++
	m.Calls.Saved = append(m.Calls.Saved, settings)
	m.Calls.mu.Unlock()

	if m.SaveFn != nil {
		return m.SaveFn(ctx, settings)
	}
	return m.Err
}
