package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/generation"
	"github.com/recall-app/recall-api/internal/platform/logger"
	"github.com/recall-app/recall-api/internal/store"
)

// Generator runs the flashcard generation pipeline for one request.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// DeckService defines the deck and card use cases exposed to the API layer.
type DeckService interface {
	// GenerateDeck runs the generation pipeline and persists the outcome
	// as a new deck with its cards. Generation errors pass through
	// unwrapped so callers can branch on the generation error kinds.
	GenerateDeck(ctx context.Context, req generation.Request) (*domain.Deck, []*domain.Card, error)

	// ListDecks returns all decks, newest first.
	ListDecks(ctx context.Context) ([]*domain.Deck, error)

	// GetDeck retrieves a deck by its ID.
	GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)

	// DeleteDeck removes a deck and all its cards.
	DeleteDeck(ctx context.Context, deckID uuid.UUID) error

	// ListCards returns a deck's cards in study order. A positive limit
	// caps the result.
	ListCards(ctx context.Context, deckID uuid.UUID, limit int) ([]*domain.Card, error)

	// ListHardCards returns every card marked hard or due for review,
	// across all decks.
	ListHardCards(ctx context.Context) ([]*domain.Card, error)

	// UpdateCardStatus changes a card's study status and refreshes the
	// owning deck's progress.
	UpdateCardStatus(ctx context.Context, cardID uuid.UUID, status domain.CardStatus) (*domain.Deck, error)

	// ResetDeck returns every card in the deck to the new status and
	// clears the deck's progress.
	ResetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)
}

// deckServiceImpl implements the DeckService interface
type deckServiceImpl struct {
	generator Generator
	deckStore store.DeckStore
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewDeckService creates a new DeckService.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(
	generator Generator,
	deckStore store.DeckStore,
	cardStore store.CardStore,
	logger *slog.Logger,
) (DeckService, error) {
	if generator == nil {
		return nil, NewDeckServiceError("new", "generator cannot be nil", nil)
	}
	if deckStore == nil {
		return nil, NewDeckServiceError("new", "deckStore cannot be nil", nil)
	}
	if cardStore == nil {
		return nil, NewDeckServiceError("new", "cardStore cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		generator: generator,
		deckStore: deckStore,
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "deck_service")),
	}, nil
}

// GenerateDeck implements DeckService.GenerateDeck
func (s *deckServiceImpl) GenerateDeck(
	ctx context.Context,
	req generation.Request,
) (*domain.Deck, []*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		// Generation errors keep their kind so the handler can map them
		// to the right status code.
		return nil, nil, err
	}

	deck, err := domain.NewDeck(result.Title, len(result.Cards))
	if err != nil {
		log.Error("generated deck failed validation",
			slog.String("error", err.Error()),
			slog.String("title", result.Title))
		return nil, nil, NewDeckServiceError("generate_deck", "invalid deck from generation result", err)
	}

	cards := make([]*domain.Card, 0, len(result.Cards))
	for i, fc := range result.Cards {
		card, err := domain.NewCard(deck.ID, fc.Question, fc.Answer, i)
		if err != nil {
			log.Error("generated card failed validation",
				slog.String("error", err.Error()),
				slog.Int("position", i))
			return nil, nil, NewDeckServiceError("generate_deck", "invalid card from generation result", err)
		}
		cards = append(cards, card)
	}

	if err := s.deckStore.CreateWithCards(ctx, deck, cards); err != nil {
		log.Error("failed to persist generated deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return nil, nil, NewDeckServiceError("generate_deck", "failed to save deck", err)
	}

	log.Info("created deck from generation result",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("card_count", len(cards)))
	return deck, cards, nil
}

// ListDecks implements DeckService.ListDecks
func (s *deckServiceImpl) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	decks, err := s.deckStore.List(ctx)
	if err != nil {
		return nil, NewDeckServiceError("list_decks", "failed to list decks", err)
	}
	return decks, nil
}

// GetDeck implements DeckService.GetDeck
func (s *deckServiceImpl) GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return nil, NewDeckServiceError("get_deck", "failed to retrieve deck", err)
	}
	return deck, nil
}

// DeleteDeck implements DeckService.DeleteDeck
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.deckStore.Delete(ctx, deckID); err != nil {
		return NewDeckServiceError("delete_deck", "failed to delete deck", err)
	}

	log.Info("deleted deck", slog.String("deck_id", deckID.String()))
	return nil
}

// ListCards implements DeckService.ListCards
func (s *deckServiceImpl) ListCards(
	ctx context.Context,
	deckID uuid.UUID,
	limit int,
) ([]*domain.Card, error) {
	// Verify the deck exists so a bad ID yields not-found instead of an
	// empty list.
	if _, err := s.deckStore.GetByID(ctx, deckID); err != nil {
		return nil, NewDeckServiceError("list_cards", "failed to retrieve deck", err)
	}

	cards, err := s.cardStore.ListByDeck(ctx, deckID, limit)
	if err != nil {
		return nil, NewDeckServiceError("list_cards", "failed to list cards", err)
	}
	return cards, nil
}

// ListHardCards implements DeckService.ListHardCards
func (s *deckServiceImpl) ListHardCards(ctx context.Context) ([]*domain.Card, error) {
	cards, err := s.cardStore.ListHard(ctx)
	if err != nil {
		return nil, NewDeckServiceError("list_hard_cards", "failed to list hard cards", err)
	}
	return cards, nil
}

// UpdateCardStatus implements DeckService.UpdateCardStatus
func (s *deckServiceImpl) UpdateCardStatus(
	ctx context.Context,
	cardID uuid.UUID,
	status domain.CardStatus,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		return nil, NewDeckServiceError("update_card_status", "failed to retrieve card", err)
	}

	if err := s.cardStore.UpdateStatus(ctx, cardID, status); err != nil {
		return nil, NewDeckServiceError("update_card_status", "failed to update card status", err)
	}

	deck, err := s.refreshDeckProgress(ctx, card.DeckID)
	if err != nil {
		return nil, err
	}

	log.Debug("updated card status",
		slog.String("card_id", cardID.String()),
		slog.String("deck_id", card.DeckID.String()),
		slog.String("status", string(status)))
	return deck, nil
}

// ResetDeck implements DeckService.ResetDeck
func (s *deckServiceImpl) ResetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return nil, NewDeckServiceError("reset_deck", "failed to retrieve deck", err)
	}

	if err := s.cardStore.ResetStatuses(ctx, deckID); err != nil {
		return nil, NewDeckServiceError("reset_deck", "failed to reset card statuses", err)
	}

	deck.MasteredCount = 0
	deck.Progress = 0
	deck.Status = domain.DeckStatusNew
	deck.LastStudied = nil
	if err := s.deckStore.Update(ctx, deck); err != nil {
		return nil, NewDeckServiceError("reset_deck", "failed to update deck", err)
	}

	log.Info("reset deck", slog.String("deck_id", deckID.String()))
	return deck, nil
}

// refreshDeckProgress recomputes a deck's mastered count from its cards
// and persists the derived progress fields.
func (s *deckServiceImpl) refreshDeckProgress(
	ctx context.Context,
	deckID uuid.UUID,
) (*domain.Deck, error) {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return nil, NewDeckServiceError("refresh_progress", "failed to retrieve deck", err)
	}

	cards, err := s.cardStore.ListByDeck(ctx, deckID, 0)
	if err != nil {
		return nil, NewDeckServiceError("refresh_progress", "failed to list cards", err)
	}

	mastered := 0
	for _, card := range cards {
		if card.Status == domain.CardStatusMastered {
			mastered++
		}
	}

	if err := deck.RecordProgress(mastered); err != nil {
		return nil, NewDeckServiceError("refresh_progress", "invalid mastered count", err)
	}

	if err := s.deckStore.Update(ctx, deck); err != nil {
		return nil, NewDeckServiceError("refresh_progress", "failed to update deck", err)
	}

	return deck, nil
}
