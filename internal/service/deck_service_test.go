package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/generation"
	"github.com/recall-app/recall-api/internal/mocks"
	"github.com/recall-app/recall-api/internal/service"
	"github.com/recall-app/recall-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeckService(
	t *testing.T,
	generator *mocks.MockGenerator,
	deckStore *mocks.MockDeckStore,
	cardStore *mocks.MockCardStore,
) service.DeckService {
	t.Helper()

	svc, err := service.NewDeckService(
		generator, deckStore, cardStore,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	return svc
}

func mustNewDeck(t *testing.T, title string, totalCards int) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(title, totalCards)
	require.NoError(t, err)
	return deck
}

func mustNewCard(t *testing.T, deckID uuid.UUID, q, a string, pos int) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(deckID, q, a, pos)
	require.NoError(t, err)
	return card
}

func TestNewDeckServiceValidation(t *testing.T) {
	t.Parallel()

	generator := &mocks.MockGenerator{}
	deckStore := &mocks.MockDeckStore{}
	cardStore := &mocks.MockCardStore{}

	_, err := service.NewDeckService(nil, deckStore, cardStore, nil)
	assert.Error(t, err)

	_, err = service.NewDeckService(generator, nil, cardStore, nil)
	assert.Error(t, err)

	_, err = service.NewDeckService(generator, deckStore, nil, nil)
	assert.Error(t, err)

	svc, err := service.NewDeckService(generator, deckStore, cardStore, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc, "nil logger falls back to the default")
}

func TestGenerateDeck(t *testing.T) {
	t.Parallel()

	t.Run("persists the generation result as deck and cards", func(t *testing.T) {
		t.Parallel()
		generator := &mocks.MockGenerator{
			Result: &generation.Result{
				Title: "French Revolution",
				Cards: []generation.Flashcard{
					{Question: "When did it begin?", Answer: "1789"},
					{Question: "What was stormed?", Answer: "The Bastille"},
				},
			},
		}
		deckStore := &mocks.MockDeckStore{}
		svc := newDeckService(t, generator, deckStore, &mocks.MockCardStore{})

		deck, cards, err := svc.GenerateDeck(context.Background(), generation.Request{
			Topic: "french revolution",
			Count: 2,
		})

		require.NoError(t, err)
		assert.Equal(t, "French Revolution", deck.Title)
		assert.Equal(t, 2, deck.TotalCards)
		assert.Equal(t, domain.DeckStatusNew, deck.Status)

		require.Len(t, cards, 2)
		for i, card := range cards {
			assert.Equal(t, deck.ID, card.DeckID)
			assert.Equal(t, i, card.Position, "model order is preserved")
			assert.Equal(t, domain.CardStatusNew, card.Status)
		}

		assert.Equal(t, 1, deckStore.Calls.CreateWithCards)
	})

	t.Run("generation errors pass through unwrapped", func(t *testing.T) {
		t.Parallel()
		generator := &mocks.MockGenerator{Err: generation.ErrMissingCredential}
		deckStore := &mocks.MockDeckStore{}
		svc := newDeckService(t, generator, deckStore, &mocks.MockCardStore{})

		_, _, err := svc.GenerateDeck(context.Background(), generation.Request{Topic: "t", Count: 3})

		assert.ErrorIs(t, err, generation.ErrMissingCredential)
		assert.Equal(t, 0, deckStore.Calls.CreateWithCards, "nothing is persisted on failure")
	})

	t.Run("persistence failure is wrapped as a service error", func(t *testing.T) {
		t.Parallel()
		generator := &mocks.MockGenerator{
			Result: &generation.Result{
				Title: "Title",
				Cards: []generation.Flashcard{{Question: "q", Answer: "a"}},
			},
		}
		deckStore := &mocks.MockDeckStore{Err: errors.New("insert failed")}
		svc := newDeckService(t, generator, deckStore, &mocks.MockCardStore{})

		_, _, err := svc.GenerateDeck(context.Background(), generation.Request{Topic: "t", Count: 1})

		var svcErr *service.DeckServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "generate_deck", svcErr.Operation)
	})
}

func TestUpdateCardStatus(t *testing.T) {
	t.Parallel()

	t.Run("updates the card and refreshes deck progress", func(t *testing.T) {
		t.Parallel()
		deck := mustNewDeck(t, "Title", 2)
		first := mustNewCard(t, deck.ID, "q1", "a1", 0)
		second := mustNewCard(t, deck.ID, "q2", "a2", 1)
		require.NoError(t, second.UpdateStatus(domain.CardStatusMastered))

		cardStore := &mocks.MockCardStore{
			Card: first,
			// After the update both cards read back as mastered.
			ListByDeckFn: func(ctx context.Context, deckID uuid.UUID, limit int) ([]*domain.Card, error) {
				updated := *first
				updated.Status = domain.CardStatusMastered
				return []*domain.Card{&updated, second}, nil
			},
		}
		deckStore := &mocks.MockDeckStore{Deck: deck}
		svc := newDeckService(t, &mocks.MockGenerator{}, deckStore, cardStore)

		got, err := svc.UpdateCardStatus(context.Background(), first.ID, domain.CardStatusMastered)

		require.NoError(t, err)
		assert.Equal(t, 1, cardStore.Calls.UpdateStatus)
		assert.Equal(t, []domain.CardStatus{domain.CardStatusMastered}, cardStore.Calls.UpdatedStatuses)
		assert.Equal(t, 2, got.MasteredCount)
		assert.Equal(t, 100, got.Progress)
		assert.Equal(t, domain.DeckStatusCompleted, got.Status)
		assert.Equal(t, 1, deckStore.Calls.Update)
	})

	t.Run("missing card surfaces not found", func(t *testing.T) {
		t.Parallel()
		cardStore := &mocks.MockCardStore{Err: store.ErrCardNotFound}
		svc := newDeckService(t, &mocks.MockGenerator{}, &mocks.MockDeckStore{}, cardStore)

		_, err := svc.UpdateCardStatus(context.Background(), uuid.New(), domain.CardStatusHard)

		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})
}

func TestResetDeck(t *testing.T) {
	t.Parallel()

	deck := mustNewDeck(t, "Title", 3)
	require.NoError(t, deck.RecordProgress(3))
	require.Equal(t, domain.DeckStatusCompleted, deck.Status)

	cardStore := &mocks.MockCardStore{}
	deckStore := &mocks.MockDeckStore{Deck: deck}
	svc := newDeckService(t, &mocks.MockGenerator{}, deckStore, cardStore)

	got, err := svc.ResetDeck(context.Background(), deck.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, cardStore.Calls.ResetStatuses)
	assert.Equal(t, []uuid.UUID{deck.ID}, cardStore.Calls.ResetDeckIDs)
	assert.Equal(t, 0, got.MasteredCount)
	assert.Equal(t, 0, got.Progress)
	assert.Equal(t, domain.DeckStatusNew, got.Status)
	assert.Nil(t, got.LastStudied)
	assert.Equal(t, 1, deckStore.Calls.Update)
}

func TestListCards(t *testing.T) {
	t.Parallel()

	t.Run("missing deck surfaces not found", func(t *testing.T) {
		t.Parallel()
		deckStore := &mocks.MockDeckStore{Err: store.ErrDeckNotFound}
		svc := newDeckService(t, &mocks.MockGenerator{}, deckStore, &mocks.MockCardStore{})

		_, err := svc.ListCards(context.Background(), uuid.New(), 0)

		assert.ErrorIs(t, err, store.ErrDeckNotFound)
	})

	t.Run("returns the deck's cards", func(t *testing.T) {
		t.Parallel()
		deck := mustNewDeck(t, "Title", 1)
		card := mustNewCard(t, deck.ID, "q", "a", 0)
		deckStore := &mocks.MockDeckStore{Deck: deck}
		cardStore := &mocks.MockCardStore{Cards: []*domain.Card{card}}
		svc := newDeckService(t, &mocks.MockGenerator{}, deckStore, cardStore)

		cards, err := svc.ListCards(context.Background(), deck.ID, 10)

		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})
}

func TestListHardCards(t *testing.T) {
	t.Parallel()

	deck := mustNewDeck(t, "Title", 2)
	hard := mustNewCard(t, deck.ID, "q", "a", 0)
	require.NoError(t, hard.UpdateStatus(domain.CardStatusHard))

	cardStore := &mocks.MockCardStore{Cards: []*domain.Card{hard}}
	svc := newDeckService(t, &mocks.MockGenerator{}, &mocks.MockDeckStore{}, cardStore)

	cards, err := svc.ListHardCards(context.Background())

	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, domain.CardStatusHard, cards[0].Status)
	assert.Equal(t, 1, cardStore.Calls.ListHard)
}

func TestDeleteDeck(t *testing.T) {
	t.Parallel()

	t.Run("delegates to the store", func(t *testing.T) {
		t.Parallel()
		deckStore := &mocks.MockDeckStore{}
		svc := newDeckService(t, &mocks.MockGenerator{}, deckStore, &mocks.MockCardStore{})

		id := uuid.New()
		require.NoError(t, svc.DeleteDeck(context.Background(), id))
		assert.Equal(t, []uuid.UUID{id}, deckStore.Calls.DeletedIDs)
	})

	t.Run("wraps store failures", func(t *testing.T) {
		t.Parallel()
		deckStore := &mocks.MockDeckStore{Err: fmt.Errorf("boom")}
		svc := newDeckService(t, &mocks.MockGenerator{}, deckStore, &mocks.MockCardStore{})

		err := svc.DeleteDeck(context.Background(), uuid.New())

		var svcErr *service.DeckServiceError
		assert.ErrorAs(t, err, &svcErr)
	})
}
