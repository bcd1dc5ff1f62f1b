package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()

	t.Run("valid card", func(t *testing.T) {
		t.Parallel()
		card, err := domain.NewCard(deckID, "What is osmosis?", "Diffusion of water across a membrane.", 3)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, card.ID)
		assert.Equal(t, deckID, card.DeckID)
		assert.Equal(t, domain.CardStatusNew, card.Status)
		assert.Equal(t, 3, card.Position)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		t.Parallel()
		card, err := domain.NewCard(deckID, "  question  ", "  answer  ", 0)

		require.NoError(t, err)
		assert.Equal(t, "question", card.Question)
		assert.Equal(t, "answer", card.Answer)
	})

	t.Run("rejects nil deck ID", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewCard(uuid.Nil, "q", "a", 0)
		assert.ErrorIs(t, err, domain.ErrCardDeckIDEmpty)
	})

	t.Run("rejects empty question", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewCard(deckID, "   ", "a", 0)
		assert.ErrorIs(t, err, domain.ErrCardQuestionEmpty)
	})

	t.Run("rejects empty answer", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewCard(deckID, "q", "", 0)
		assert.ErrorIs(t, err, domain.ErrCardAnswerEmpty)
	})
}

func TestCardUpdateStatus(t *testing.T) {
	t.Parallel()

	card, err := domain.NewCard(uuid.New(), "q", "a", 0)
	require.NoError(t, err)

	for _, status := range []domain.CardStatus{
		domain.CardStatusMastered,
		domain.CardStatusHard,
		domain.CardStatusReview,
		domain.CardStatusNew,
	} {
		require.NoError(t, card.UpdateStatus(status))
		assert.Equal(t, status, card.Status)
	}

	err = card.UpdateStatus(domain.CardStatus("learned"))
	assert.ErrorIs(t, err, domain.ErrInvalidCardStatus)
	assert.Equal(t, domain.CardStatusNew, card.Status, "invalid update must not change status")
}
