package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/recall-app/recall-api/internal/api"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/mocks"
	"github.com/recall-app/recall-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCardStatus(t *testing.T) {
	t.Parallel()

	t.Run("updates the status and returns the refreshed deck", func(t *testing.T) {
		t.Parallel()

		deck, cards := generatedDeck(t, "Biology", "Q?")
		require.NoError(t, deck.RecordProgress(1))

		var gotStatus domain.CardStatus
		mockService := &mocks.MockDeckService{
			UpdateCardStatusFn: func(_ context.Context, _ uuid.UUID, status domain.CardStatus) (*domain.Deck, error) {
				gotStatus = status
				return deck, nil
			},
		}
		router := newTestRouter(mockService, nil)

		rr := doRequest(router, http.MethodPatch,
			"/api/cards/"+cards[0].ID.String()+"/status", `{"status":"mastered"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.CardStatusMastered, gotStatus)

		var resp api.UpdateCardStatusResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, cards[0].ID.String(), resp.CardID)
		assert.Equal(t, "mastered", resp.Status)
		assert.Equal(t, 100, resp.Deck.Progress)
		assert.Equal(t, string(domain.DeckStatusCompleted), resp.Deck.Status)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mocks.MockDeckService{}, nil)

		rr := doRequest(router, http.MethodPatch,
			"/api/cards/"+uuid.New().String()+"/status", `{"status":"memorized"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects a malformed card id", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mocks.MockDeckService{}, nil)

		rr := doRequest(router, http.MethodPatch,
			"/api/cards/42/status", `{"status":"hard"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("returns 404 for an unknown card", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mocks.MockDeckService{Err: store.ErrCardNotFound}, nil)

		rr := doRequest(router, http.MethodPatch,
			"/api/cards/"+uuid.New().String()+"/status", `{"status":"review"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListHardCards(t *testing.T) {
	t.Parallel()

	t.Run("returns the hard and review cards", func(t *testing.T) {
		t.Parallel()

		_, cards := generatedDeck(t, "Biology", "Hard one?", "Another?")
		require.NoError(t, cards[0].UpdateStatus(domain.CardStatusHard))
		require.NoError(t, cards[1].UpdateStatus(domain.CardStatusReview))
		router := newTestRouter(&mocks.MockDeckService{Cards: cards}, nil)

		rr := doRequest(router, http.MethodGet, "/api/cards/hard", "")

		require.Equal(t, http.StatusOK, rr.Code)

		var resp []api.CardResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, string(domain.CardStatusHard), resp[0].Status)
		assert.Equal(t, string(domain.CardStatusReview), resp[1].Status)
	})

	t.Run("surfaces store failures as internal errors", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mocks.MockDeckService{Err: assert.AnError}, nil)

		rr := doRequest(router, http.MethodGet, "/api/cards/hard", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), assert.AnError.Error())
	})
}
