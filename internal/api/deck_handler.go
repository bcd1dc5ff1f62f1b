package api

import (
	"net/http"
	"strconv"

	"github.com/recall-app/recall-api/internal/api/shared"
	"github.com/recall-app/recall-api/internal/service"
)

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	deckService service.DeckService
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(deckService service.DeckService) *DeckHandler {
	return &DeckHandler{deckService: deckService}
}

// ListDecks handles GET /api/decks requests
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.deckService.ListDecks(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, decksToResponse(decks))
}

// GetDeck handles GET /api/decks/{id} requests, returning the deck with
// its cards.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	cards, err := h.deckService.ListCards(r.Context(), deckID, 0)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := DeckWithCardsResponse{
		Deck:  deckToResponse(deck),
		Cards: cardsToResponse(cards),
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// DeleteDeck handles DELETE /api/decks/{id} requests
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), deckID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCards handles GET /api/decks/{id}/cards requests. An optional
// positive "limit" query parameter caps the result.
func (h *DeckHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit: must be a non-negative integer")
			return
		}
	}

	cards, err := h.deckService.ListCards(r.Context(), deckID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// ResetDeck handles POST /api/decks/{id}/reset requests, returning every
// card to the unstudied state.
func (h *DeckHandler) ResetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deck, err := h.deckService.ResetDeck(r.Context(), deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}
