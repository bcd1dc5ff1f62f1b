package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/recall-app/recall-api/internal/api/shared"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/service"
)

// UpdateCardStatusRequest represents the request body for updating a
// card's study status.
type UpdateCardStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new mastered hard review"`
}

// UpdateCardStatusResponse returns the updated card alongside the owning
// deck's refreshed progress.
type UpdateCardStatusResponse struct {
	CardID string       `json:"card_id"`
	Status string       `json:"status"`
	Deck   DeckResponse `json:"deck"`
}

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	deckService service.DeckService
	validator   *validator.Validate
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(deckService service.DeckService) *CardHandler {
	return &CardHandler{
		deckService: deckService,
		validator:   validator.New(),
	}
}

// UpdateStatus handles PATCH /api/cards/{id}/status requests
func (h *CardHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	cardID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateCardStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, errInvalidRequestFormat.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	deck, err := h.deckService.UpdateCardStatus(r.Context(), cardID, domain.CardStatus(req.Status))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := UpdateCardStatusResponse{
		CardID: cardID.String(),
		Status: req.Status,
		Deck:   deckToResponse(deck),
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// ListHard handles GET /api/cards/hard requests, returning every card
// marked hard or due for review across all decks.
func (h *CardHandler) ListHard(w http.ResponseWriter, r *http.Request) {
	cards, err := h.deckService.ListHardCards(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}
