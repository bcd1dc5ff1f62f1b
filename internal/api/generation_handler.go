package api

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/recall-app/recall-api/internal/api/shared"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/generation"
	"github.com/recall-app/recall-api/internal/service"
)

// maxUploadBytes caps the document upload size accepted by the
// generation endpoint.
const maxUploadBytes = 20 << 20 // 20 MiB

// GenerateDeckRequest represents the JSON request body for generating a deck.
// Multipart requests carry the same fields as form values plus a "document"
// file part.
type GenerateDeckRequest struct {
	Topic        string `json:"topic"`
	Count        int    `json:"count" validate:"required,gt=0,lte=100"`
	DocumentText string `json:"document_text"`
	Language     string `json:"language" validate:"omitempty,oneof=en id"`
}

// GenerationHandler handles deck generation HTTP requests
type GenerationHandler struct {
	deckService service.DeckService
	validator   *validator.Validate
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(deckService service.DeckService) *GenerationHandler {
	return &GenerationHandler{
		deckService: deckService,
		validator:   validator.New(),
	}
}

// GenerateDeck handles POST /api/decks/generate requests.
// It accepts either a JSON body or a multipart form with a document upload,
// runs the generation pipeline synchronously, and returns the persisted deck
// with its cards.
func (h *GenerationHandler) GenerateDeck(w http.ResponseWriter, r *http.Request) {
	var genReq generation.Request
	var err error

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		genReq, err = h.parseMultipartRequest(w, r)
	} else {
		genReq, err = h.parseJSONRequest(r)
	}
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deck, cards, err := h.deckService.GenerateDeck(r.Context(), genReq)
	if err != nil {
		status := MapErrorToStatusCode(err)
		opts := []shared.ResponseOption{}
		if status == http.StatusUnauthorized {
			opts = append(opts, shared.WithElevatedLogLevel())
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
		return
	}

	response := DeckWithCardsResponse{
		Deck:  deckToResponse(deck),
		Cards: cardsToResponse(cards),
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, response)
}

// parseJSONRequest builds a generation.Request from a JSON body.
func (h *GenerationHandler) parseJSONRequest(r *http.Request) (generation.Request, error) {
	var req GenerateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return generation.Request{}, errInvalidRequestFormat
	}

	if err := h.validator.Struct(req); err != nil {
		return generation.Request{}, validationError(err)
	}

	return generation.Request{
		Topic:        req.Topic,
		Count:        req.Count,
		DocumentText: req.DocumentText,
		Language:     domain.Language(req.Language),
	}, nil
}

// parseMultipartRequest builds a generation.Request from a multipart form
// carrying an optional document upload. When no topic is supplied, it is
// derived from the uploaded filename.
func (h *GenerationHandler) parseMultipartRequest(
	w http.ResponseWriter,
	r *http.Request,
) (generation.Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return generation.Request{}, errDocumentTooLarge
	}

	count, err := strconv.Atoi(r.FormValue("count"))
	if err != nil {
		return generation.Request{}, errInvalidCount
	}

	req := GenerateDeckRequest{
		Topic:    r.FormValue("topic"),
		Count:    count,
		Language: r.FormValue("language"),
	}
	if err := h.validator.Struct(req); err != nil {
		return generation.Request{}, validationError(err)
	}

	genReq := generation.Request{
		Topic:    req.Topic,
		Count:    req.Count,
		Language: domain.Language(req.Language),
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		if err == http.ErrMissingFile {
			return genReq, nil
		}
		return generation.Request{}, errInvalidRequestFormat
	}
	defer func() { _ = file.Close() }()

	document, err := io.ReadAll(file)
	if err != nil {
		return generation.Request{}, errInvalidRequestFormat
	}

	genReq.Document = document
	genReq.MIMEType = documentMIMEType(header)
	if genReq.Topic == "" {
		genReq.Topic = topicFromFilename(header.Filename)
	}

	return genReq, nil
}

// documentMIMEType resolves the uploaded part's content type, falling back
// to the extension when the part carries no type.
func documentMIMEType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".txt":
		return "text/plain"
	case ".md":
		return "text/markdown"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// topicFromFilename turns "chapter-3_notes.txt" into "chapter 3 notes".
func topicFromFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}
