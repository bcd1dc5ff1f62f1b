package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/recall-app/recall-api/internal/api"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/generation"
	"github.com/recall-app/recall-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatedDeck(t *testing.T, title string, questions ...string) (*domain.Deck, []*domain.Card) {
	t.Helper()

	deck, err := domain.NewDeck(title, len(questions))
	require.NoError(t, err)

	cards := make([]*domain.Card, 0, len(questions))
	for i, question := range questions {
		card, err := domain.NewCard(deck.ID, question, "answer "+question, i)
		require.NoError(t, err)
		cards = append(cards, card)
	}
	return deck, cards
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/decks/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestGenerateDeckJSON(t *testing.T) {
	t.Parallel()

	t.Run("returns the persisted deck with cards", func(t *testing.T) {
		t.Parallel()

		deck, cards := generatedDeck(t, "Cell Biology", "What is a mitochondrion?", "What is a ribosome?")
		mockService := &mocks.MockDeckService{Deck: deck, Cards: cards}
		handler := api.NewGenerationHandler(mockService)

		rr := postJSON(t, handler.GenerateDeck, map[string]any{
			"topic": "cell biology",
			"count": 2,
		})

		require.Equal(t, http.StatusCreated, rr.Code)

		var resp api.DeckWithCardsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, deck.ID.String(), resp.Deck.ID)
		assert.Equal(t, "Cell Biology", resp.Deck.Title)
		require.Len(t, resp.Cards, 2)
		assert.Equal(t, "What is a mitochondrion?", resp.Cards[0].Question)
		assert.Equal(t, 1, resp.Cards[1].Position)

		require.Equal(t, 1, mockService.Calls.GenerateDeck)
		genReq := mockService.Calls.GenerateRequests[0]
		assert.Equal(t, "cell biology", genReq.Topic)
		assert.Equal(t, 2, genReq.Count)
	})

	t.Run("passes pasted document text through", func(t *testing.T) {
		t.Parallel()

		deck, cards := generatedDeck(t, "Notes", "Q?")
		mockService := &mocks.MockDeckService{Deck: deck, Cards: cards}
		handler := api.NewGenerationHandler(mockService)

		rr := postJSON(t, handler.GenerateDeck, map[string]any{
			"count":         5,
			"document_text": "The mitochondrion is the powerhouse of the cell.",
			"language":      "id",
		})

		require.Equal(t, http.StatusCreated, rr.Code)
		genReq := mockService.Calls.GenerateRequests[0]
		assert.Equal(t, "The mitochondrion is the powerhouse of the cell.", genReq.DocumentText)
		assert.Equal(t, domain.LanguageIndonesian, genReq.Language)
	})

	t.Run("rejects a missing count", func(t *testing.T) {
		t.Parallel()

		mockService := &mocks.MockDeckService{}
		handler := api.NewGenerationHandler(mockService)

		rr := postJSON(t, handler.GenerateDeck, map[string]any{"topic": "biology"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 0, mockService.Calls.GenerateDeck)
	})

	t.Run("rejects a count over the ceiling", func(t *testing.T) {
		t.Parallel()

		mockService := &mocks.MockDeckService{}
		handler := api.NewGenerationHandler(mockService)

		rr := postJSON(t, handler.GenerateDeck, map[string]any{"topic": "biology", "count": 500})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 0, mockService.Calls.GenerateDeck)
	})

	t.Run("rejects an unsupported language", func(t *testing.T) {
		t.Parallel()

		mockService := &mocks.MockDeckService{}
		handler := api.NewGenerationHandler(mockService)

		rr := postJSON(t, handler.GenerateDeck, map[string]any{
			"topic":    "biology",
			"count":    5,
			"language": "fr",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		t.Parallel()

		mockService := &mocks.MockDeckService{}
		handler := api.NewGenerationHandler(mockService)

		req := httptest.NewRequest(
			http.MethodPost, "/api/decks/generate", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.GenerateDeck(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 0, mockService.Calls.GenerateDeck)
	})
}

func TestGenerateDeckErrorMapping(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "missing api key", serviceErr: generation.ErrMissingCredential, wantStatus: http.StatusUnauthorized},
		{name: "rejected api key", serviceErr: generation.ErrInvalidCredential, wantStatus: http.StatusUnauthorized},
		{name: "quota exceeded", serviceErr: generation.ErrQuotaExceeded, wantStatus: http.StatusTooManyRequests},
		{name: "all models overloaded", serviceErr: generation.ErrServiceUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "unusable model output", serviceErr: generation.ErrGenerationFailed, wantStatus: http.StatusBadGateway},
		{name: "client gave up", serviceErr: generation.ErrCancelled, wantStatus: api.StatusClientClosedRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockService := &mocks.MockDeckService{Err: tc.serviceErr}
			handler := api.NewGenerationHandler(mockService)

			rr := postJSON(t, handler.GenerateDeck, map[string]any{"topic": "biology", "count": 5})

			require.Equal(t, tc.wantStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			errMsg, ok := resp["error"].(string)
			require.True(t, ok)
			assert.NotContains(t, errMsg, tc.serviceErr.Error())
		})
	}
}

func newMultipartRequest(
	t *testing.T,
	fields map[string]string,
	filename, contentType, content string,
) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if filename != "" {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{
			`form-data; name="document"; filename="` + filename + `"`}
		if contentType != "" {
			header["Content-Type"] = []string{contentType}
		}
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/decks/generate", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestGenerateDeckMultipart(t *testing.T) {
	t.Parallel()

	t.Run("uploads a document with its declared type", func(t *testing.T) {
		t.Parallel()

		deck, cards := generatedDeck(t, "Physics Notes", "Q?")
		mockService := &mocks.MockDeckService{Deck: deck, Cards: cards}
		handler := api.NewGenerationHandler(mockService)

		req := newMultipartRequest(t,
			map[string]string{"topic": "physics", "count": "8"},
			"notes.png", "image/png", "binary-image-bytes")
		rr := httptest.NewRecorder()
		handler.GenerateDeck(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		genReq := mockService.Calls.GenerateRequests[0]
		assert.Equal(t, "physics", genReq.Topic)
		assert.Equal(t, 8, genReq.Count)
		assert.Equal(t, []byte("binary-image-bytes"), genReq.Document)
		assert.Equal(t, "image/png", genReq.MIMEType)
	})

	t.Run("derives the topic from the filename", func(t *testing.T) {
		t.Parallel()

		deck, cards := generatedDeck(t, "Chapter 3 Notes", "Q?")
		mockService := &mocks.MockDeckService{Deck: deck, Cards: cards}
		handler := api.NewGenerationHandler(mockService)

		req := newMultipartRequest(t,
			map[string]string{"count": "5"},
			"chapter-3_notes.txt", "text/plain", "Some study notes.")
		rr := httptest.NewRecorder()
		handler.GenerateDeck(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		genReq := mockService.Calls.GenerateRequests[0]
		assert.Equal(t, "chapter 3 notes", genReq.Topic)
	})

	t.Run("falls back to the file extension for the type", func(t *testing.T) {
		t.Parallel()

		deck, cards := generatedDeck(t, "Notes", "Q?")
		mockService := &mocks.MockDeckService{Deck: deck, Cards: cards}
		handler := api.NewGenerationHandler(mockService)

		req := newMultipartRequest(t,
			map[string]string{"topic": "biology", "count": "5"},
			"notes.md", "", "# Heading")
		rr := httptest.NewRecorder()
		handler.GenerateDeck(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "text/markdown", mockService.Calls.GenerateRequests[0].MIMEType)
	})

	t.Run("accepts a form without a file", func(t *testing.T) {
		t.Parallel()

		deck, cards := generatedDeck(t, "Biology", "Q?")
		mockService := &mocks.MockDeckService{Deck: deck, Cards: cards}
		handler := api.NewGenerationHandler(mockService)

		req := newMultipartRequest(t,
			map[string]string{"topic": "biology", "count": "5"}, "", "", "")
		rr := httptest.NewRecorder()
		handler.GenerateDeck(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		genReq := mockService.Calls.GenerateRequests[0]
		assert.Empty(t, genReq.Document)
		assert.Equal(t, "biology", genReq.Topic)
	})

	t.Run("rejects a non-numeric count", func(t *testing.T) {
		t.Parallel()

		mockService := &mocks.MockDeckService{}
		handler := api.NewGenerationHandler(mockService)

		req := newMultipartRequest(t,
			map[string]string{"topic": "biology", "count": "lots"}, "", "", "")
		rr := httptest.NewRecorder()
		handler.GenerateDeck(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 0, mockService.Calls.GenerateDeck)
	})
}
