package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/recall-app/recall-api/internal/generation"
	"google.golang.org/genai"
)

// Invoker implements generation.ModelInvoker against Google's Gemini
// API. The API key arrives per request (it lives in the user's
// settings), so clients are cached per key; the cache is the only
// shared state and is mutex-guarded, making concurrent Invoke calls
// safe.
type Invoker struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[string]*genai.Client
}

// Ensure Invoker implements the generation contracts.
var _ generation.ModelInvoker = (*Invoker)(nil)

// NewInvoker creates a Gemini-backed model invoker.
func NewInvoker(logger *slog.Logger) (*Invoker, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Invoker{
		logger:  logger.With(slog.String("component", "gemini")),
		clients: make(map[string]*genai.Client),
	}, nil
}

// client returns the cached client for the key, creating one on first use.
func (g *Invoker) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[apiKey]; ok {
		return c, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	g.clients[apiKey] = c
	return c, nil
}

// Invoke requests structured JSON output from the given model and
// returns the raw response text. Errors come back classified into the
// generation error kinds.
func (g *Invoker) Invoke(ctx context.Context, req generation.InvokeRequest) (string, error) {
	client, err := g.client(ctx, req.APIKey)
	if err != nil {
		return "", classifyError(err)
	}

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", req.Model,
		"prompt_length", len(req.Prompt),
		"temperature", req.Temperature)

	resp, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(req.Temperature),
			ResponseMIMEType: "application/json",
		})
	if err != nil {
		return "", classifyError(err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response from model %q", generation.ErrMalformedResponse, req.Model)
	}

	return text, nil
}

// ocrPrompt instructs the vision model to transcribe, not interpret.
const ocrPrompt = "Transcribe all text visible in this image verbatim. " +
	"Return plain text only, without markdown, headers, or commentary. " +
	"If the image contains no readable text, return an empty response."

// Transcribe performs OCR on an image via a vision-capable Gemini
// model and returns the transcribed text. Errors share the invoker's
// classification.
func (g *Invoker) Transcribe(ctx context.Context, apiKey, model string, image []byte, mimeType string) (string, error) {
	client, err := g.client(ctx, apiKey)
	if err != nil {
		return "", classifyError(err)
	}

	g.logger.DebugContext(ctx, "transcribing image via Gemini API",
		"model", model,
		"mime_type", mimeType,
		"image_bytes", len(image))

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(ocrPrompt),
			genai.NewPartFromBytes(image, mimeType),
		}, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0)),
	})
	if err != nil {
		return "", classifyError(err)
	}

	return resp.Text(), nil
}
