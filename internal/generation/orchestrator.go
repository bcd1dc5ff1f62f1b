package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/recall-app/recall-api/internal/domain"
)

// Default orchestrator tunables.
const (
	DefaultGroundedTemperature float32 = 0.35
	DefaultCreativeTemperature float32 = 0.6
	DefaultInvokeTimeout               = 45 * time.Second
)

// DefaultModels is the ranked fallback chain tried in order, from the
// strongest default to the most-available fallback.
var DefaultModels = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
}

// Orchestrator construction errors
var (
	ErrNilSettingsSource = errors.New("settings source cannot be nil")
	ErrNilExtractor      = errors.New("content extractor cannot be nil")
	ErrNilInvoker        = errors.New("model invoker cannot be nil")
	ErrNilLogger         = errors.New("logger cannot be nil")
	ErrNoModels          = errors.New("model candidate list cannot be empty")
)

// Config holds the orchestrator tunables. The zero value selects the
// defaults above.
type Config struct {
	// Models is the ordered list of backend model candidates. Fixed and
	// deterministic: no runtime reordering.
	Models []string

	// Prompt holds the prompt builder tunables.
	Prompt PromptConfig

	// GroundedTemperature is used when content is substantial and strict
	// grounding is active, to suppress hallucination.
	GroundedTemperature float32

	// CreativeTemperature is used in topic-only mode and when enrichment
	// is enabled, where variation is acceptable.
	CreativeTemperature float32

	// InvokeTimeout bounds each individual model invocation. A timeout
	// classifies as overload and triggers fallback to the next candidate.
	InvokeTimeout time.Duration
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		Models:              DefaultModels,
		Prompt:              DefaultPromptConfig(),
		GroundedTemperature: DefaultGroundedTemperature,
		CreativeTemperature: DefaultCreativeTemperature,
		InvokeTimeout:       DefaultInvokeTimeout,
	}
}

// withDefaults fills unset fields with the default values.
func (c Config) withDefaults() Config {
	if len(c.Models) == 0 {
		c.Models = DefaultModels
	}
	c.Prompt = c.Prompt.withDefaults()
	if c.GroundedTemperature <= 0 {
		c.GroundedTemperature = DefaultGroundedTemperature
	}
	if c.CreativeTemperature <= 0 {
		c.CreativeTemperature = DefaultCreativeTemperature
	}
	if c.InvokeTimeout <= 0 {
		c.InvokeTimeout = DefaultInvokeTimeout
	}
	return c
}

// Orchestrator produces a Result from a Request, hiding API-key
// resolution, content sufficiency, temperature selection, the ranked
// model-fallback loop, response validation, and error classification
// behind a single Generate call.
//
// An Orchestrator holds no mutable state: concurrent Generate calls for
// different requests are safe.
type Orchestrator struct {
	settings  SettingsSource
	extractor ContentExtractor
	invoker   ModelInvoker
	cfg       Config
	logger    *slog.Logger
}

// NewOrchestrator creates an Orchestrator with the given collaborators.
// Returns an error if any dependency is nil.
func NewOrchestrator(
	settings SettingsSource,
	extractor ContentExtractor,
	invoker ModelInvoker,
	cfg Config,
	logger *slog.Logger,
) (*Orchestrator, error) {
	if settings == nil {
		return nil, ErrNilSettingsSource
	}
	if extractor == nil {
		return nil, ErrNilExtractor
	}
	if invoker == nil {
		return nil, ErrNilInvoker
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &Orchestrator{
		settings:  settings,
		extractor: extractor,
		invoker:   invoker,
		cfg:       cfg.withDefaults(),
		logger:    logger.With(slog.String("component", "generation")),
	}, nil
}

// Generate runs the full pipeline for one request. On success exactly
// one backend call succeeded; at most len(cfg.Models) calls were made.
// On failure the error is one of the kinds in errors.go; the
// orchestrator never substitutes fabricated cards for a genuine
// failure.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRequest, req.Count)
	}

	settings, err := o.settings.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading settings: %v", ErrGenerationFailed, err)
	}

	apiKey := strings.TrimSpace(settings.APIKey)
	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	language := req.Language
	if !language.Valid() {
		language = settings.Language
	}
	if !language.Valid() {
		language = domain.LanguageEnglish
	}

	docText := req.DocumentText
	if docText == "" && len(req.Document) > 0 {
		// Extraction failure is tolerated: an empty string falls back to
		// topic-only mode rather than failing the request.
		docText = o.extractor.Extract(ctx, req.Document, req.MIMEType, apiKey)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	grounded := o.cfg.Prompt.DocumentGrounded(docText)
	strict := grounded && !settings.AISuggestions

	temperature := o.cfg.CreativeTemperature
	if strict {
		temperature = o.cfg.GroundedTemperature
	}

	prompt := BuildPrompt(PromptInput{
		Topic:             req.Topic,
		Count:             req.Count,
		DocumentText:      docText,
		EnrichmentEnabled: settings.AISuggestions,
		Language:          language,
	}, o.cfg.Prompt)

	o.logger.InfoContext(ctx, "starting generation",
		"count", req.Count,
		"grounded", grounded,
		"strict", strict,
		"language", language,
		"document_length", len(docText),
		"candidates", len(o.cfg.Models))

	var lastErr error
	for i, model := range o.cfg.Models {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}

		attempt := i + 1
		o.logger.InfoContext(ctx, "invoking model",
			"model", model,
			"attempt", attempt,
			"max_attempts", len(o.cfg.Models))

		attemptCtx, cancel := context.WithTimeout(ctx, o.cfg.InvokeTimeout)
		raw, err := o.invoker.Invoke(attemptCtx, InvokeRequest{
			APIKey:      apiKey,
			Model:       model,
			Prompt:      prompt,
			Temperature: temperature,
		})
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
			}

			if errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w: model %q timed out", ErrServiceUnavailable, model)
			}

			if IsFatal(err) {
				o.logger.WarnContext(ctx, "fatal error, aborting fallback loop",
					"model", model, "error", err)
				return nil, err
			}

			o.logger.WarnContext(ctx, "model attempt failed, trying next candidate",
				"model", model, "attempt", attempt, "error", err)
			lastErr = err
			continue
		}

		result, err := parseResult(raw)
		if err != nil {
			o.logger.WarnContext(ctx, "model returned unusable response, trying next candidate",
				"model", model, "attempt", attempt, "error", err)
			lastErr = err
			continue
		}

		if len(result.Cards) != req.Count {
			// Accepted as-is: callers tolerate a count mismatch.
			o.logger.WarnContext(ctx, "card count mismatch",
				"model", model,
				"requested", req.Count,
				"returned", len(result.Cards))
		}

		o.logger.InfoContext(ctx, "generation succeeded",
			"model", model,
			"attempt", attempt,
			"cards", len(result.Cards))
		return result, nil
	}

	return nil, o.exhaustedError(lastErr)
}

// exhaustedError aggregates the last-seen failure class once every
// candidate has been tried.
func (o *Orchestrator) exhaustedError(lastErr error) error {
	switch {
	case lastErr == nil:
		return ErrGenerationFailed
	case errors.Is(lastErr, ErrServiceUnavailable):
		return fmt.Errorf("%w: all %d model candidates exhausted", ErrServiceUnavailable, len(o.cfg.Models))
	case errors.Is(lastErr, ErrQuotaExceeded):
		return fmt.Errorf("%w: all %d model candidates exhausted", ErrQuotaExceeded, len(o.cfg.Models))
	case errors.Is(lastErr, ErrMalformedResponse):
		return fmt.Errorf("%w: no model produced a usable response: %v", ErrGenerationFailed, lastErr)
	default:
		return fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
	}
}

// responseSchema mirrors the JSON contract stated in the prompt.
type responseSchema struct {
	Title string `json:"title"`
	Cards []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"cards"`
}

// parseResult strips any code-fence wrapping, parses the backend text
// as JSON, and validates the required shape. Every failure maps to
// ErrMalformedResponse so the fallback loop treats it as transient.
func parseResult(raw string) (*Result, error) {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var schema responseSchema
	if err := json.Unmarshal([]byte(cleaned), &schema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	title := strings.TrimSpace(schema.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrMalformedResponse)
	}

	if len(schema.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards in response", ErrMalformedResponse)
	}

	cards := make([]Flashcard, 0, len(schema.Cards))
	for i, c := range schema.Cards {
		question := strings.TrimSpace(c.Question)
		answer := strings.TrimSpace(c.Answer)
		if question == "" {
			return nil, fmt.Errorf("%w: card %d missing question", ErrMalformedResponse, i)
		}
		if answer == "" {
			return nil, fmt.Errorf("%w: card %d missing answer", ErrMalformedResponse, i)
		}
		cards = append(cards, Flashcard{Question: question, Answer: answer})
	}

	return &Result{Title: title, Cards: cards}, nil
}

// stripCodeFence removes markdown code-fence wrapping defensively even
// though the backend is instructed not to emit it.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
