// Package extract resolves uploaded documents into plain text for the
// generation pipeline. Extraction is best-effort by contract: any
// failure or unsupported format yields an empty string, which the
// orchestrator treats as "no content", never as a fatal error.
package extract

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/recall-app/recall-api/internal/generation"
)

// DefaultOCRModel is the vision-capable model used for image
// transcription when none is configured.
const DefaultOCRModel = "gemini-2.5-flash"

// Transcriber performs OCR on an image. Implemented by the gemini
// platform package.
type Transcriber interface {
	Transcribe(ctx context.Context, apiKey, model string, image []byte, mimeType string) (string, error)
}

// Extractor implements generation.ContentExtractor: plain-text formats
// are read directly, images go through vision OCR, and everything else
// yields empty text.
type Extractor struct {
	transcriber Transcriber
	ocrModel    string
	logger      *slog.Logger
}

var _ generation.ContentExtractor = (*Extractor)(nil)

// NewExtractor creates an Extractor using the given transcriber for
// image OCR. An empty ocrModel selects DefaultOCRModel.
func NewExtractor(transcriber Transcriber, ocrModel string, logger *slog.Logger) (*Extractor, error) {
	if transcriber == nil {
		return nil, errors.New("transcriber cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if ocrModel == "" {
		ocrModel = DefaultOCRModel
	}

	return &Extractor{
		transcriber: transcriber,
		ocrModel:    ocrModel,
		logger:      logger.With(slog.String("component", "extract")),
	}, nil
}

// Extract returns the plain text carried by the document, or an empty
// string when the document cannot be read.
func (e *Extractor) Extract(ctx context.Context, document []byte, mimeType, apiKey string) string {
	if len(document) == 0 {
		return ""
	}

	mime := normalizeMIMEType(mimeType)

	switch {
	case isTextMIMEType(mime):
		if !utf8.Valid(document) {
			e.logger.WarnContext(ctx, "document is not valid UTF-8, treating as no content",
				"mime_type", mime)
			return ""
		}
		return string(document)

	case strings.HasPrefix(mime, "image/"):
		text, err := e.transcriber.Transcribe(ctx, apiKey, e.ocrModel, document, mime)
		if err != nil {
			e.logger.WarnContext(ctx, "image transcription failed, treating as no content",
				"mime_type", mime, "error", err)
			return ""
		}
		return strings.TrimSpace(text)

	default:
		e.logger.DebugContext(ctx, "unsupported MIME type, treating as no content",
			"mime_type", mime)
		return ""
	}
}

// normalizeMIMEType lowercases the type and strips parameters such as
// charset.
func normalizeMIMEType(mimeType string) string {
	mime, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mime))
}

// isTextMIMEType reports whether the document can be read as plain text
// without conversion.
func isTextMIMEType(mime string) bool {
	if strings.HasPrefix(mime, "text/") {
		return true
	}
	switch mime {
	case "application/json", "application/xml", "application/x-markdown":
		return true
	default:
		return false
	}
}
