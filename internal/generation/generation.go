package generation

import (
	"context"

	"github.com/recall-app/recall-api/internal/domain"
)

// Request carries the inputs for one generation call. It is constructed
// fresh per user action, consumed synchronously, and discarded.
type Request struct {
	// Topic is the subject to generate cards about. Often derived from a
	// filename; in strict document-grounded mode it never influences
	// question content.
	Topic string

	// Count is the number of cards requested. Must be positive.
	Count int

	// DocumentText is pre-extracted document content, if the caller
	// already has it. Takes precedence over Document.
	DocumentText string

	// Document is the raw uploaded file, extracted via the
	// ContentExtractor when DocumentText is empty.
	Document []byte

	// MIMEType describes Document.
	MIMEType string

	// Language overrides the configured language when valid.
	Language domain.Language
}

// Flashcard is a generated question/answer pair. Identity and study
// status are assigned by the result consumer at persistence time.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Result is the validated outcome of a generation call: a non-empty
// deck title plus the generated cards in model order.
type Result struct {
	Title string      `json:"title"`
	Cards []Flashcard `json:"cards"`
}

// SettingsSource provides the user settings the pipeline reads on every
// request: the API key, the enrichment flag, and the language.
type SettingsSource interface {
	Settings(ctx context.Context) (domain.Settings, error)
}

// ContentExtractor turns an uploaded document into plain text. It must
// not fail for unsupported MIME types or extraction errors: it returns
// an empty string instead, and the orchestrator falls back to
// topic-only generation.
type ContentExtractor interface {
	Extract(ctx context.Context, document []byte, mimeType, apiKey string) string
}

// InvokeRequest describes a single backend model call.
type InvokeRequest struct {
	APIKey      string
	Model       string
	Prompt      string
	Temperature float32
}

// ModelInvoker is the backend call contract. Implementations request
// structured JSON output and return the raw response text. Errors must
// already be classified into the kinds in errors.go so the fallback
// loop can branch on them with errors.Is.
type ModelInvoker interface {
	Invoke(ctx context.Context, req InvokeRequest) (string, error)
}
