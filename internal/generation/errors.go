package generation

import "errors"

// Error kinds returned by the generation pipeline. Callers branch on
// these with errors.Is; the API layer maps each kind to a distinct,
// actionable response.
var (
	// ErrMissingCredential is returned when no API key is configured.
	// No backend call is attempted in this case.
	ErrMissingCredential = errors.New("no API key configured")

	// ErrInvalidCredential is returned when the backend rejects the key
	// as malformed or unauthorized. A bad key fails for every model, so
	// the fallback loop aborts immediately.
	ErrInvalidCredential = errors.New("API key rejected by backend")

	// ErrRevokedCredential is returned when the backend reports the key
	// as leaked or disabled. The user must issue a new key.
	ErrRevokedCredential = errors.New("API key revoked or disabled")

	// ErrQuotaExceeded is returned when the backend reports account-level
	// quota exhaustion. Retrying other models cannot help.
	ErrQuotaExceeded = errors.New("account quota exhausted")

	// ErrServiceUnavailable is returned when a model is overloaded,
	// unavailable, or rate-limited. Transient: the next candidate is tried.
	ErrServiceUnavailable = errors.New("model overloaded or unavailable")

	// ErrMalformedResponse is returned when the backend output is not
	// valid JSON or lacks the required fields. Transient: the next
	// candidate is tried.
	ErrMalformedResponse = errors.New("malformed response from language model")

	// ErrGenerationFailed is the catch-all kind surfaced after all
	// candidates are exhausted without a more specific classification.
	ErrGenerationFailed = errors.New("failed to generate flashcards")

	// ErrCancelled is returned when the caller aborted the operation.
	// Distinct from failure; never retried.
	ErrCancelled = errors.New("generation cancelled")

	// ErrInvalidRequest is returned for requests that fail validation
	// before any work is attempted.
	ErrInvalidRequest = errors.New("invalid generation request")
)

// IsFatal reports whether err is a kind that aborts the model fallback
// loop: credential problems and account-level quota exhaustion fail for
// every candidate, so trying further models is pointless.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidCredential) ||
		errors.Is(err, ErrRevokedCredential) ||
		errors.Is(err, ErrQuotaExceeded)
}
