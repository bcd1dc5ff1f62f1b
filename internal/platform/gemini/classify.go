package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/recall-app/recall-api/internal/generation"
	"google.golang.org/genai"
)

// classifyError maps backend failures onto the generation error kinds
// so the orchestrator's fallback loop can branch with errors.Is.
// Unclassifiable errors pass through unchanged; the loop retries them
// optimistically on the next candidate.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", generation.ErrCancelled, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", generation.ErrServiceUnavailable)
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	message := strings.ToLower(apiErr.Message)

	switch apiErr.Code {
	case http.StatusBadRequest:
		// The Gemini API reports malformed keys as INVALID_ARGUMENT.
		if strings.Contains(message, "api key") {
			return fmt.Errorf("%w: %s", generation.ErrInvalidCredential, apiErr.Message)
		}
		return err

	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", generation.ErrInvalidCredential, apiErr.Message)

	case http.StatusForbidden:
		if isRevokedKeyMessage(message) {
			return fmt.Errorf("%w: %s", generation.ErrRevokedCredential, apiErr.Message)
		}
		return fmt.Errorf("%w: %s", generation.ErrInvalidCredential, apiErr.Message)

	case http.StatusTooManyRequests:
		// RESOURCE_EXHAUSTED covers both per-model rate limiting and
		// account-level quota exhaustion; only the latter mentions quota
		// and only the latter is unrecoverable by switching models.
		if strings.Contains(message, "quota") {
			return fmt.Errorf("%w: %s", generation.ErrQuotaExceeded, apiErr.Message)
		}
		return fmt.Errorf("%w: %s", generation.ErrServiceUnavailable, apiErr.Message)

	case http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", generation.ErrServiceUnavailable, apiErr.Message)

	default:
		return err
	}
}

// isRevokedKeyMessage detects keys the backend has taken out of
// service, as opposed to keys that were never valid.
func isRevokedKeyMessage(message string) bool {
	for _, marker := range []string{"leaked", "disabled", "revoked", "expired", "blocked"} {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
