package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/recall-app/recall-api/internal/generation"
	"github.com/recall-app/recall-api/internal/store"
)

// StatusClientClosedRequest is the non-standard status commonly used when
// the client abandoned the request before a response was produced.
const StatusClientClosedRequest = 499

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Credential errors surface as unauthorized so the client routes the
	// user to settings
	case errors.Is(err, generation.ErrMissingCredential),
		errors.Is(err, generation.ErrInvalidCredential),
		errors.Is(err, generation.ErrRevokedCredential):
		return http.StatusUnauthorized

	// Quota exhaustion is a rate-limit condition
	case errors.Is(err, generation.ErrQuotaExceeded):
		return http.StatusTooManyRequests

	// Every ranked model was unreachable or overloaded
	case errors.Is(err, generation.ErrServiceUnavailable):
		return http.StatusServiceUnavailable

	// The upstream model answered but the answer was unusable
	case errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	case errors.Is(err, generation.ErrCancelled):
		return StatusClientClosedRequest

	case errors.Is(err, generation.ErrInvalidRequest):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrDeckNotFound),
		errors.Is(err, store.ErrCardNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, generation.ErrMissingCredential):
		return "No API key configured. Add one in settings."

	case errors.Is(err, generation.ErrInvalidCredential):
		return "The configured API key was rejected. Check it in settings."

	case errors.Is(err, generation.ErrRevokedCredential):
		return "The configured API key is no longer usable. Replace it in settings."

	case errors.Is(err, generation.ErrQuotaExceeded):
		return "API quota exhausted. Try again later."

	case errors.Is(err, generation.ErrServiceUnavailable):
		return "The generation service is overloaded. Try again in a moment."

	case errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrGenerationFailed):
		return "Card generation failed. Try again."

	case errors.Is(err, generation.ErrCancelled):
		return "Generation was cancelled"

	case errors.Is(err, generation.ErrInvalidRequest):
		return "Invalid generation request"

	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'GenerateRequest.Count' Error:Field validation
	// for 'Count' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt":
		return "must be greater"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
