package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Request parsing errors whose messages are safe to return to clients.
var (
	errInvalidRequestFormat = errors.New("Invalid request format")
	errDocumentTooLarge     = errors.New("Document exceeds the upload size limit")
	errInvalidCount         = errors.New("Invalid count: must be a positive integer")
)

// validationError converts a validator error into one safe to echo back.
func validationError(err error) error {
	return errors.New(SanitizeValidationError(err))
}

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%s is required", paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid format", paramName)
	}

	return id, nil
}
