package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/recall-app/recall-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func apiError(code int, message string) error {
	return genai.APIError{Code: code, Message: message, Status: "ERROR"}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil stays nil",
			err:  nil,
			want: nil,
		},
		{
			name: "context canceled",
			err:  context.Canceled,
			want: generation.ErrCancelled,
		},
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: generation.ErrServiceUnavailable,
		},
		{
			name: "400 mentioning the api key",
			err:  apiError(400, "API key not valid. Please pass a valid API key."),
			want: generation.ErrInvalidCredential,
		},
		{
			name: "401 unauthorized",
			err:  apiError(401, "Request had invalid authentication credentials."),
			want: generation.ErrInvalidCredential,
		},
		{
			name: "403 leaked key",
			err:  apiError(403, "API key was reported as leaked and has been disabled."),
			want: generation.ErrRevokedCredential,
		},
		{
			name: "403 expired key",
			err:  apiError(403, "The provided API key has expired."),
			want: generation.ErrRevokedCredential,
		},
		{
			name: "403 without revocation markers",
			err:  apiError(403, "Permission denied on resource."),
			want: generation.ErrInvalidCredential,
		},
		{
			name: "429 quota exhaustion",
			err:  apiError(429, "You exceeded your current quota, please check your plan."),
			want: generation.ErrQuotaExceeded,
		},
		{
			name: "429 rate limit without quota",
			err:  apiError(429, "Resource has been exhausted (e.g. check rate limit)."),
			want: generation.ErrServiceUnavailable,
		},
		{
			name: "500 internal",
			err:  apiError(500, "An internal error has occurred."),
			want: generation.ErrServiceUnavailable,
		},
		{
			name: "503 overloaded",
			err:  apiError(503, "The model is overloaded. Please try again later."),
			want: generation.ErrServiceUnavailable,
		},
		{
			name: "504 gateway timeout",
			err:  apiError(504, "Deadline expired."),
			want: generation.ErrServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := classifyError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestClassifyErrorPassthrough(t *testing.T) {
	t.Parallel()

	t.Run("non-API errors pass through", func(t *testing.T) {
		t.Parallel()
		plain := errors.New("connection reset by peer")
		assert.Equal(t, plain, classifyError(plain))
	})

	t.Run("unmapped status codes pass through", func(t *testing.T) {
		t.Parallel()
		err := apiError(404, "model not found")
		got := classifyError(err)
		assert.False(t, generation.IsFatal(got))
		var apiErr genai.APIError
		assert.True(t, errors.As(got, &apiErr))
	})

	t.Run("400 without key mention passes through", func(t *testing.T) {
		t.Parallel()
		err := apiError(400, "Invalid request: unknown field.")
		got := classifyError(err)
		assert.False(t, errors.Is(got, generation.ErrInvalidCredential))
	})

	t.Run("wrapped API errors still classify", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("calling backend: %w", apiError(401, "bad credentials"))
		assert.ErrorIs(t, classifyError(wrapped), generation.ErrInvalidCredential)
	})
}
