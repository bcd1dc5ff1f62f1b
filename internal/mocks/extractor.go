package mocks

import (
	"context"
	"sync"
)

// MockExtractor implements generation.ContentExtractor for testing
type MockExtractor struct {
	// ExtractFn allows test cases to mock the Extract behavior
	ExtractFn func(ctx context.Context, document []byte, mimeType, apiKey string) string

	// Default response value
	Text string

	// Call tracking for verification
	ExtractCalls struct {
		mu        sync.Mutex
		Count     int
		Documents [][]byte
		MIMETypes []string
	}
}

// Extract implements the generation.ContentExtractor interface
func (m *MockExtractor) Extract(
	ctx context.Context,
	document []byte,
	mimeType, apiKey string,
) string {
	m.ExtractCalls.mu.Lock()
	m.ExtractCalls.Count++
	m.ExtractCalls.Documents = append(m.ExtractCalls.Documents, document)
	m.ExtractCalls.MIMETypes = append(m.ExtractCalls.MIMETypes, mimeType)
	m.ExtractCalls.mu.Unlock()

	if m.ExtractFn != nil {
		return m.ExtractFn(ctx, document, mimeType, apiKey)
	}

	return m.Text
}

// MockTranscriber implements extract.Transcriber for testing
type MockTranscriber struct {
	// TranscribeFn allows test cases to mock the Transcribe behavior
	TranscribeFn func(ctx context.Context, apiKey, model string, image []byte, mimeType string) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	TranscribeCalls struct {
		mu     sync.Mutex
		Count  int
		Models []string
	}
}

// Transcribe implements the extract.Transcriber interface
func (m *MockTranscriber) Transcribe(
	ctx context.Context,
	apiKey, model string,
	image []byte,
	mimeType string,
) (string, error) {
	m.TranscribeCalls.mu.Lock()
	m.TranscribeCalls.Count++
	m.TranscribeCalls.Models = append(m.TranscribeCalls.Models, model)
	m.TranscribeCalls.mu.Unlock()

	if m.TranscribeFn != nil {
		return m.TranscribeFn(ctx, apiKey, model, image, mimeType)
	}

	return m.Text, m.Err
}
