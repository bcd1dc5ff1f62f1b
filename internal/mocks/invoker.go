package mocks

import (
	"context"
	"sync"

	"github.com/recall-app/recall-api/internal/generation"
)

// InvokeOutcome scripts the result of a single model invocation.
type InvokeOutcome struct {
	Response string
	Err      error
}

// MockModelInvoker implements generation.ModelInvoker for testing
type MockModelInvoker struct {
	// InvokeFn allows test cases to mock the Invoke behavior
	InvokeFn func(ctx context.Context, req generation.InvokeRequest) (string, error)

	// Outcomes are consumed in order, one per call, when InvokeFn is nil.
	// Calls beyond the scripted outcomes fall back to Response/Err.
	Outcomes []InvokeOutcome

	// Default response values
	Response string
	Err      error

	// Call tracking for verification
	InvokeCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Invoke was called
		Count int

		// Requests contains every request passed to Invoke
		Requests []generation.InvokeRequest
	}
}

// Invoke implements the generation.ModelInvoker interface
func (m *MockModelInvoker) Invoke(
	ctx context.Context,
	req generation.InvokeRequest,
) (string, error) {
	m.InvokeCalls.mu.Lock()
	call := m.InvokeCalls.Count
	m.InvokeCalls.Count++
	m.InvokeCalls.Requests = append(m.InvokeCalls.Requests, req)
	m.InvokeCalls.mu.Unlock()

	if m.InvokeFn != nil {
		return m.InvokeFn(ctx, req)
	}

	if call < len(m.Outcomes) {
		return m.Outcomes[call].Response, m.Outcomes[call].Err
	}

	return m.Response, m.Err
}

// Models returns the model name of every tracked invocation, in order.
func (m *MockModelInvoker) Models() []string {
	m.InvokeCalls.mu.Lock()
	defer m.InvokeCalls.mu.Unlock()

	models := make([]string, 0, len(m.InvokeCalls.Requests))
	for _, req := range m.InvokeCalls.Requests {
		models = append(models, req.Model)
	}
	return models
}
