package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
)

// MockGateway implements generation.Gateway for testing
type MockGateway struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, prompt generation.Prompt) (string, error)

	// Default response values
	Response string
	Err      error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Prompts contains all prompts passed to Generate calls
		Prompts []generation.Prompt
	}
}

// Generate implements the generation.Gateway interface
func (m *MockGateway) Generate(ctx context.Context, prompt generation.Prompt) (string, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Prompts = append(m.GenerateCalls.Prompts, prompt)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt)
	}

	return m.Response, m.Err
}

// CallCount returns the number of Generate calls so far.
func (m *MockGateway) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// NewMockGatewayWithResponse creates a MockGateway that returns raw provider output
func NewMockGatewayWithResponse(response string) *MockGateway {
	return &MockGateway{Response: response}
}

// NewMockGatewayWithError creates a MockGateway that returns the specified error
func NewMockGatewayWithError(err error) *MockGateway {
	return &MockGateway{Err: err}
}

// MockGatewayNotConfigured simulates a provider whose credential is missing
func MockGatewayNotConfigured() *MockGateway {
	return NewMockGatewayWithError(domain.NewConfigurationError(generation.MsgNotConfigured, nil))
}

// MockGatewayUnreachable simulates a network failure reaching the provider
func MockGatewayUnreachable() *MockGateway {
	return NewMockGatewayWithError(domain.NewTransportError(generation.MsgGenerationFailed, context.DeadlineExceeded))
}

// Reset resets the call tracking state
func (m *MockGateway) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Prompts = nil
}

// MockFlashcardGenerator stands in for a generation.Pipeline in handler tests
type MockFlashcardGenerator struct {
	GenerateFn func(ctx context.Context, text string) (*generation.Result, error)

	mu    sync.Mutex
	Texts []string
}

// Generate records the text and delegates to GenerateFn
func (m *MockFlashcardGenerator) Generate(ctx context.Context, text string) (*generation.Result, error) {
	m.mu.Lock()
	m.Texts = append(m.Texts, text)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, text)
	}
	return &generation.Result{Flashcards: []domain.Card{}, Count: 0}, nil
}
