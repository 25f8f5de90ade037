package mocks

import (
	"context"
	"sync"

	"chartassist-api/internal/llm"
)

// MockCompletionProvider is a scriptable CompletionProvider. Responses are
// either served from a FIFO queue or computed by CompleteFunc when set.
// Safe for concurrent use (the batch suggest path calls it from multiple
// goroutines).
type MockCompletionProvider struct {
	mu sync.Mutex

	// CompleteFunc, when set, fully controls each call's result.
	CompleteFunc func(ctx context.Context, messages []llm.Message) (string, error)

	queue []completionResult
	calls [][]llm.Message
}

type completionResult struct {
	text string
	err  error
}

// NewMockCompletionProvider creates an empty mock provider.
func NewMockCompletionProvider() *MockCompletionProvider {
	return &MockCompletionProvider{}
}

// EnqueueResponse queues a successful completion text.
func (m *MockCompletionProvider) EnqueueResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, completionResult{text: text})
}

// EnqueueError queues a failed completion.
func (m *MockCompletionProvider) EnqueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, completionResult{err: err})
}

// Complete implements llm.CompletionProvider.
func (m *MockCompletionProvider) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, messages)
	fn := m.CompleteFunc
	var next completionResult
	hasQueued := len(m.queue) > 0
	if fn == nil && hasQueued {
		next = m.queue[0]
		m.queue = m.queue[1:]
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}
	if hasQueued {
		return next.text, next.err
	}

	// Default: an empty selection envelope.
	return `{"chosen_charts": []}`, nil
}

// ModelInfo implements llm.CompletionProvider.
func (m *MockCompletionProvider) ModelInfo() llm.ModelInfo {
	return llm.ModelInfo{
		Name:    "mock-model",
		BaseURL: "http://mock.local/v1",
	}
}

// Calls returns the message sets passed to Complete so far.
func (m *MockCompletionProvider) Calls() [][]llm.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([][]llm.Message, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns how many times Complete was invoked.
func (m *MockCompletionProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
