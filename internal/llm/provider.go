package llm

import (
	"context"
)

// Message is one chat message sent to the completion API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles understood by OpenAI-compatible completion APIs.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// CompletionProvider is the boundary to the external chat-completion API.
// One call to Complete is exactly one request/response exchange: no retries,
// no streaming, no multi-turn memory.
type CompletionProvider interface {
	// Complete sends the messages and returns the raw text content of the
	// model's first choice.
	Complete(ctx context.Context, messages []Message) (string, error)

	// ModelInfo returns metadata about the configured model.
	ModelInfo() ModelInfo
}

// ModelInfo describes the configured completion model.
type ModelInfo struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
}
