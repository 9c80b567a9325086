package llm

import (
	"context"
	"fmt"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a single chat-style request to the provider.
// Temperature overrides the client's configured sampling temperature when
// set. JSONMode asks the provider for a JSON-object response where the
// provider supports it.
type CompletionRequest struct {
	Messages    []Message
	Temperature *float64
	JSONMode    bool
}

// Completer is implemented by model provider clients. Complete returns the
// raw text of the first completion, or an empty string if the provider
// returned no choices.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ProviderError wraps a non-success response from the provider.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Message)
}
