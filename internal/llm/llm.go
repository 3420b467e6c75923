package llm

import (
	"context"
	"encoding/json"
)

// GenerateInput carries one generation request to a text model.
type GenerateInput struct {
	// System is an optional role instruction prepended to the conversation.
	System string
	// Prompt is the user-level prompt.
	Prompt string
	// Schema optionally constrains the output to a JSON schema.
	Schema json.RawMessage
}

// Client abstracts generative-text providers. Implementations must honor
// context cancellation and carry their own transport timeout.
type Client interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
}
