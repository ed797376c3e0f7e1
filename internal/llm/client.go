package llm

import "context"

// Client produces a completion for a single flattened prompt. The whole
// conversation context is carried inside the prompt string itself.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
