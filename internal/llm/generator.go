package llm

import (
	"context"
	"fmt"

	"voice-chatter/internal/history"
)

// ContextWindow is how many recent turns the generator feeds into the prompt.
// Retention in the history store is wider; generation trades memory depth for
// token cost.
const ContextWindow = 10

// Generator builds a context-aware prompt from recent history plus the
// current input and asks the completion client for a reply.
type Generator struct {
	client  Client
	persona string
	window  int
}

func NewGenerator(client Client, persona string) *Generator {
	if persona == "" {
		persona = DefaultPersona
	}
	return &Generator{client: client, persona: persona, window: ContextWindow}
}

// Reply returns the model's completion verbatim, untrimmed and unfiltered.
func (g *Generator) Reply(ctx context.Context, input string, turns []history.Turn) (string, error) {
	prompt := BuildPrompt(g.persona, turns, g.window, input)
	reply, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return reply, nil
}
