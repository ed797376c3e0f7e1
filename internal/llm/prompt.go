package llm

import (
	"strings"

	"voice-chatter/internal/history"
)

// DefaultPersona is the instruction prepended to every prompt unless the
// deployment overrides it.
const DefaultPersona = "You are a warm, funny companion chatting with a friend. " +
	"Keep replies conversational and short enough to listen to comfortably, " +
	"and feel free to joke around."

// BuildPrompt flattens the conversation into a single prompt string: persona
// instruction, then the last window turns rendered oldest-first as
// "<speaker>: <text>" lines, then the current input. Window is deliberately
// narrower than the store's retention bound.
func BuildPrompt(persona string, turns []history.Turn, window int, input string) string {
	if window > 0 && len(turns) > window {
		turns = turns[len(turns)-window:]
	}

	var b strings.Builder
	b.WriteString(persona)
	if len(turns) > 0 {
		b.WriteString("\n\nConversation so far:\n")
		for i, t := range turns {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(speakerLabel(t.Role))
			b.WriteString(": ")
			b.WriteString(t.Text)
		}
	}
	b.WriteString("\n\n")
	b.WriteString(input)
	return b.String()
}

func speakerLabel(role string) string {
	if role == history.RoleBot {
		return "Bot"
	}
	return "User"
}
