package gemini

import (
	"strings"

	"github.com/viant/simupersona/genai/llm"
)

// Transcript linearizes a conversation into a single prompt: the system
// prompt, a "Previous conversation:" block when history is present, then the
// pending user turn with an open assistant slot.
func Transcript(systemPrompt string, history []llm.Message, userMessage string) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")
	if len(history) > 0 {
		sb.WriteString("Previous conversation:\n")
		for _, msg := range history {
			speaker := "Human"
			if msg.Role == llm.RoleAssistant {
				speaker = "Assistant"
			}
			sb.WriteString(speaker)
			sb.WriteString(": ")
			sb.WriteString(msg.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Human: ")
	sb.WriteString(userMessage)
	sb.WriteString("\nAssistant:")
	return sb.String()
}
