package openai

import (
	"fmt"
	"strings"

	"github.com/viant/simupersona/genai/llm"
	"github.com/viant/simupersona/genai/llm/provider/base"
)

// NewRequest builds a chat request with the shared generation parameters:
// system prompt first, history in order, user message last.
func NewRequest(model, systemPrompt string, history []llm.Message, userMessage string) *Request {
	messages := make([]Message, 0, len(history)+2)
	if systemPrompt != "" {
		messages = append(messages, Message{Role: llm.RoleSystem.String(), Content: systemPrompt})
	}
	for _, msg := range history {
		messages = append(messages, Message{Role: msg.Role.String(), Content: msg.Content})
	}
	messages = append(messages, Message{Role: llm.RoleUser.String(), Content: userMessage})
	temperature, presence, frequency := base.Temperature, base.PresencePenalty, base.FrequencyPenalty
	return &Request{
		Model:            model,
		Messages:         messages,
		MaxTokens:        base.MaxTokens,
		Temperature:      &temperature,
		PresencePenalty:  &presence,
		FrequencyPenalty: &frequency,
	}
}

// NewTestRequest builds the minimal connectivity request.
func NewTestRequest(model string) *Request {
	return &Request{
		Model:     model,
		Messages:  []Message{{Role: llm.RoleUser.String(), Content: base.TestPrompt}},
		MaxTokens: base.TestMaxTokens,
	}
}

// ToReply converts an API response into a normalized reply. fallbackModel is
// used when the response omits the model.
func ToReply(resp *Response, fallbackModel string) (*llm.Reply, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}
	ret := &llm.Reply{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Model: resp.Model,
	}
	if ret.Model == "" {
		ret.Model = fallbackModel
	}
	if resp.Usage != nil {
		ret.TokensUsed = resp.Usage.TotalTokens
	}
	return ret, nil
}
