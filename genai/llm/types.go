package llm

import (
	"fmt"
	"time"
)

// MessageRole represents the role of the message sender.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

func (m MessageRole) String() string {
	return string(m)
}

// IsConversational reports whether the role may appear in caller supplied history.
func (m MessageRole) IsConversational() bool {
	return m == RoleUser || m == RoleAssistant
}

// Message is a single conversation turn.
type Message struct {
	Role    MessageRole `json:"role" yaml:"role"`
	Content string      `json:"content" yaml:"content"`
}

// NewUserMessage creates a new message with the "user" role.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewSystemMessage creates a new message with the "system" role.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewAssistantMessage creates a new message with the "assistant" role.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// MaxHistory is the number of history entries forwarded to a provider.
const MaxHistory = 20

// TruncateHistory keeps the most recent limit entries, preserving order.
func TruncateHistory(history []Message, limit int) []Message {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}

// ValidateHistory checks roles of caller supplied history.
func ValidateHistory(history []Message) error {
	for i, msg := range history {
		if !msg.Role.IsConversational() {
			return fmt.Errorf("conversation history[%d]: role must be one of user, assistant, got %q", i, msg.Role)
		}
	}
	return nil
}

// Reply is the normalized output of a single adapter Send call.
type Reply struct {
	Text       string `json:"text"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokensUsed"`
}

// Probe is the normalized output of an adapter connection test.
type Probe struct {
	Model      string `json:"model"`
	SampleText string `json:"sampleText"`
}

// Result is the orchestrator output for one generation.
type Result struct {
	Text       string    `json:"text"`
	ProviderID string    `json:"providerId"`
	ModelID    string    `json:"modelId"`
	TokensUsed int       `json:"tokensUsed"`
	Timestamp  time.Time `json:"timestamp"`
}

// TestResult reports a connection test. Failures are carried in Error
// rather than returned as a Go error.
type TestResult struct {
	Success    bool   `json:"success"`
	ProviderID string `json:"providerId"`
	ModelID    string `json:"modelId,omitempty"`
	SampleText string `json:"sampleText,omitempty"`
	Error      string `json:"error,omitempty"`
}
