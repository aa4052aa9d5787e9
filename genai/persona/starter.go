package persona

import "strings"

const (
	DefaultStarterCount = 3
	MaxStarterCount     = 10
)

// StarterSource tells whether starters were stored on the persona or generated.
type StarterSource string

const (
	StarterSourceExisting  StarterSource = "existing"
	StarterSourceGenerated StarterSource = "generated"
)

// Starters is a list of opening questions for a persona. Provider and Model
// are set for generated starters.
type Starters struct {
	Starters []string      `json:"starters"`
	Source   StarterSource `json:"source"`
	Provider string        `json:"provider,omitempty"`
	Model    string        `json:"model,omitempty"`
}

// ClampStarterCount maps a requested count into 1..MaxStarterCount; zero or
// negative yields the default.
func ClampStarterCount(count int) int {
	switch {
	case count <= 0:
		return DefaultStarterCount
	case count > MaxStarterCount:
		return MaxStarterCount
	}
	return count
}

// ParseStarters splits generated text on line breaks, trims each line,
// drops empty ones and keeps at most count.
func ParseStarters(text string, count int) []string {
	ret := make([]string, 0, count)
	for _, line := range strings.Split(text, "\n") {
		if len(ret) == count {
			break
		}
		if line = strings.TrimSpace(line); line != "" {
			ret = append(ret, line)
		}
	}
	return ret
}

// Existing returns up to count stored starters.
func (p *Persona) Existing(count int) []string {
	if count > len(p.ConversationStarters) {
		count = len(p.ConversationStarters)
	}
	return append([]string{}, p.ConversationStarters[:count]...)
}
