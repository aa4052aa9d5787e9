package orchestrator

import (
	"context"

	"github.com/viant/simupersona/genai/persona"
)

// Starters returns up to count opening questions. Stored starters win;
// otherwise the default provider generates them.
func (s *Service) Starters(ctx context.Context, p *persona.Persona, count int) (*persona.Starters, error) {
	count = persona.ClampStarterCount(count)
	if len(p.ConversationStarters) > 0 {
		return &persona.Starters{Starters: p.Existing(count), Source: persona.StarterSourceExisting}, nil
	}
	result, err := s.Generate(ctx, p, persona.StarterPrompt(p, count), "", nil)
	if err != nil {
		return nil, err
	}
	return &persona.Starters{
		Starters: persona.ParseStarters(result.Text, count),
		Source:   persona.StarterSourceGenerated,
		Provider: result.ProviderID,
		Model:    result.ModelID,
	}, nil
}
