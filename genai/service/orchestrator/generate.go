package orchestrator

import (
	"context"
	"time"

	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/llm"
	"github.com/viant/simupersona/genai/persona"
	"github.com/viant/simupersona/internal/log"
)

type callInput struct {
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	PersonaID   string `json:"personaId,omitempty"`
	Message     string `json:"message"`
	HistorySize int    `json:"historySize"`
}

type callOutput struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokensUsed,omitempty"`
	ElapsedMs  int64  `json:"elapsedMs"`
	Error      string `json:"error,omitempty"`
}

// Generate produces one in-character reply. An empty providerID selects the
// default; an unavailable one is rejected with *errs.UnsupportedProviderError.
// History beyond llm.MaxHistory entries is dropped from the oldest end.
func (s *Service) Generate(ctx context.Context, p *persona.Persona, userMessage, providerID string, history []llm.Message) (*llm.Result, error) {
	provider, err := s.registry.Resolve(providerID)
	if err != nil {
		return nil, err
	}
	history = llm.TruncateHistory(history, llm.MaxHistory)
	reply, err := s.send(ctx, provider, p.ID, persona.Compile(p), history, userMessage)
	if err != nil {
		return nil, err
	}
	return &llm.Result{
		Text:       reply.Text,
		ProviderID: provider.ID(),
		ModelID:    reply.Model,
		TokensUsed: reply.TokensUsed,
		Timestamp:  s.now(),
	}, nil
}

// Preview generates a reply without conversation history.
func (s *Service) Preview(ctx context.Context, p *persona.Persona, userMessage, providerID string) (*llm.Result, error) {
	return s.Generate(ctx, p, userMessage, providerID, nil)
}

func (s *Service) send(ctx context.Context, provider llm.Provider, personaID, systemPrompt string, history []llm.Message, userMessage string) (*llm.Reply, error) {
	log.Publish(log.NewEvent(log.LLMInput, &callInput{
		Provider:    provider.ID(),
		Model:       provider.Model(),
		PersonaID:   personaID,
		Message:     userMessage,
		HistorySize: len(history),
	}))
	started := time.Now()
	reply, err := provider.Send(ctx, systemPrompt, history, userMessage)
	output := &callOutput{Provider: provider.ID(), Model: provider.Model(), ElapsedMs: time.Since(started).Milliseconds()}
	if err != nil {
		output.Error = err.Error()
		log.Publish(log.NewEvent(log.LLMError, output))
		log.Errorf("%v generation failed: %v", provider.ID(), err)
		return nil, &errs.GenerationError{Provider: provider.ID(), Err: err}
	}
	if reply.Model == "" {
		reply.Model = provider.Model()
	}
	output.Model = reply.Model
	output.TokensUsed = reply.TokensUsed
	log.Publish(log.NewEvent(log.LLMOutput, output))
	log.Debugf("%v replied in %dms (%d tokens)", provider.ID(), output.ElapsedMs, reply.TokensUsed)
	return reply, nil
}
