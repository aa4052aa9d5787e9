package llm

import "context"

// Provider wraps one vendor chat API behind a uniform contract.
//
// Send builds the ordered sequence system prompt, history, user message and
// returns the normalized reply. Test issues a minimal request to verify
// credentials and connectivity. Both return *errs.ProviderError on failure
// and never retry.
type Provider interface {
	ID() string
	Model() string
	Send(ctx context.Context, systemPrompt string, history []Message, userMessage string) (*Reply, error)
	Test(ctx context.Context) (*Probe, error)
}
