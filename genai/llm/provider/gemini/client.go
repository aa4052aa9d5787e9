// Package gemini implements the Google Gemini adapter on the genai SDK.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/llm"
	basecfg "github.com/viant/simupersona/genai/llm/provider/base"
	"google.golang.org/genai"
)

const (
	// ProviderID identifies the Gemini adapter.
	ProviderID = "gemini"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-1.5-flash"
)

// Client wraps a genai client bound to one model.
type Client struct {
	basecfg.Config
	APIKey string
	client *genai.Client
}

// ClientOption mutates a Gemini Client instance.
type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { basecfg.WithBaseURL(baseURL)(&c.Config) }
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { basecfg.WithHTTPClient(httpClient)(&c.Config) }
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { basecfg.WithTimeout(timeout)(&c.Config) }
}

// WithUsageListener assigns token usage listener to the client.
func WithUsageListener(l basecfg.UsageListener) ClientOption {
	return func(c *Client) { c.Config.UsageListener = l }
}

// NewClient creates a Gemini client for apiKey and model.
func NewClient(ctx context.Context, apiKey, model string, options ...ClientOption) (*Client, error) {
	ret := &Client{
		Config: basecfg.Config{Model: model},
		APIKey: apiKey,
	}
	for _, option := range options {
		option(ret)
	}
	if ret.Config.Model == "" {
		ret.Config.Model = DefaultModel
	}
	ret.Config.Init()
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: ret.HTTPClient,
	}
	if ret.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: ret.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	ret.client = client
	return ret, nil
}

// ID returns the provider identifier.
func (c *Client) ID() string { return ProviderID }

// Model returns the configured model.
func (c *Client) Model() string { return c.Config.Model }

// Send generates a reply from the linearized conversation transcript.
func (c *Client) Send(ctx context.Context, systemPrompt string, history []llm.Message, userMessage string) (*llm.Reply, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(basecfg.Temperature)),
		MaxOutputTokens: basecfg.MaxTokens,
	}
	reply, err := c.generate(ctx, Transcript(systemPrompt, history, userMessage), config)
	if err != nil {
		return nil, err
	}
	c.UsageListener.OnUsage(ProviderID, reply.Model, reply.TokensUsed)
	return reply, nil
}

// Test issues a minimal request to verify credentials and connectivity.
func (c *Client) Test(ctx context.Context) (*llm.Probe, error) {
	reply, err := c.generate(ctx, basecfg.TestPrompt, &genai.GenerateContentConfig{MaxOutputTokens: basecfg.TestMaxTokens})
	if err != nil {
		return nil, err
	}
	return &llm.Probe{Model: reply.Model, SampleText: reply.Text}, nil
}

func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*llm.Reply, error) {
	if c.client == nil {
		return nil, errs.NewProviderError(ProviderID, fmt.Errorf("client not initialized"))
	}
	res, err := c.client.Models.GenerateContent(ctx, c.Config.Model, genai.Text(prompt), config)
	if err != nil {
		return nil, errs.NewProviderError(ProviderID, err)
	}
	text, ok := candidateText(res)
	if !ok {
		return nil, errs.NewProviderError(ProviderID, fmt.Errorf("no candidates in response"))
	}
	ret := &llm.Reply{Text: strings.TrimSpace(text), Model: c.Config.Model}
	if res.UsageMetadata != nil {
		ret.TokensUsed = int(res.UsageMetadata.TotalTokenCount)
	}
	return ret, nil
}

func candidateText(res *genai.GenerateContentResponse) (string, bool) {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", false
	}
	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), true
}
