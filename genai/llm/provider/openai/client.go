package openai

import (
	basecfg "github.com/viant/simupersona/genai/llm/provider/base"
)

const (
	// ProviderID identifies the OpenAI adapter.
	ProviderID = "openai"
	// DefaultModel is used when no model is configured.
	DefaultModel   = "gpt-3.5-turbo"
	openAIEndpoint = "https://api.openai.com/v1"
)

// Client represents an OpenAI API client
type Client struct {
	basecfg.Config
	APIKey string
}

// NewClient creates a new OpenAI client with the given API key and model
func NewClient(apiKey, model string, options ...ClientOption) *Client {
	client := &Client{
		Config: basecfg.Config{
			BaseURL: openAIEndpoint,
			Model:   model,
		},
		APIKey: apiKey,
	}
	for _, option := range options {
		option(client)
	}
	if client.Config.Model == "" {
		client.Config.Model = DefaultModel
	}
	client.Config.Init()
	return client
}

// ID returns the provider identifier.
func (c *Client) ID() string { return ProviderID }

// Model returns the configured model.
func (c *Client) Model() string { return c.Config.Model }
