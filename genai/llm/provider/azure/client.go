// Package azure implements the Azure OpenAI adapter. It speaks the OpenAI
// chat completions wire format against a deployment scoped endpoint.
package azure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/llm"
	basecfg "github.com/viant/simupersona/genai/llm/provider/base"
	"github.com/viant/simupersona/genai/llm/provider/openai"
)

const (
	// ProviderID identifies the Azure OpenAI adapter.
	ProviderID = "azure"
	// DefaultAPIVersion is used when no api version is configured.
	DefaultAPIVersion = "2024-02-15-preview"
)

// Client represents an Azure OpenAI deployment client. Model holds the
// deployment name.
type Client struct {
	basecfg.Config
	APIKey     string
	APIVersion string
}

// ClientOption mutates an Azure Client instance.
type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { basecfg.WithHTTPClient(httpClient)(&c.Config) }
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { basecfg.WithTimeout(timeout)(&c.Config) }
}

func WithAPIVersion(version string) ClientOption {
	return func(c *Client) {
		if version != "" {
			c.APIVersion = version
		}
	}
}

// WithUsageListener assigns token usage listener to the client.
func WithUsageListener(l basecfg.UsageListener) ClientOption {
	return func(c *Client) { c.Config.UsageListener = l }
}

// NewClient creates a client for endpoint and deployment.
func NewClient(endpoint, apiKey, deployment string, options ...ClientOption) *Client {
	client := &Client{
		Config: basecfg.Config{
			BaseURL: strings.TrimRight(endpoint, "/"),
			Model:   deployment,
		},
		APIKey:     apiKey,
		APIVersion: DefaultAPIVersion,
	}
	for _, option := range options {
		option(client)
	}
	client.Config.Init()
	return client
}

// ID returns the provider identifier.
func (c *Client) ID() string { return ProviderID }

// Model returns the deployment name.
func (c *Client) Model() string { return c.Config.Model }

// Send posts the persona conversation to the deployment.
func (c *Client) Send(ctx context.Context, systemPrompt string, history []llm.Message, userMessage string) (*llm.Reply, error) {
	resp, err := c.call(ctx, openai.NewRequest("", systemPrompt, history, userMessage))
	if err != nil {
		return nil, err
	}
	reply, err := openai.ToReply(resp, c.Config.Model)
	if err != nil {
		return nil, errs.NewProviderError(ProviderID, err)
	}
	c.UsageListener.OnUsage(ProviderID, reply.Model, reply.TokensUsed)
	return reply, nil
}

// Test issues a minimal request to verify credentials and connectivity.
func (c *Client) Test(ctx context.Context) (*llm.Probe, error) {
	resp, err := c.call(ctx, openai.NewTestRequest(""))
	if err != nil {
		return nil, err
	}
	reply, err := openai.ToReply(resp, c.Config.Model)
	if err != nil {
		return nil, errs.NewProviderError(ProviderID, err)
	}
	return &llm.Probe{Model: reply.Model, SampleText: reply.Text}, nil
}

func (c *Client) completionsURL() string {
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.BaseURL, url.PathEscape(c.Config.Model), url.QueryEscape(c.APIVersion))
}

func (c *Client) call(ctx context.Context, req *openai.Request) (*openai.Response, error) {
	if c.APIKey == "" || c.BaseURL == "" || c.Config.Model == "" {
		return nil, errs.NewProviderError(ProviderID, fmt.Errorf("endpoint, API key and deployment are required"))
	}
	httpReq, err := openai.NewHTTPRequest(ctx, c.completionsURL(), req)
	if err != nil {
		return nil, errs.NewProviderError(ProviderID, err)
	}
	httpReq.Header.Set("api-key", c.APIKey)
	resp, err := openai.Do(c.HTTPClient, httpReq, "Azure OpenAI")
	if err != nil {
		return nil, errs.NewProviderError(ProviderID, err)
	}
	return resp, nil
}
