package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/llm"
	"github.com/viant/simupersona/genai/redact"
)

// Send posts the persona conversation to the chat completions endpoint.
func (c *Client) Send(ctx context.Context, systemPrompt string, history []llm.Message, userMessage string) (*llm.Reply, error) {
	req := NewRequest(c.Config.Model, systemPrompt, history, userMessage)
	resp, err := c.call(ctx, req)
	if err != nil {
		return nil, err
	}
	reply, err := ToReply(resp, req.Model)
	if err != nil {
		return nil, errs.NewProviderError(ProviderID, err)
	}
	c.UsageListener.OnUsage(ProviderID, reply.Model, reply.TokensUsed)
	return reply, nil
}

// Test issues a minimal request to verify credentials and connectivity.
func (c *Client) Test(ctx context.Context) (*llm.Probe, error) {
	req := NewTestRequest(c.Config.Model)
	resp, err := c.call(ctx, req)
	if err != nil {
		return nil, err
	}
	reply, err := ToReply(resp, req.Model)
	if err != nil {
		return nil, errs.NewProviderError(ProviderID, err)
	}
	return &llm.Probe{Model: reply.Model, SampleText: reply.Text}, nil
}

func (c *Client) call(ctx context.Context, req *Request) (*Response, error) {
	if c.APIKey == "" {
		return nil, errs.NewProviderError(ProviderID, fmt.Errorf("API key is required"))
	}
	httpReq, err := NewHTTPRequest(ctx, c.BaseURL+"/chat/completions", req)
	if err != nil {
		return nil, errs.NewProviderError(ProviderID, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := Do(c.HTTPClient, httpReq, "OpenAI")
	if err != nil {
		return nil, errs.NewProviderError(ProviderID, err)
	}
	return resp, nil
}

// NewHTTPRequest encodes req as a JSON POST to url.
func NewHTTPRequest(ctx context.Context, url string, req *Request) (*http.Request, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

// Do executes a chat completions request. Non 2xx statuses are reported with
// the vendor label, status code and body with key shaped tokens masked.
func Do(client *http.Client, httpReq *http.Request, vendor string) (*Response, error) {
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s API error (status %d): %s", vendor, resp.StatusCode, redact.Text(string(respBytes)))
	}
	var apiResp Response
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &apiResp, nil
}
