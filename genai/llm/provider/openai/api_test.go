package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/llm"
)

// roundTripFunc allows using a function as an HTTP RoundTripper.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(status int, body string, captured *Request, header *http.Header, opts ...ClientOption) *Client {
	httpClient := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if header != nil {
				*header = req.Header.Clone()
			}
			if captured != nil {
				data, _ := io.ReadAll(req.Body)
				_ = json.Unmarshal(data, captured)
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     make(http.Header),
			}, nil
		}),
	}
	options := append([]ClientOption{WithBaseURL("http://localhost"), WithHTTPClient(httpClient)}, opts...)
	return NewClient("apiKey", "", options...)
}

func TestClient_Send(t *testing.T) {
	testCases := []struct {
		name          string
		status        int
		respBody      string
		expectedReply *llm.Reply
		expectErr     string
	}{
		{
			name:          "success",
			status:        http.StatusOK,
			respBody:      `{"id":"id","object":"chat.completion","created":0,"model":"gpt-3.5-turbo-0125","choices":[{"index":0,"message":{"role":"assistant","content":" Hello there "},"finish_reason":"stop"}],"usage":{"prompt_tokens":5,"completion_tokens":6,"total_tokens":11}}`,
			expectedReply: &llm.Reply{Text: "Hello there", Model: "gpt-3.5-turbo-0125", TokensUsed: 11},
		},
		{
			name:          "missing usage",
			status:        http.StatusOK,
			respBody:      `{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`,
			expectedReply: &llm.Reply{Text: "hi", Model: DefaultModel},
		},
		{
			name:      "vendor error",
			status:    http.StatusUnauthorized,
			respBody:  `{"error":{"message":"bad key"}}`,
			expectErr: `openai: OpenAI API error (status 401): {"error":{"message":"bad key"}}`,
		},
		{
			name:      "vendor error echoing key",
			status:    http.StatusUnauthorized,
			respBody:  `{"error":{"message":"Incorrect API key provided: sk-abcdefghijkl"}}`,
			expectErr: `openai: OpenAI API error (status 401): {"error":{"message":"Incorrect API key provided: ***REDACTED***"}}`,
		},
		{
			name:      "no choices",
			status:    http.StatusOK,
			respBody:  `{"choices":[]}`,
			expectErr: "openai: no choices in response",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var usage int
			client := newTestClient(tc.status, tc.respBody, nil, nil, WithUsageListener(func(provider, model string, tokens int) {
				usage = tokens
			}))
			reply, err := client.Send(context.Background(), "be nice", nil, "Hi")
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.True(t, errs.IsProvider(err))
				assert.EqualValues(t, tc.expectErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.expectedReply, reply)
			assert.EqualValues(t, tc.expectedReply.TokensUsed, usage)
		})
	}
}

func TestClient_Send_Request(t *testing.T) {
	var captured Request
	var header http.Header
	client := newTestClient(http.StatusOK, `{"choices":[{"message":{"content":"ok"}}]}`, &captured, &header)
	history := []llm.Message{llm.NewUserMessage("first"), llm.NewAssistantMessage("second")}
	_, err := client.Send(context.Background(), "system", history, "third")
	require.NoError(t, err)

	assert.EqualValues(t, "Bearer apiKey", header.Get("Authorization"))
	assert.EqualValues(t, DefaultModel, captured.Model)
	assert.EqualValues(t, 500, captured.MaxTokens)
	require.NotNil(t, captured.Temperature)
	assert.InDelta(t, 0.7, *captured.Temperature, 1e-9)
	assert.InDelta(t, 0.1, *captured.PresencePenalty, 1e-9)
	assert.InDelta(t, 0.1, *captured.FrequencyPenalty, 1e-9)
	assert.EqualValues(t, []Message{
		{Role: "system", Content: "system"},
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}, captured.Messages)
}

func TestClient_Test(t *testing.T) {
	var captured Request
	client := newTestClient(http.StatusOK, `{"model":"gpt-x","choices":[{"message":{"content":"Connection OK"}}]}`, &captured, nil)
	probe, err := client.Test(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, &llm.Probe{Model: "gpt-x", SampleText: "Connection OK"}, probe)
	assert.EqualValues(t, 10, captured.MaxTokens)
	assert.EqualValues(t, []Message{{Role: "user", Content: "Test connection"}}, captured.Messages)
}

func TestClient_MissingKey(t *testing.T) {
	client := NewClient("", "")
	_, err := client.Send(context.Background(), "", nil, "Hi")
	assert.True(t, errs.IsProvider(err))
}
