package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/llm"
)

func TestTranscript(t *testing.T) {
	testCases := []struct {
		description string
		history     []llm.Message
		expected    string
	}{
		{
			description: "no history",
			expected:    "SYS\n\nHuman: hi\nAssistant:",
		},
		{
			description: "with history",
			history:     []llm.Message{llm.NewUserMessage("a"), llm.NewAssistantMessage("b")},
			expected:    "SYS\n\nPrevious conversation:\nHuman: a\nAssistant: b\n\nHuman: hi\nAssistant:",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.EqualValues(t, tc.expected, Transcript("SYS", tc.history, "hi"))
		})
	}
}

func TestClient_Send(t *testing.T) {
	testCases := []struct {
		description string
		status      int
		body        string
		expected    *llm.Reply
		expectErr   bool
	}{
		{
			description: "success",
			status:      http.StatusOK,
			body:        `{"candidates":[{"content":{"parts":[{"text":"hi there"}],"role":"model"}}],"usageMetadata":{"totalTokenCount":7}}`,
			expected:    &llm.Reply{Text: "hi there", Model: DefaultModel, TokensUsed: 7},
		},
		{
			description: "no usage",
			status:      http.StatusOK,
			body:        `{"candidates":[{"content":{"parts":[{"text":"hi"}],"role":"model"}}]}`,
			expected:    &llm.Reply{Text: "hi", Model: DefaultModel},
		},
		{
			description: "no candidates",
			status:      http.StatusOK,
			body:        `{"candidates":[]}`,
			expectErr:   true,
		},
		{
			description: "vendor error",
			status:      http.StatusBadRequest,
			body:        `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
			expectErr:   true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var path, payload string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				data, _ := io.ReadAll(r.Body)
				payload = string(data)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client, err := NewClient(context.Background(), "key", "", WithBaseURL(server.URL))
			require.NoError(t, err)
			reply, err := client.Send(context.Background(), "SYS", []llm.Message{llm.NewUserMessage("earlier")}, "now")

			assert.True(t, strings.HasSuffix(path, "/models/"+DefaultModel+":generateContent"), path)
			assert.Contains(t, payload, "Previous conversation:")
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errs.IsProvider(err))
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.expected, reply)
		})
	}
}

func TestClient_Test(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(data), "Test connection")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"OK"}],"role":"model"}}]}`))
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), "key", "gemini-pro", WithBaseURL(server.URL))
	require.NoError(t, err)
	probe, err := client.Test(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, &llm.Probe{Model: "gemini-pro", SampleText: "OK"}, probe)
}
