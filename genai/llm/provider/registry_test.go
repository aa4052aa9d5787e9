package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/llm"
)

type stubProvider struct{ id string }

func (s *stubProvider) ID() string    { return s.id }
func (s *stubProvider) Model() string { return s.id + "-model" }
func (s *stubProvider) Send(ctx context.Context, systemPrompt string, history []llm.Message, userMessage string) (*llm.Reply, error) {
	return &llm.Reply{Text: "ok", Model: s.Model()}, nil
}
func (s *stubProvider) Test(ctx context.Context) (*llm.Probe, error) {
	return &llm.Probe{Model: s.Model()}, nil
}

func TestNewRegistry_Default(t *testing.T) {
	testCases := []struct {
		description string
		defaultID   string
		providers   []llm.Provider
		expected    string
		available   []string
	}{
		{
			description: "configured default available",
			defaultID:   "gemini",
			providers:   []llm.Provider{&stubProvider{id: "openai"}, &stubProvider{id: "gemini"}},
			expected:    "gemini",
			available:   []string{"openai", "gemini"},
		},
		{
			description: "default corrected to first available",
			defaultID:   "openai",
			providers:   []llm.Provider{&stubProvider{id: "azure"}, &stubProvider{id: "gemini"}},
			expected:    "azure",
			available:   []string{"azure", "gemini"},
		},
		{
			description: "no providers keeps configured default",
			defaultID:   "openai",
			expected:    "openai",
			available:   []string{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			registry := NewRegistry(tc.defaultID, tc.providers...)
			assert.EqualValues(t, tc.expected, registry.Default())
			assert.EqualValues(t, tc.available, registry.Available())
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	registry := NewRegistry("openai", &stubProvider{id: "openai"}, &stubProvider{id: "azure"})

	p, err := registry.Resolve("")
	require.NoError(t, err)
	assert.EqualValues(t, "openai", p.ID())

	p, err = registry.Resolve("azure")
	require.NoError(t, err)
	assert.EqualValues(t, "azure", p.ID())

	got, ok := registry.Get("azure")
	require.True(t, ok)
	assert.Same(t, p, got)
	_, ok = registry.Get("gemini")
	assert.False(t, ok)

	_, err = registry.Resolve("gemini")
	var unsupported *errs.UnsupportedProviderError
	require.True(t, errors.As(err, &unsupported))
	assert.EqualValues(t, []string{"openai", "azure"}, unsupported.Available)

	_, err = NewRegistry("openai").Resolve("")
	assert.True(t, errors.Is(err, errs.ErrNoProviderConfigured))
}

func TestRegistry_SetDefault(t *testing.T) {
	registry := NewRegistry("openai", &stubProvider{id: "openai"}, &stubProvider{id: "gemini"})
	require.NoError(t, registry.SetDefault("gemini"))
	assert.EqualValues(t, "gemini", registry.Default())

	err := registry.SetDefault("azure")
	assert.True(t, errs.IsUnsupportedProvider(err))
	assert.EqualValues(t, "gemini", registry.Default())
}

func TestFactory_CreateProvider(t *testing.T) {
	testCases := []struct {
		description string
		config      *Config
		expectID    string
		expectErr   error
		anyErr      bool
	}{
		{description: "openai", config: &Config{ID: ProviderOpenAI, Options: Options{APIKey: "sk-1"}}, expectID: ProviderOpenAI},
		{description: "openai missing key", config: &Config{ID: ProviderOpenAI}, expectErr: ErrNotConfigured},
		{description: "azure", config: &Config{ID: ProviderAzure, Options: Options{APIKey: "k", URL: "https://x.openai.azure.com", Model: "dep"}}, expectID: ProviderAzure},
		{description: "azure placeholder endpoint", config: &Config{ID: ProviderAzure, Options: Options{APIKey: "k", URL: "your_azure_openai_endpoint_here", Model: "dep"}}, expectErr: ErrNotConfigured},
		{description: "azure missing deployment", config: &Config{ID: ProviderAzure, Options: Options{APIKey: "k", URL: "https://x.openai.azure.com"}}, expectErr: ErrNotConfigured},
		{description: "gemini placeholder key", config: &Config{ID: ProviderGeminiAI, Options: Options{APIKey: "your_google_api_key_here"}}, expectErr: ErrNotConfigured},
		{description: "gemini", config: &Config{ID: ProviderGeminiAI, Options: Options{APIKey: "g-1"}}, expectID: ProviderGeminiAI},
		{description: "unknown", config: &Config{ID: "bedrock"}, anyErr: true},
	}
	factory := New()
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			p, err := factory.CreateProvider(context.Background(), tc.config)
			switch {
			case tc.expectErr != nil:
				assert.True(t, errors.Is(err, tc.expectErr), err)
			case tc.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.EqualValues(t, tc.expectID, p.ID())
			}
		})
	}
}

func TestFactory_NewRegistry(t *testing.T) {
	configs := Configs{
		{ID: ProviderOpenAI},
		{ID: ProviderAzure, Options: Options{APIKey: "k", URL: "https://x.openai.azure.com", Model: "dep"}},
		{ID: ProviderGeminiAI, Options: Options{APIKey: "g"}},
	}
	registry := New().NewRegistry(context.Background(), configs, ProviderOpenAI)
	assert.EqualValues(t, []string{ProviderAzure, ProviderGeminiAI}, registry.Available())
	assert.EqualValues(t, ProviderAzure, registry.Default())
}
