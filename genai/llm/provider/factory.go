package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/viant/scy/cred/secret"
	"github.com/viant/simupersona/genai/llm"
	"github.com/viant/simupersona/genai/llm/provider/azure"
	"github.com/viant/simupersona/genai/llm/provider/base"
	"github.com/viant/simupersona/genai/llm/provider/gemini"
	"github.com/viant/simupersona/genai/llm/provider/openai"
	"github.com/viant/simupersona/internal/log"
)

// ErrNotConfigured is returned when a provider lacks usable credentials.
var ErrNotConfigured = errors.New("credentials not configured")

type Factory struct {
	secrets *secret.Service
	// HTTPClient, when set, is shared by every created adapter.
	HTTPClient *http.Client
	// UsageListener is used by adapters whose options carry none.
	UsageListener base.UsageListener
}

// CreateProvider builds the adapter for cfg. It returns ErrNotConfigured when
// credentials are missing or still placeholders.
func (f *Factory) CreateProvider(ctx context.Context, cfg *Config) (llm.Provider, error) {
	if cfg == nil || cfg.ID == "" {
		return nil, fmt.Errorf("provider was empty")
	}
	options := cfg.Options
	if options.UsageListener == nil {
		options.UsageListener = f.UsageListener
	}
	apiKey, err := f.apiKey(ctx, &options)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %v API key: %w", cfg.ID, err)
	}
	switch cfg.ID {
	case ProviderOpenAI:
		if base.IsPlaceholder(apiKey) {
			return nil, ErrNotConfigured
		}
		return openai.NewClient(apiKey, options.Model,
			openai.WithBaseURL(options.URL),
			openai.WithHTTPClient(f.HTTPClient),
			openai.WithTimeout(options.Timeout()),
			openai.WithUsageListener(options.UsageListener)), nil
	case ProviderAzure:
		if base.IsPlaceholder(apiKey) || base.IsPlaceholder(options.URL) || options.Model == "" {
			return nil, ErrNotConfigured
		}
		return azure.NewClient(options.URL, apiKey, options.Model,
			azure.WithAPIVersion(options.APIVersion),
			azure.WithHTTPClient(f.HTTPClient),
			azure.WithTimeout(options.Timeout()),
			azure.WithUsageListener(options.UsageListener)), nil
	case ProviderGeminiAI:
		if base.IsPlaceholder(apiKey) {
			return nil, ErrNotConfigured
		}
		return gemini.NewClient(ctx, apiKey, options.Model,
			gemini.WithBaseURL(options.URL),
			gemini.WithHTTPClient(f.HTTPClient),
			gemini.WithTimeout(options.Timeout()),
			gemini.WithUsageListener(options.UsageListener))
	default:
		return nil, fmt.Errorf("unsupported provider: %v", cfg.ID)
	}
}

// NewRegistry creates every configured provider that has credentials and
// registers them in configs order.
func (f *Factory) NewRegistry(ctx context.Context, configs Configs, defaultID string) *Registry {
	var providers []llm.Provider
	for _, cfg := range configs {
		p, err := f.CreateProvider(ctx, cfg)
		switch {
		case errors.Is(err, ErrNotConfigured):
			log.Debugf("provider %v skipped: %v", cfg.ID, err)
			continue
		case err != nil:
			log.Warnf("provider %v unavailable: %v", cfg.ID, err)
			continue
		}
		log.Infof("provider %v initialized (model %v)", p.ID(), p.Model())
		providers = append(providers, p)
	}
	if len(providers) == 0 {
		log.Warnf("no AI providers are configured")
	}
	return NewRegistry(defaultID, providers...)
}

func (f *Factory) apiKey(ctx context.Context, options *Options) (string, error) {
	if options.APIKeyURL == "" {
		return options.APIKey, nil
	}
	key, err := f.secrets.GeyKey(ctx, options.APIKeyURL)
	if err != nil {
		return "", err
	}
	return key.Secret, nil
}

func New() *Factory {
	return &Factory{secrets: secret.New()}
}
