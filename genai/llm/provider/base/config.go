package base

import (
	"net/http"
	"strings"
	"time"
)

// Generation parameters shared by every vendor adapter.
const (
	MaxTokens        = 500
	Temperature      = 0.7
	PresencePenalty  = 0.1
	FrequencyPenalty = 0.1

	TestPrompt    = "Test connection"
	TestMaxTokens = 10

	DefaultTimeout = 60 * time.Second
)

// Config aggregates common client parameters used by all LLM providers. It is
// embedded into every concrete provider client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Model      string
	Timeout    time.Duration

	// UsageListener, when set, receives token usage for each successful call.
	UsageListener UsageListener
}

// Init fills defaults: a fresh HTTP client bounded by Timeout, or
// DefaultTimeout when unset.
func (c *Config) Init() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
}

// ClientOption mutates Config; providers wrap it so that callers use e.g.
// openai.WithBaseURL(...).
type ClientOption func(*Config)

// WithBaseURL overrides the default endpoint of the provider.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Config) {
		if baseURL != "" {
			c.BaseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Config) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}


// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithUsageListener registers a callback to receive token usage.
func WithUsageListener(l UsageListener) ClientOption {
	return func(c *Config) {
		c.UsageListener = l
	}
}

// IsPlaceholder reports whether a credential value is missing or still the
// sample value shipped in .env templates, e.g. your_google_api_key_here.
func IsPlaceholder(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	lower := strings.ToLower(value)
	return strings.HasPrefix(lower, "your_") && strings.HasSuffix(lower, "_here")
}
