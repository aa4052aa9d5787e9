// Package config loads service settings from the embedded defaults, an
// optional YAML document, .env files and the process environment, in that
// order of precedence.
package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/viant/afs"
	"github.com/viant/simupersona/genai/llm/provider"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultYAML []byte

type (
	Config struct {
		Port            int              `yaml:"port" json:"port"`
		DataURL         string           `yaml:"dataURL" json:"dataURL"`
		LogLevel        string           `yaml:"logLevel" json:"logLevel"`
		DefaultProvider string           `yaml:"defaultProvider" json:"defaultProvider"`
		Providers       provider.Configs `yaml:"providers" json:"providers"`
		CORS            CORS             `yaml:"cors" json:"cors"`
		RateLimit       RateLimits       `yaml:"rateLimit" json:"rateLimit"`
	}

	CORS struct {
		AllowedOrigins        []string `yaml:"allowedOrigins" json:"allowedOrigins"`
		AllowedOriginSuffixes []string `yaml:"allowedOriginSuffixes" json:"allowedOriginSuffixes"`
	}

	// RateLimit allows MaxRequests per WindowMs for each client.
	RateLimit struct {
		WindowMs    int `yaml:"windowMs" json:"windowMs"`
		MaxRequests int `yaml:"maxRequests" json:"maxRequests"`
	}

	RateLimits struct {
		General RateLimit `yaml:"general" json:"general"`
		Chat    RateLimit `yaml:"chat" json:"chat"`
		Persona RateLimit `yaml:"persona" json:"persona"`
		Test    RateLimit `yaml:"test" json:"test"`
	}
)

// Window returns the limit window.
func (r RateLimit) Window() time.Duration {
	return time.Duration(r.WindowMs) * time.Millisecond
}

// Enabled reports whether the limit is active.
func (r RateLimit) Enabled() bool {
	return r.WindowMs > 0 && r.MaxRequests > 0
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultYAML, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode default config: %w", err)
	}
	return cfg, nil
}

// Load builds the configuration. URL, when set, points to a YAML document
// overlaying the defaults; envFiles are loaded with godotenv (missing files
// are ignored) before environment overrides are applied.
func Load(ctx context.Context, URL string, envFiles ...string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if URL != "" {
		data, err := afs.New().DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
		}
	}
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, name := range files {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("failed to load %v: %w", name, err)
		}
	}
	return nil
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(lookup LookupFunc) {
	get := func(key string) string {
		value, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(value)
	}
	setString := func(dest *string, key string) {
		if value := get(key); value != "" {
			*dest = value
		}
	}
	setInt := func(dest *int, key string) {
		if value, err := strconv.Atoi(get(key)); err == nil && value > 0 {
			*dest = value
		}
	}

	setInt(&c.Port, "PORT")
	setString(&c.DataURL, "DATA_URL")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.DefaultProvider, "DEFAULT_AI_PROVIDER")
	setInt(&c.RateLimit.General.WindowMs, "RATE_LIMIT_WINDOW_MS")
	setInt(&c.RateLimit.General.MaxRequests, "RATE_LIMIT_MAX_REQUESTS")

	openai := c.Providers.Ensure(provider.ProviderOpenAI)
	setString(&openai.Options.APIKey, "OPENAI_API_KEY")

	azure := c.Providers.Ensure(provider.ProviderAzure)
	setString(&azure.Options.URL, "AZURE_OPENAI_ENDPOINT")
	setString(&azure.Options.APIKey, "AZURE_OPENAI_API_KEY")
	setString(&azure.Options.APIVersion, "AZURE_OPENAI_API_VERSION")
	setString(&azure.Options.Model, "AZURE_OPENAI_DEPLOYMENT_NAME")

	gemini := c.Providers.Ensure(provider.ProviderGeminiAI)
	setString(&gemini.Options.APIKey, "GOOGLE_API_KEY")
	setString(&gemini.Options.Model, "GEMINI_MODEL")
}
