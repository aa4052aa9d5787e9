package provider

import (
	"time"

	basecfg "github.com/viant/simupersona/genai/llm/provider/base"
)

type Options struct {
	Model      string `yaml:"model,omitempty" json:"model,omitempty"`
	APIKey     string `yaml:"apiKey,omitempty" json:"-"`
	APIKeyURL  string `yaml:"apiKeyURL,omitempty" json:"apiKeyURL,omitempty"`
	URL        string `yaml:"url,omitempty" json:"url,omitempty"`
	APIVersion string `yaml:"apiVersion,omitempty" json:"apiVersion,omitempty"`
	// TimeoutSec bounds each vendor call; zero means 60 seconds.
	TimeoutSec    int                   `yaml:"timeoutSec,omitempty" json:"timeoutSec,omitempty"`
	UsageListener basecfg.UsageListener `yaml:"-" json:"-"`
}

// Timeout returns the configured call timeout.
func (o *Options) Timeout() time.Duration {
	if o.TimeoutSec <= 0 {
		return basecfg.DefaultTimeout
	}
	return time.Duration(o.TimeoutSec) * time.Second
}
