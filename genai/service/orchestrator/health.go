package orchestrator

import (
	"context"
	"time"

	"github.com/viant/simupersona/genai/llm"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// ProviderHealth is the probe outcome of one provider.
type ProviderHealth struct {
	Status string `json:"status"`
	Model  string `json:"model,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Health aggregates provider probes.
type Health struct {
	Healthy         bool                       `json:"healthy"`
	Status          string                     `json:"status"`
	DefaultProvider string                     `json:"defaultProvider"`
	Providers       map[string]*ProviderHealth `json:"providers"`
	Timestamp       time.Time                  `json:"timestamp"`
}

// TestConnection probes a provider. It never fails: vendor and selection
// errors are reported in the result. An empty id tests the default.
func (s *Service) TestConnection(ctx context.Context, id string) *llm.TestResult {
	if id == "" {
		id = s.registry.Default()
	}
	ret := &llm.TestResult{ProviderID: id}
	provider, err := s.registry.Resolve(id)
	if err != nil {
		ret.Error = err.Error()
		return ret
	}
	ret.ModelID = provider.Model()
	probe, err := provider.Test(ctx)
	if err != nil {
		ret.Error = err.Error()
		return ret
	}
	ret.Success = true
	if probe.Model != "" {
		ret.ModelID = probe.Model
	}
	ret.SampleText = probe.SampleText
	return ret
}

// Health tests every available provider in turn. The service is healthy when
// at least one provider exists and all of them answer.
func (s *Service) Health(ctx context.Context) *Health {
	available := s.registry.Available()
	ret := &Health{
		Healthy:         len(available) > 0,
		DefaultProvider: s.registry.Default(),
		Providers:       make(map[string]*ProviderHealth, len(available)),
		Timestamp:       s.now(),
	}
	for _, id := range available {
		result := s.TestConnection(ctx, id)
		item := &ProviderHealth{Status: StatusHealthy, Model: result.ModelID}
		if !result.Success {
			item.Status = StatusUnhealthy
			item.Error = result.Error
			ret.Healthy = false
		}
		ret.Providers[id] = item
	}
	ret.Status = StatusHealthy
	if !ret.Healthy {
		ret.Status = StatusUnhealthy
	}
	return ret
}
