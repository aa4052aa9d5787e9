// Package orchestrator turns a persona and a user message into a single
// vendor call and normalizes the outcome.
package orchestrator

import (
	"time"

	"github.com/viant/simupersona/genai/llm"
)

// Registry resolves providers and holds the default selection.
type Registry interface {
	Resolve(id string) (llm.Provider, error)
	Available() []string
	Default() string
	SetDefault(id string) error
}

type Service struct {
	registry Registry
	now      func() time.Time
}

// Providers returns available provider ids.
func (s *Service) Providers() []string {
	return s.registry.Available()
}

// Default returns the default provider id.
func (s *Service) Default() string {
	return s.registry.Default()
}

// SetDefault changes the default provider; unavailable ids are rejected.
func (s *Service) SetDefault(id string) error {
	return s.registry.SetDefault(id)
}

// Model returns the model of an available provider, or empty.
func (s *Service) Model(id string) string {
	p, err := s.registry.Resolve(id)
	if err != nil {
		return ""
	}
	return p.Model()
}

// New creates an orchestrator over registry.
func New(registry Registry) *Service {
	return &Service{registry: registry, now: time.Now}
}
