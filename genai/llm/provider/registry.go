package provider

import (
	"sync"

	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/llm"
	"github.com/viant/simupersona/internal/log"
)

// Registry holds the available providers and the mutable default.
type Registry struct {
	mux       sync.RWMutex
	providers map[string]llm.Provider
	order     []string
	defaultID string
}

// NewRegistry registers providers in order. When defaultID is not among them
// the first available provider becomes the default.
func NewRegistry(defaultID string, providers ...llm.Provider) *Registry {
	ret := &Registry{providers: map[string]llm.Provider{}, defaultID: defaultID}
	for _, p := range providers {
		if p == nil {
			continue
		}
		if _, ok := ret.providers[p.ID()]; ok {
			continue
		}
		ret.providers[p.ID()] = p
		ret.order = append(ret.order, p.ID())
	}
	if _, ok := ret.providers[defaultID]; !ok && len(ret.order) > 0 {
		log.Warnf("default provider %q is not available, using %q", defaultID, ret.order[0])
		ret.defaultID = ret.order[0]
	}
	return ret
}

// Available returns provider ids in registration order.
func (r *Registry) Available() []string {
	return append([]string{}, r.order...)
}

// Get returns the provider for id.
func (r *Registry) Get(id string) (llm.Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// Default returns the current default provider id.
func (r *Registry) Default() string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.defaultID
}

// SetDefault changes the default provider.
func (r *Registry) SetDefault(id string) error {
	if _, ok := r.Get(id); !ok {
		return &errs.UnsupportedProviderError{Provider: id, Available: r.Available()}
	}
	r.mux.Lock()
	r.defaultID = id
	r.mux.Unlock()
	return nil
}

// Resolve selects a provider: empty id means the default, an unknown id is
// rejected with *errs.UnsupportedProviderError.
func (r *Registry) Resolve(id string) (llm.Provider, error) {
	if len(r.order) == 0 {
		return nil, errs.ErrNoProviderConfigured
	}
	if id == "" {
		id = r.Default()
	}
	p, ok := r.Get(id)
	if !ok {
		return nil, &errs.UnsupportedProviderError{Provider: id, Available: r.Available()}
	}
	return p, nil
}
