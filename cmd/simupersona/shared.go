package simupersona

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/simupersona/genai/llm/provider"
	"github.com/viant/simupersona/genai/service/orchestrator"
	"github.com/viant/simupersona/genai/usage"
	"github.com/viant/simupersona/internal/config"
	"github.com/viant/simupersona/internal/log"
	"github.com/viant/simupersona/internal/store"
)

var (
	cfgMu    sync.RWMutex
	cfgPath  string
	envFiles []string
)

// setup records global flags ahead of sub-command execution.
func setup(path string, files []string) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgPath, envFiles = path, files
}

// app bundles the services every command needs.
type app struct {
	config   *config.Config
	registry *provider.Registry
	chat     *orchestrator.Service
	personas *store.Store
	usage    *usage.Aggregator
}

// newApp loads configuration and initialises the persona store and the
// provider registry.
func newApp(ctx context.Context) (*app, error) {
	cfgMu.RLock()
	path, files := cfgPath, envFiles
	cfgMu.RUnlock()

	cfg, err := config.Load(ctx, path, files...)
	if err != nil {
		return nil, err
	}
	if err = log.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	personas := store.New(cfg.DataURL)
	if err = personas.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to init persona store %v: %w", cfg.DataURL, err)
	}
	aggregator := &usage.Aggregator{}
	factory := provider.New()
	factory.UsageListener = aggregator.OnUsage
	registry := factory.NewRegistry(ctx, cfg.Providers, cfg.DefaultProvider)
	return &app{
		config:   cfg,
		registry: registry,
		chat:     orchestrator.New(registry),
		personas: personas,
		usage:    aggregator,
	}, nil
}
