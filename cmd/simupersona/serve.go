package simupersona

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	httpapi "github.com/viant/simupersona/adapter/http"
	"github.com/viant/simupersona/internal/config"
	"github.com/viant/simupersona/internal/log"
)

// ServeCmd starts the HTTP server.
// Usage: simupersona serve --addr :5000
type ServeCmd struct {
	Addr     string   `short:"a" long:"addr" description:"listen address (defaults to :PORT from config)"`
	EventLog string   `long:"event-log" description:"file to append LLM and persona events as JSON lines"`
	Events   []string `long:"event" description:"event type to record (repeatable, default all)"`
	Gops     bool     `long:"gops" description:"start the gops diagnostics agent"`
}

func (s *ServeCmd) Execute(_ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if s.Gops {
		if err = agent.Listen(agent.Options{}); err != nil {
			return fmt.Errorf("failed to start gops agent: %w", err)
		}
		defer agent.Close()
	}
	if s.EventLog != "" {
		file, err := os.OpenFile(s.EventLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open event log %v: %w", s.EventLog, err)
		}
		defer file.Close()
		log.FileSink(file, log.ParseEventTypes(s.Events)...)
	}

	addr := s.Addr
	if addr == "" {
		addr = a.config.Addr()
	}
	handler := httpapi.NewServer(a.chat, a.personas,
		httpapi.WithVersion(Version()),
		httpapi.WithUsage(a.usage),
		httpapi.WithCORSPolicy(&httpapi.CORSPolicy{
			AllowedOrigins:        a.config.CORS.AllowedOrigins,
			AllowedOriginSuffixes: a.config.CORS.AllowedOriginSuffixes,
		}),
		httpapi.WithLimits(limits(&a.config.RateLimit)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("SimuPersona HTTP server listening on %s (providers: %v, default: %v)", addr, a.registry.Available(), a.registry.Default())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		errCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Infof("received %s, initiating graceful shutdown", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	case err := <-errCh:
		return err
	}
}

func limits(cfg *config.RateLimits) httpapi.Limits {
	convert := func(limit config.RateLimit) httpapi.RateLimit {
		if !limit.Enabled() {
			return httpapi.RateLimit{}
		}
		return httpapi.RateLimit{Window: limit.Window(), Max: limit.MaxRequests}
	}
	return httpapi.Limits{
		General: convert(cfg.General),
		Chat:    convert(cfg.Chat),
		Persona: convert(cfg.Persona),
		Test:    convert(cfg.Test),
	}
}
