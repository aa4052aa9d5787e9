package http

import (
	"net/http"
	"time"

	"github.com/viant/simupersona/genai/service/orchestrator"
	"github.com/viant/simupersona/genai/usage"
	"github.com/viant/simupersona/internal/store"
)

// Server exposes the persona and chat REST API:
//
//	POST /v1/api/chat                               -> in-character reply
//	GET  /v1/api/chat/providers                     -> available providers
//	GET  /v1/api/chat/providers/{provider}/test     -> connection probe
//	GET  /v1/api/chat/usage                         -> token usage per model
//	POST /v1/api/personas                           -> create persona
//	GET  /v1/api/personas?userId=                   -> own and public personas
//	GET  /v1/api/personas/{id}?userId=              -> single persona
type Server struct {
	chat     *orchestrator.Service
	personas *store.Store
	cors     *CORSPolicy
	limits   Limits
	usage    *usage.Aggregator
	version  string
	started  time.Time
}

// Limits groups per route rate limits.
type Limits struct {
	General RateLimit
	Chat    RateLimit
	Persona RateLimit
	Test    RateLimit
}

// ServerOption customises HTTP server behaviour.
type ServerOption func(*Server)

// WithCORSPolicy restricts browser origins.
func WithCORSPolicy(policy *CORSPolicy) ServerOption {
	return func(s *Server) { s.cors = policy }
}

// WithLimits enables rate limiting.
func WithLimits(limits Limits) ServerOption {
	return func(s *Server) { s.limits = limits }
}

// WithUsage exposes token usage collected by provider clients.
func WithUsage(aggregator *usage.Aggregator) ServerOption {
	return func(s *Server) {
		if aggregator != nil {
			s.usage = aggregator
		}
	}
}

// WithVersion sets the version reported by health endpoints.
func WithVersion(version string) ServerOption {
	return func(s *Server) { s.version = version }
}

// NewServer returns an http.Handler with routes bound.
func NewServer(chat *orchestrator.Service, personas *store.Store, opts ...ServerOption) http.Handler {
	s := &Server{chat: chat, personas: personas, usage: &usage.Aggregator{}, version: "dev", started: time.Now()}
	for _, o := range opts {
		if o != nil {
			o(s)
		}
	}
	s.limits.defaults()

	chatLimit := newLimiter(s.limits.Chat)
	personaLimit := newLimiter(s.limits.Persona)
	testLimit := newLimiter(s.limits.Test)
	handle := func(mux *http.ServeMux, pattern string, l *limiter, fn http.HandlerFunc) {
		mux.Handle(pattern, withRateLimit(l, fn))
	}

	mux := http.NewServeMux()

	// Chat API
	handle(mux, "POST /v1/api/chat", chatLimit, s.handleChat)
	handle(mux, "POST /v1/api/chat/preview", chatLimit, s.handlePreview)
	handle(mux, "POST /v1/api/chat/starters", chatLimit, s.handleGenerateStarters)
	mux.HandleFunc("GET /v1/api/chat/providers", s.handleProviders)
	mux.HandleFunc("POST /v1/api/chat/providers/default", s.handleSetDefault)
	handle(mux, "GET /v1/api/chat/providers/{provider}/test", testLimit, func(w http.ResponseWriter, r *http.Request) {
		s.handleTestProvider(w, r, r.PathValue("provider"))
	})
	handle(mux, "GET /v1/api/chat/health", testLimit, s.handleChatHealth)
	mux.HandleFunc("GET /v1/api/chat/usage", s.handleUsage)

	// Persona API
	handle(mux, "POST /v1/api/personas", personaLimit, s.handleCreatePersona)
	handle(mux, "GET /v1/api/personas", personaLimit, s.handleListPersonas)
	handle(mux, "GET /v1/api/personas/stats", personaLimit, s.handlePersonaStats)
	handle(mux, "GET /v1/api/personas/{id}", personaLimit, func(w http.ResponseWriter, r *http.Request) {
		s.handleGetPersona(w, r, r.PathValue("id"))
	})
	handle(mux, "PUT /v1/api/personas/{id}", personaLimit, func(w http.ResponseWriter, r *http.Request) {
		s.handleUpdatePersona(w, r, r.PathValue("id"))
	})
	handle(mux, "DELETE /v1/api/personas/{id}", personaLimit, func(w http.ResponseWriter, r *http.Request) {
		s.handleDeletePersona(w, r, r.PathValue("id"))
	})
	handle(mux, "GET /v1/api/personas/{id}/starters", personaLimit, func(w http.ResponseWriter, r *http.Request) {
		s.handlePersonaStarters(w, r, r.PathValue("id"))
	})
	handle(mux, "POST /v1/api/personas/{id}/clone", personaLimit, func(w http.ResponseWriter, r *http.Request) {
		s.handleClonePersona(w, r, r.PathValue("id"))
	})

	// Service
	mux.HandleFunc("GET /v1/api/health", s.handleHealth)
	mux.HandleFunc("GET /v1/api/docs", s.handleDocs)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	return WithCORS(s.cors, withRateLimit(newLimiter(s.limits.General), mux))
}

func (l *Limits) defaults() {
	set := func(limit *RateLimit, message string) {
		if limit.Message == "" {
			limit.Message = message
		}
	}
	set(&l.General, "Too many requests from this IP, please try again later.")
	set(&l.Chat, "Too many chat requests, please wait before sending another message.")
	set(&l.Persona, "Too many persona operations, please wait before creating or updating personas.")
	set(&l.Test, "Too many test requests, please wait before testing again.")
}
