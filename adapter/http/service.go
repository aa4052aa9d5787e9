package http

import (
	"net/http"
	"time"
)

type serviceStatus struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime,omitempty"`
}

func (s *Server) status() *serviceStatus {
	now := time.Now()
	return &serviceStatus{Version: s.version, Timestamp: now.UTC(), Uptime: now.Sub(s.started).Truncate(time.Second).String()}
}

// handleHealth handles GET /v1/api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	encode(w, http.StatusOK, s.status(), "SimuPersona API is running")
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	encode(w, http.StatusOK, s.status(), "SimuPersona API Server")
}

type apiDocs struct {
	Endpoints map[string]map[string]string `json:"endpoints"`
}

var docs = &apiDocs{Endpoints: map[string]map[string]string{
	"personas": {
		"POST /v1/api/personas":              "Create a new persona",
		"GET /v1/api/personas/{id}":          "Get a specific persona",
		"PUT /v1/api/personas/{id}":          "Update a persona",
		"DELETE /v1/api/personas/{id}":       "Delete a persona",
		"GET /v1/api/personas":               "Get all personas for a user",
		"GET /v1/api/personas/{id}/starters": "Get conversation starters",
		"POST /v1/api/personas/{id}/clone":   "Clone a persona",
		"GET /v1/api/personas/stats":         "Get persona statistics",
	},
	"chat": {
		"POST /v1/api/chat":                          "Send a message to a persona",
		"POST /v1/api/chat/preview":                  "Preview conversation",
		"POST /v1/api/chat/starters":                 "Generate conversation starters",
		"GET /v1/api/chat/providers":                 "Get available AI providers",
		"POST /v1/api/chat/providers/default":        "Set default AI provider",
		"GET /v1/api/chat/providers/{provider}/test": "Test AI provider",
		"GET /v1/api/chat/health":                    "AI services health check",
		"GET /v1/api/chat/usage":                     "Token usage per provider model",
	},
}}

// handleDocs handles GET /v1/api/docs
func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	encode(w, http.StatusOK, docs, "SimuPersona API Documentation")
}
