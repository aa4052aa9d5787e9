package http

import (
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/llm"
	"github.com/viant/simupersona/genai/llm/provider"
	"github.com/viant/simupersona/genai/persona"
	"github.com/viant/simupersona/genai/usage"
)

// maxMessage bounds a chat message, in characters.
const maxMessage = 2000

type chatRequest struct {
	PersonaID           string        `json:"personaId"`
	Message             string        `json:"message"`
	Provider            string        `json:"provider,omitempty"`
	ConversationHistory []llm.Message `json:"conversationHistory,omitempty"`
	UserID              string        `json:"userId,omitempty"`
}

func (r *chatRequest) validate() error {
	var details []string
	r.Message = persona.Sanitize(r.Message)
	if r.PersonaID == "" {
		details = append(details, "personaId is required")
	}
	switch n := utf8.RuneCountInString(r.Message); {
	case n == 0:
		details = append(details, "message is required")
	case n > maxMessage:
		details = append(details, fmt.Sprintf("message must be at most %d characters", maxMessage))
	}
	if len(r.ConversationHistory) > llm.MaxHistory {
		details = append(details, fmt.Sprintf("conversationHistory must have at most %d entries", llm.MaxHistory))
	}
	if err := llm.ValidateHistory(r.ConversationHistory); err != nil {
		details = append(details, err.Error())
	}
	for i := range r.ConversationHistory {
		msg := &r.ConversationHistory[i]
		msg.Content = persona.Sanitize(msg.Content)
		if msg.Content == "" {
			details = append(details, fmt.Sprintf("conversationHistory[%d]: content is required", i))
		}
	}
	return errs.NewValidationError(details...)
}

type chatMetadata struct {
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	TokensUsed int       `json:"tokensUsed"`
	Timestamp  time.Time `json:"timestamp"`
}

type chatReply struct {
	UserMessage string          `json:"userMessage"`
	Reply       string          `json:"reply"`
	Persona     persona.Summary `json:"persona"`
	Metadata    chatMetadata    `json:"metadata"`
	Preview     bool            `json:"preview,omitempty"`
}

func newChatReply(message string, p *persona.Persona, result *llm.Result) *chatReply {
	return &chatReply{
		UserMessage: message,
		Reply:       result.Text,
		Persona:     persona.Summary{ID: p.ID, Name: p.Name, Tone: p.Tone, Profession: p.Profession},
		Metadata: chatMetadata{
			Provider:   result.ProviderID,
			Model:      result.ModelID,
			TokensUsed: result.TokensUsed,
			Timestamp:  result.Timestamp,
		},
	}
}

// handleChat handles POST /v1/api/chat
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req := &chatRequest{}
	if err := decode(w, r, req); err != nil {
		encodeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		encodeError(w, err)
		return
	}
	ctx := r.Context()
	p, err := s.personas.FindByID(ctx, req.PersonaID)
	if err != nil {
		encodeError(w, err)
		return
	}
	if err = p.CheckAccess(req.UserID); err != nil {
		encodeError(w, err)
		return
	}
	result, err := s.chat.Generate(ctx, p, req.Message, req.Provider, req.ConversationHistory)
	if err != nil {
		encodeError(w, err)
		return
	}
	encode(w, http.StatusOK, newChatReply(req.Message, p, result), "")
}

// handlePreview handles POST /v1/api/chat/preview; no history and no access check.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req := &chatRequest{}
	if err := decode(w, r, req); err != nil {
		encodeError(w, err)
		return
	}
	req.ConversationHistory = nil
	if err := req.validate(); err != nil {
		encodeError(w, err)
		return
	}
	ctx := r.Context()
	p, err := s.personas.FindByID(ctx, req.PersonaID)
	if err != nil {
		encodeError(w, err)
		return
	}
	result, err := s.chat.Preview(ctx, p, req.Message, req.Provider)
	if err != nil {
		encodeError(w, err)
		return
	}
	reply := newChatReply(req.Message, p, result)
	reply.Preview = true
	encode(w, http.StatusOK, reply, "")
}

type startersRequest struct {
	PersonaID string `json:"personaId"`
	Count     int    `json:"count,omitempty"`
	UserID    string `json:"userId,omitempty"`
}

type startersReply struct {
	PersonaID   string                `json:"personaId"`
	PersonaName string                `json:"personaName"`
	Starters    []string              `json:"starters"`
	Source      persona.StarterSource `json:"source"`
	Provider    string                `json:"provider,omitempty"`
	Model       string                `json:"model,omitempty"`
}

// handleGenerateStarters handles POST /v1/api/chat/starters
func (s *Server) handleGenerateStarters(w http.ResponseWriter, r *http.Request) {
	req := &startersRequest{}
	if err := decode(w, r, req); err != nil {
		encodeError(w, err)
		return
	}
	if req.PersonaID == "" {
		encodeError(w, errs.NewValidationError("personaId is required"))
		return
	}
	if req.Count < 0 || req.Count > persona.MaxStarterCount {
		encodeError(w, errs.NewValidationError(fmt.Sprintf("count must be between 1 and %d", persona.MaxStarterCount)))
		return
	}
	ctx := r.Context()
	p, err := s.personas.FindByID(ctx, req.PersonaID)
	if err != nil {
		encodeError(w, err)
		return
	}
	if req.UserID != "" {
		if err = p.CheckAccess(req.UserID); err != nil {
			encodeError(w, err)
			return
		}
	}
	starters, err := s.chat.Starters(ctx, p, req.Count)
	if err != nil {
		encodeError(w, err)
		return
	}
	encode(w, http.StatusOK, &startersReply{
		PersonaID:   p.ID,
		PersonaName: p.Name,
		Starters:    starters.Starters,
		Source:      starters.Source,
		Provider:    starters.Provider,
		Model:       starters.Model,
	}, "")
}

type providersReply struct {
	AvailableProviders []string                 `json:"availableProviders"`
	DefaultProvider    string                   `json:"defaultProvider"`
	ProviderInfo       map[string]provider.Info `json:"providerInfo"`
}

// handleProviders handles GET /v1/api/chat/providers
func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	available := s.chat.Providers()
	reply := &providersReply{
		AvailableProviders: available,
		DefaultProvider:    s.chat.Default(),
		ProviderInfo:       make(map[string]provider.Info, len(available)),
	}
	for _, id := range available {
		info := provider.Describe(id)
		info.Model = s.chat.Model(id)
		reply.ProviderInfo[id] = info
	}
	encode(w, http.StatusOK, reply, "")
}

type defaultProviderRequest struct {
	Provider string `json:"provider"`
}

// handleSetDefault handles POST /v1/api/chat/providers/default
func (s *Server) handleSetDefault(w http.ResponseWriter, r *http.Request) {
	req := &defaultProviderRequest{}
	if err := decode(w, r, req); err != nil {
		encodeError(w, err)
		return
	}
	if req.Provider == "" {
		encodeError(w, errs.NewValidationError("provider is required"))
		return
	}
	if err := s.chat.SetDefault(req.Provider); err != nil {
		encodeError(w, err)
		return
	}
	encode(w, http.StatusOK, map[string]string{"defaultProvider": req.Provider}, "Default AI provider set to "+req.Provider)
}

// handleTestProvider handles GET /v1/api/chat/providers/{provider}/test
func (s *Server) handleTestProvider(w http.ResponseWriter, r *http.Request, id string) {
	result := s.chat.TestConnection(r.Context(), id)
	if !result.Success {
		write(w, http.StatusOK, &apiResponse{Status: "ERROR", Message: result.Error, Data: result})
		return
	}
	encode(w, http.StatusOK, result, "")
}

// handleChatHealth handles GET /v1/api/chat/health
func (s *Server) handleChatHealth(w http.ResponseWriter, r *http.Request) {
	health := s.chat.Health(r.Context())
	if !health.Healthy {
		write(w, http.StatusServiceUnavailable, &apiResponse{Status: "ERROR", Message: "AI services are unhealthy", Data: health})
		return
	}
	encode(w, http.StatusOK, health, "")
}

type usageReply struct {
	Calls  int          `json:"calls"`
	Tokens int          `json:"tokens"`
	Models []usage.Stat `json:"models"`
}

// handleUsage handles GET /v1/api/chat/usage
func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	calls, tokens := s.usage.Totals()
	encode(w, http.StatusOK, &usageReply{Calls: calls, Tokens: tokens, Models: s.usage.Stats()}, "")
}
