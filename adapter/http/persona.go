package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/persona"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// handleCreatePersona handles POST /v1/api/personas
func (s *Server) handleCreatePersona(w http.ResponseWriter, r *http.Request) {
	in := &persona.Input{}
	if err := decode(w, r, in); err != nil {
		encodeError(w, err)
		return
	}
	in.Sanitize()
	created, err := s.personas.Create(r.Context(), in)
	if err != nil {
		encodeError(w, err)
		return
	}
	encode(w, http.StatusCreated, created, "Persona created successfully")
}

// handleGetPersona handles GET /v1/api/personas/{id}?userId=
func (s *Server) handleGetPersona(w http.ResponseWriter, r *http.Request, id string) {
	p, err := s.personas.FindByID(r.Context(), id)
	if err != nil {
		encodeError(w, err)
		return
	}
	if err = p.CheckAccess(r.URL.Query().Get("userId")); err != nil {
		encodeError(w, err)
		return
	}
	encode(w, http.StatusOK, p, "")
}

// handleUpdatePersona handles PUT /v1/api/personas/{id}; the body userId
// identifies the caller.
func (s *Server) handleUpdatePersona(w http.ResponseWriter, r *http.Request, id string) {
	in := &persona.Input{}
	if err := decode(w, r, in); err != nil {
		encodeError(w, err)
		return
	}
	in.Sanitize()
	if in.OwnerID == "" {
		encodeError(w, errs.NewValidationError("userId is required"))
		return
	}
	updated, err := s.personas.Update(r.Context(), id, in.OwnerID, in)
	if err != nil {
		encodeError(w, err)
		return
	}
	encode(w, http.StatusOK, updated, "Persona updated successfully")
}

type callerRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
}

// handleDeletePersona handles DELETE /v1/api/personas/{id}?userId=; a JSON
// body with userId is accepted as well.
func (s *Server) handleDeletePersona(w http.ResponseWriter, r *http.Request, id string) {
	callerID := r.URL.Query().Get("userId")
	if callerID == "" && r.ContentLength != 0 {
		req := &callerRequest{}
		if err := decode(w, r, req); err != nil {
			encodeError(w, err)
			return
		}
		callerID = req.UserID
	}
	if callerID == "" {
		encodeError(w, errs.NewValidationError("userId is required"))
		return
	}
	if err := s.personas.Delete(r.Context(), id, callerID); err != nil {
		encodeError(w, err)
		return
	}
	encode(w, http.StatusOK, nil, "Persona deleted successfully")
}

// handleListPersonas handles GET /v1/api/personas?userId=&profession=&tone=&limit=&offset=
func (s *Server) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	callerID := query.Get("userId")
	var details []string
	if callerID == "" {
		details = append(details, "userId is required")
	}
	limit, err := queryInt(query.Get("limit"), defaultPageLimit)
	if err != nil || limit < 1 || limit > maxPageLimit {
		details = append(details, fmt.Sprintf("limit must be between 1 and %d", maxPageLimit))
	}
	offset, err := queryInt(query.Get("offset"), 0)
	if err != nil || offset < 0 {
		details = append(details, "offset must be a non-negative integer")
	}
	if err = errs.NewValidationError(details...); err != nil {
		encodeError(w, err)
		return
	}
	page, err := s.personas.Visible(r.Context(), callerID, query.Get("profession"), query.Get("tone"), limit, offset)
	if err != nil {
		encodeError(w, err)
		return
	}
	write(w, http.StatusOK, &apiResponse{Status: "OK", Data: page.Items, Pagination: &page.Pagination})
}

// handlePersonaStats handles GET /v1/api/personas/stats
func (s *Server) handlePersonaStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.personas.Stats(r.Context())
	if err != nil {
		encodeError(w, err)
		return
	}
	encode(w, http.StatusOK, stats, "")
}

type storedStarters struct {
	PersonaID            string   `json:"personaId"`
	PersonaName          string   `json:"personaName"`
	ConversationStarters []string `json:"conversationStarters"`
}

// handlePersonaStarters handles GET /v1/api/personas/{id}/starters; access
// is checked only when userId is given.
func (s *Server) handlePersonaStarters(w http.ResponseWriter, r *http.Request, id string) {
	p, err := s.personas.FindByID(r.Context(), id)
	if err != nil {
		encodeError(w, err)
		return
	}
	if callerID := r.URL.Query().Get("userId"); callerID != "" {
		if err = p.CheckAccess(callerID); err != nil {
			encodeError(w, err)
			return
		}
	}
	starters := p.ConversationStarters
	if starters == nil {
		starters = []string{}
	}
	encode(w, http.StatusOK, &storedStarters{PersonaID: p.ID, PersonaName: p.Name, ConversationStarters: starters}, "")
}

// handleClonePersona handles POST /v1/api/personas/{id}/clone
func (s *Server) handleClonePersona(w http.ResponseWriter, r *http.Request, id string) {
	req := &callerRequest{}
	if err := decode(w, r, req); err != nil {
		encodeError(w, err)
		return
	}
	if req.UserID == "" {
		encodeError(w, errs.NewValidationError("userId is required"))
		return
	}
	cloned, err := s.personas.Clone(r.Context(), id, req.UserID, persona.Sanitize(req.Name))
	if err != nil {
		encodeError(w, err)
		return
	}
	encode(w, http.StatusCreated, cloned, "Persona cloned successfully")
}

func queryInt(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
