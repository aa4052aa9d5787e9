package store

import (
	"context"
	"strings"

	"github.com/viant/simupersona/genai/persona"
)

// Filter narrows FindAll results. Empty fields match everything; Profession
// and Tone match case-insensitive substrings.
type Filter struct {
	OwnerID    string
	Profession string
	Tone       string
	IsPublic   *bool
}

// Match reports whether p satisfies the filter.
func (f *Filter) Match(p *persona.Persona) bool {
	if f == nil {
		return true
	}
	if f.OwnerID != "" && p.OwnerID != f.OwnerID {
		return false
	}
	if !containsFold(p.Profession, f.Profession) || !containsFold(p.Tone, f.Tone) {
		return false
	}
	if f.IsPublic != nil && p.IsPublic != *f.IsPublic {
		return false
	}
	return true
}

func containsFold(value, fragment string) bool {
	return fragment == "" || strings.Contains(strings.ToLower(value), strings.ToLower(fragment))
}

// Page is a window of a visible persona list.
type Page struct {
	Items      []*persona.Persona `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// Visible lists the caller's personas followed by other owners' public
// personas, both narrowed by profession and tone, then paginated.
func (s *Store) Visible(ctx context.Context, callerID, profession, tone string, limit, offset int) (*Page, error) {
	own, err := s.FindAll(ctx, &Filter{OwnerID: callerID, Profession: profession, Tone: tone})
	if err != nil {
		return nil, err
	}
	public := true
	shared, err := s.FindAll(ctx, &Filter{IsPublic: &public, Profession: profession, Tone: tone})
	if err != nil {
		return nil, err
	}
	all := own
	for _, item := range shared {
		if item.OwnerID != callerID {
			all = append(all, item)
		}
	}
	ret := &Page{Items: []*persona.Persona{}, Pagination: Pagination{Total: len(all), Limit: limit, Offset: offset}}
	if offset < len(all) {
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		ret.Items = all[offset:end]
	}
	ret.Pagination.HasMore = offset+limit < len(all)
	return ret, nil
}
