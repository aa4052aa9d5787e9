package store

import (
	"context"

	"github.com/viant/simupersona/genai/persona"
	"github.com/viant/simupersona/internal/log"
)

// Create validates and stores a new persona.
func (s *Store) Create(ctx context.Context, in *persona.Input) (*persona.Persona, error) {
	p := persona.New(in, s.now())
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err = s.save(ctx, append(items, p)); err != nil {
		return nil, err
	}
	log.Publish(log.NewEvent(log.PersonaChange, map[string]string{"action": "create", "id": p.ID}))
	return p.Clone(), nil
}

// FindByID returns the persona or *errs.NotFoundError.
func (s *Store) FindByID(ctx context.Context, id string) (*persona.Persona, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	items = s.readable(items)
	idx := indexOf(items, id)
	if idx == -1 {
		return nil, notFound(id)
	}
	return items[idx], nil
}

// FindAll returns personas matching filter in stored order.
func (s *Store) FindAll(ctx context.Context, filter *Filter) ([]*persona.Persona, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	items = s.readable(items)
	ret := make([]*persona.Persona, 0, len(items))
	for _, item := range items {
		if filter.Match(item) {
			ret = append(ret, item)
		}
	}
	return ret, nil
}

// Update applies a partial change; only the owner may update.
func (s *Store) Update(ctx context.Context, id, callerID string, in *persona.Input) (*persona.Persona, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfValid(items, id)
	if idx == -1 {
		return nil, notFound(id)
	}
	if err = items[idx].CheckOwner(callerID); err != nil {
		return nil, err
	}
	updated := items[idx].Clone()
	updated.Apply(in, s.now())
	if err = updated.Validate(); err != nil {
		return nil, err
	}
	items[idx] = updated
	if err = s.save(ctx, items); err != nil {
		return nil, err
	}
	log.Publish(log.NewEvent(log.PersonaChange, map[string]string{"action": "update", "id": id}))
	return updated.Clone(), nil
}

// Delete removes a persona; only the owner may delete.
func (s *Store) Delete(ctx context.Context, id, callerID string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := indexOfValid(items, id)
	if idx == -1 {
		return notFound(id)
	}
	if err = items[idx].CheckOwner(callerID); err != nil {
		return err
	}
	items = append(items[:idx], items[idx+1:]...)
	if err = s.save(ctx, items); err != nil {
		return err
	}
	log.Publish(log.NewEvent(log.PersonaChange, map[string]string{"action": "delete", "id": id}))
	return nil
}

// Clone copies an accessible persona under a new id and owner. An empty
// name yields "{name} (Copy)".
func (s *Store) Clone(ctx context.Context, id, callerID, name string) (*persona.Persona, error) {
	source, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = source.CheckAccess(callerID); err != nil {
		return nil, err
	}
	if name == "" {
		name = source.Name + " (Copy)"
	}
	in := &persona.Input{
		Name:                 &name,
		Tone:                 &source.Tone,
		Profession:           &source.Profession,
		Goals:                &source.Goals,
		Background:           &source.Background,
		SpeakingStyle:        &source.SpeakingStyle,
		Interests:            &source.Interests,
		PersonalityTraits:    listOf(source.PersonalityTraits),
		ExpertiseAreas:       listOf(source.ExpertiseAreas),
		ConversationStarters: listOf(source.ConversationStarters),
		IsPublic:             &source.IsPublic,
		OwnerID:              callerID,
	}
	return s.Create(ctx, in)
}

func listOf(items []string) *persona.List {
	ret := persona.List(append([]string{}, items...))
	return &ret
}
