package persona

import "github.com/viant/simupersona/genai/errs"

// CanAccess reports whether callerID may read or chat with the persona: the
// owner always can, anyone can when the persona is public.
func (p *Persona) CanAccess(callerID string) bool {
	return p.IsPublic || p.Owns(callerID)
}

// Owns reports whether callerID owns the persona.
func (p *Persona) Owns(callerID string) bool {
	return callerID != "" && p.OwnerID == callerID
}

// CheckAccess returns *errs.AccessDeniedError when callerID cannot access p.
func (p *Persona) CheckAccess(callerID string) error {
	if p.CanAccess(callerID) {
		return nil
	}
	return &errs.AccessDeniedError{PersonaID: p.ID, CallerID: callerID}
}

// CheckOwner returns *errs.AccessDeniedError unless callerID owns p. Updates
// and deletes require ownership regardless of visibility.
func (p *Persona) CheckOwner(callerID string) error {
	if p.Owns(callerID) {
		return nil
	}
	return &errs.AccessDeniedError{PersonaID: p.ID, CallerID: callerID}
}
