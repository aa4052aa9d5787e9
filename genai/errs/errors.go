// Package errs defines the error values surfaced by persona and chat
// operations. Every error is distinct so that callers can tell invalid input
// from a missing persona, a missing backend, or a failing backend.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoProviderConfigured is returned when no vendor adapter could be
// initialised, typically because all credentials are missing.
var ErrNoProviderConfigured = errors.New("no AI providers are configured, please check your environment variables")

// ValidationError reports malformed or missing input fields.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation error"
	}
	return "validation error: " + strings.Join(e.Details, ", ")
}

// NewValidationError creates a ValidationError, or nil when details is empty.
func NewValidationError(details ...string) error {
	if len(details) == 0 {
		return nil
	}
	return &ValidationError{Details: details}
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "resource"
	}
	return fmt.Sprintf("%s not found: %s", kind, e.ID)
}

// AccessDeniedError reports that the caller neither owns the persona nor is
// the persona public.
type AccessDeniedError struct {
	PersonaID string
	CallerID  string
}

func (e *AccessDeniedError) Error() string {
	return "you do not have permission to access this persona"
}

// UnsupportedProviderError reports a provider id outside the available set.
type UnsupportedProviderError struct {
	Provider  string
	Available []string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("provider '%s' is not available. Available providers: %s", e.Provider, strings.Join(e.Available, ", "))
}

// ProviderError wraps a failed vendor call. Message carries the vendor
// detail (status code and body when the API answered).
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError builds a ProviderError from an underlying error.
func NewProviderError(provider string, err error) *ProviderError {
	ret := &ProviderError{Provider: provider, Err: err}
	if err != nil {
		ret.Message = err.Error()
	}
	return ret
}

// GenerationError is the uniform wrapper returned by the orchestrator when
// the selected adapter fails.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return "Failed to generate response: " + msg
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAccessDenied reports whether err is an AccessDeniedError.
func IsAccessDenied(err error) bool {
	var target *AccessDeniedError
	return errors.As(err, &target)
}

// IsUnsupportedProvider reports whether err is an UnsupportedProviderError.
func IsUnsupportedProvider(err error) bool {
	var target *UnsupportedProviderError
	return errors.As(err, &target)
}

// IsProvider reports whether err carries a ProviderError.
func IsProvider(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}
