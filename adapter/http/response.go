package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/internal/log"
	"github.com/viant/simupersona/internal/store"
)

// maxBodyBytes bounds request payloads.
const maxBodyBytes = 10 << 20

// apiResponse is the unified wrapper returned by all HTTP endpoints.
type apiResponse struct {
	Status     string            `json:"status"`
	Message    string            `json:"message,omitempty"`
	Data       any               `json:"data,omitempty"`
	Details    []string          `json:"details,omitempty"`
	Pagination *store.Pagination `json:"pagination,omitempty"`
}

// statusCode maps a domain error to an HTTP status.
func statusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errs.IsValidation(err), errs.IsUnsupportedProvider(err):
		return http.StatusBadRequest
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.IsAccessDenied(err):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNoProviderConfigured):
		return http.StatusServiceUnavailable
	case errs.IsProvider(err):
		return http.StatusBadGateway
	}
	var generation *errs.GenerationError
	if errors.As(err, &generation) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// write encodes resp with statusCode.
func write(w http.ResponseWriter, statusCode int, resp *apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// encode writes a successful JSON response with the unified structure.
func encode(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	write(w, statusCode, &apiResponse{Status: "OK", Message: message, Data: data})
}

// encodeError writes err with the status derived from its type.
func encodeError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	resp := &apiResponse{Status: "ERROR", Message: err.Error()}
	var validation *errs.ValidationError
	if errors.As(err, &validation) {
		resp.Message = "Validation error"
		resp.Details = validation.Details
	}
	if code == http.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
		resp.Message = "Internal server error"
	}
	write(w, code, resp)
}

// decode reads a JSON body into v; malformed payloads are validation errors.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewValidationError("request body is required")
		}
		return errs.NewValidationError(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}
