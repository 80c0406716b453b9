package handler

import (
	"net/http"

	"github.com/gamiempire/sovereign/internal/api/apierr"
	"github.com/gamiempire/sovereign/internal/api/middleware"
	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}

// errorReporter records failed requests on the audit trail before the
// error response is written. Handlers embed it.
type errorReporter struct {
	audit *audit.Logger
}

func (e errorReporter) fail(w http.ResponseWriter, r *http.Request, err error) {
	username := ""
	if session := middleware.GetSession(r.Context()); session != nil {
		username = session.Username
	}
	e.audit.Record(r.Context(), model.AuditRequestFailed, username, map[string]any{
		"method": r.Method,
		"path":   r.URL.Path,
		"error":  err.Error(),
	})
	apierr.WriteError(w, err)
}
