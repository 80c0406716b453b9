package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gamiempire/sovereign/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeAdminRequired      = "ADMIN_REQUIRED"
	CodePasswordMismatch   = "PASSWORD_MISMATCH"
	CodeUsernameTooShort   = "USERNAME_TOO_SHORT"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeGhostDisabled      = "GHOST_DISABLED"
	CodeNotGhostSession    = "NOT_GHOST_SESSION"
	CodeAssetsFrozen       = "ASSETS_FROZEN"
	CodeEntityNotFound     = "ENTITY_NOT_FOUND"
	CodeEntityOccupied     = "ENTITY_OCCUPIED"
	CodeInvalidAction      = "INVALID_ACTION"
	CodeSettingNotFound    = "SETTING_NOT_FOUND"
	CodeStorageFailure     = "STORAGE_FAILURE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPasswordMismatch):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordMismatch, "Passwords do not match"}}
	case errors.Is(err, model.ErrUsernameTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodeUsernameTooShort, "Username must be at least 4 characters"}}
	case errors.Is(err, model.ErrPasswordTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordTooShort, "Password must be at least 8 characters"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAccountNotFound, "Account not found"}}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, model.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, model.ErrNotAuthenticated):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
	case errors.Is(err, model.ErrAdminRequired):
		return &httpError{http.StatusForbidden, APIError{CodeAdminRequired, "Administrator privileges required"}}
	case errors.Is(err, model.ErrGhostDisabled):
		return &httpError{http.StatusForbidden, APIError{CodeGhostDisabled, "Ghost access is disabled"}}
	case errors.Is(err, model.ErrNotGhostSession):
		return &httpError{http.StatusConflict, APIError{CodeNotGhostSession, "Session is not a ghost session"}}
	case errors.Is(err, model.ErrAssetsFrozen):
		return &httpError{http.StatusConflict, APIError{CodeAssetsFrozen, "Assets are frozen"}}
	case errors.Is(err, model.ErrEntityNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeEntityNotFound, "World entity not found"}}
	case errors.Is(err, model.ErrEntityOccupied):
		return &httpError{http.StatusConflict, APIError{CodeEntityOccupied, "World entity is already occupied"}}
	case errors.Is(err, model.ErrInvalidAction):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAction, "Action not available for this entity"}}
	case errors.Is(err, model.ErrSettingNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSettingNotFound, "Setting not found"}}
	case errors.Is(err, model.ErrStorage):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStorageFailure, "Storage backend unavailable"}}
	case errors.Is(err, model.ErrValidation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
