package model

import (
	"errors"
	"fmt"
)

// Error taxonomy. Each category has a base sentinel; specific errors wrap
// their category so callers can match either level with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrAuth         = errors.New("authentication error")
	ErrPermission   = errors.New("permission denied")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrStorage      = errors.New("storage error")
)

func wrap(category error, msg string) error {
	return fmt.Errorf("%w: %s", category, msg)
}

// Account and credential errors
var (
	ErrPasswordMismatch   = wrap(ErrValidation, "passwords do not match")
	ErrUsernameTooShort   = wrap(ErrValidation, "username must be at least 4 characters")
	ErrPasswordTooShort   = wrap(ErrValidation, "password must be at least 8 characters")
	ErrUsernameExists     = wrap(ErrConflict, "username already exists")
	ErrAccountNotFound    = wrap(ErrNotFound, "account not found")
	ErrInvalidCredentials = wrap(ErrAuth, "invalid credentials")
	ErrInvalidSession     = wrap(ErrAuth, "invalid or expired session")
	ErrNotAuthenticated   = wrap(ErrAuth, "authentication required")
)

// Admin override errors
var (
	ErrAdminRequired   = wrap(ErrPermission, "admin privileges required")
	ErrGhostDisabled   = wrap(ErrPermission, "ghost access is disabled")
	ErrNotGhostSession = wrap(ErrInvalidState, "session is not a ghost session")
)

// Economy errors
var (
	ErrAssetsFrozen     = wrap(ErrPermission, "economic transactions are frozen")
	ErrEntityNotFound   = wrap(ErrNotFound, "world entity not found")
	ErrEntityOccupied   = wrap(ErrConflict, "entity already has an occupant")
	ErrInvalidAction    = wrap(ErrValidation, "invalid action for entity kind")
	ErrSettingNotFound  = wrap(ErrNotFound, "setting not found")
	ErrSnapshotNotFound = wrap(ErrNotFound, "no snapshot persisted")
)
