package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Tribe client
var (
	// Token errors
	ErrTokenExpired      = errors.New("oauth token expired")
	ErrTokenExchange     = errors.New("token exchange failed")
	ErrMissingAuthCode   = errors.New("missing authorization code")
	ErrInvalidState      = errors.New("invalid state parameter")
	ErrRemoteUnavailable = errors.New("tribe unavailable")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidCookie   = errors.New("invalid session cookie")

	// Snapshot errors
	ErrSnapshotFolderUnset = errors.New("public geneset folder not configured")
	ErrSnapshotNotFound    = errors.New("public geneset snapshot not found")
	ErrInvalidOrganism     = errors.New("invalid organism name")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
