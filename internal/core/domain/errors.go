package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown record kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrForbidden indicates the current user lacks the role for an action.
	ErrForbidden = errors.New("forbidden")

	// Authentication Errors.

	// ErrAuthRequired indicates no session is stored; the user must log in.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the session expired and refresh failed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrAuthInvalid indicates the username or password was rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrTokenRefreshFailed indicates the refresh-token exchange failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// Backend Errors.

	// ErrBackendUnavailable indicates the hospital backend could not be reached.
	// Lookups fall back to the local record cache when this is returned.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrRateLimited indicates the backend rejected the request with 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrCacheUnavailable indicates the local record cache is disabled.
	ErrCacheUnavailable = errors.New("record cache unavailable")
)
