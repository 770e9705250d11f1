package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Code      string `json:"error"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Unwrap maps the status onto a domain error so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return domain.ErrAuthExpired
	case e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case e.Status == http.StatusBadRequest, e.Status == http.StatusConflict,
		e.Status == http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case e.Status >= http.StatusInternalServerError:
		return domain.ErrBackendUnavailable
	default:
		return nil
	}
}

// decodeAPIError builds an APIError from resp. Bodies that are not the
// backend's JSON error shape fall back to the status text.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Path: resp.Request.URL.Path}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(body) > 0 {
		var decoded APIError
		if json.Unmarshal(body, &decoded) == nil {
			if decoded.Message != "" {
				apiErr.Message = decoded.Message
			}
			apiErr.Code = decoded.Code
			if decoded.Path != "" {
				apiErr.Path = decoded.Path
			}
			apiErr.Timestamp = decoded.Timestamp
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// isAuthError reports whether err came from the token source rather than
// the network.
func isAuthError(err error) bool {
	return errors.Is(err, domain.ErrAuthRequired) ||
		errors.Is(err, domain.ErrAuthExpired) ||
		errors.Is(err, domain.ErrTokenRefreshFailed)
}
