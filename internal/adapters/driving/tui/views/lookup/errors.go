package lookup

import (
	"errors"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

// Error definitions for the lookup views.
var (
	// ErrNoSearchFunc indicates that no search function was provided.
	ErrNoSearchFunc = errors.New("search function is required")
)

// DescribeError turns a lookup failure into a status line for the front desk.
func DescribeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrAuthExpired):
		return "not signed in, run frontdesk login"
	case errors.Is(err, domain.ErrForbidden):
		return "your role does not allow this"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return "backend unreachable and no cached records"
	case errors.Is(err, domain.ErrRateLimited):
		return "too many requests, slow down"
	default:
		return err.Error()
	}
}
