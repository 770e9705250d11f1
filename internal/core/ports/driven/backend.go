package driven

import (
	"context"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

// Backend is the hospital REST API.
//
// Implementations map transport failures onto domain errors:
// unreachable hosts wrap domain.ErrBackendUnavailable, rejected credentials
// wrap domain.ErrAuthInvalid, and expired sessions wrap domain.ErrAuthExpired.
type Backend interface {
	// Login exchanges credentials for a session.
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)

	// Refresh exchanges a refresh token for a new session.
	Refresh(ctx context.Context, refreshToken string) (*domain.Session, error)

	// SearchPatients runs the backend patient search.
	SearchPatients(ctx context.Context, query string, page domain.Pageable) (*domain.Page[domain.Patient], error)

	// ListPatients lists every patient one page at a time.
	ListPatients(ctx context.Context, page domain.Pageable) (*domain.Page[domain.Patient], error)

	// SearchConsumables runs the backend consumable item search.
	SearchConsumables(ctx context.Context, query string) ([]domain.ConsumableItem, error)

	// ListConsumables lists every consumable item one page at a time.
	ListConsumables(ctx context.Context, page domain.Pageable) (*domain.Page[domain.ConsumableItem], error)

	// ListStaff lists hospital users one page at a time.
	ListStaff(ctx context.Context, page domain.Pageable) (*domain.Page[domain.StaffMember], error)

	// RecordUsage records consumption of a consumable item.
	RecordUsage(ctx context.Context, usage domain.ConsumableUsage) error
}
