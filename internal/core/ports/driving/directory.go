package driving

import (
	"context"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

// DirectoryService looks up the records the front desk selects from.
//
// Queries shorter than the configured minimum return no records and no error.
type DirectoryService interface {
	SearchPatients(ctx context.Context, query string) ([]domain.Patient, error)
	SearchConsumables(ctx context.Context, query string) ([]domain.ConsumableItem, error)
	SearchStaff(ctx context.Context, query string) ([]domain.StaffMember, error)

	// RecordUsage records consumable usage for the logged-in user.
	// Returns domain.ErrForbidden when the user's roles do not allow it.
	RecordUsage(ctx context.Context, usage domain.ConsumableUsage) error
}
