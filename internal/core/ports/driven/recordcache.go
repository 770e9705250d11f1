package driven

import (
	"context"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

// RecordCache keeps the most recently fetched records for offline lookups.
// Save replaces existing records with the same ID and leaves others alone.
type RecordCache interface {
	SavePatients(ctx context.Context, patients []domain.Patient) error
	ListPatients(ctx context.Context) ([]domain.Patient, error)

	SaveConsumables(ctx context.Context, items []domain.ConsumableItem) error
	ListConsumables(ctx context.Context) ([]domain.ConsumableItem, error)

	SaveStaff(ctx context.Context, staff []domain.StaffMember) error
	ListStaff(ctx context.Context) ([]domain.StaffMember, error)

	// Stats returns one entry per record kind, in domain.RecordKinds order.
	Stats(ctx context.Context) ([]domain.CacheStats, error)

	// Clear removes every cached record.
	Clear(ctx context.Context) error

	// Close releases the underlying storage.
	Close() error
}
