package driving

import (
	"context"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

// CacheService manages the offline record cache.
type CacheService interface {
	// Sync refreshes the cache for kind from the backend and returns
	// the number of records stored.
	Sync(ctx context.Context, kind domain.RecordKind) (int, error)

	// Stats summarises the cache contents.
	Stats(ctx context.Context) ([]domain.CacheStats, error)

	// Clear empties the cache.
	Clear(ctx context.Context) error
}
