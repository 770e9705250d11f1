package services

import (
	"context"
	"fmt"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
	"github.com/goodeyes/frontdesk/internal/core/ports/driving"
	"github.com/goodeyes/frontdesk/internal/logger"
)

// Ensure CacheService implements the interface.
var _ driving.CacheService = (*CacheService)(nil)

// Paging limits for a full cache sync.
const (
	syncPageSize = 200
	maxSyncPages = 100
)

// CacheService fills and inspects the offline record cache.
type CacheService struct {
	backend  driven.Backend
	cache    driven.RecordCache
	settings driving.SettingsService
}

// NewCacheService creates a new cache service. A nil cache makes every
// operation return domain.ErrCacheUnavailable. Settings may be nil, in which
// case the cache is treated as enabled.
func NewCacheService(
	backend driven.Backend,
	cache driven.RecordCache,
	settings driving.SettingsService,
) *CacheService {
	return &CacheService{backend: backend, cache: cache, settings: settings}
}

// Sync downloads every record of kind and stores it. It refuses with
// domain.ErrCacheUnavailable while cache.enabled is off, since nothing
// synced then would be kept or read.
func (s *CacheService) Sync(ctx context.Context, kind domain.RecordKind) (int, error) {
	if s.cache == nil {
		return 0, domain.ErrCacheUnavailable
	}
	if s.settings != nil && !s.settings.Get().Cache.Enabled {
		return 0, fmt.Errorf("%w: cache.enabled is false", domain.ErrCacheUnavailable)
	}

	logger.Section("Cache Sync: " + kind.String())
	var (
		n   int
		err error
	)
	switch kind {
	case domain.RecordKindPatient:
		n, err = syncPages(ctx, patientSort, s.backend.ListPatients, s.cache.SavePatients)
	case domain.RecordKindConsumable:
		n, err = syncPages(ctx, "name,asc", s.backend.ListConsumables, s.cache.SaveConsumables)
	case domain.RecordKindStaff:
		n, err = syncPages(ctx, staffSort, s.backend.ListStaff, s.cache.SaveStaff)
	default:
		return 0, fmt.Errorf("%w: record kind %q", domain.ErrUnsupportedType, kind)
	}
	if err != nil {
		return n, fmt.Errorf("sync %s: %w", kind, err)
	}

	logger.Info("Cached %d %s", n, kind)
	return n, nil
}

// syncPages walks list page by page, saving each page, until the last page
// or maxSyncPages.
func syncPages[T any](
	ctx context.Context,
	sort string,
	list func(context.Context, domain.Pageable) (*domain.Page[T], error),
	save func(context.Context, []T) error,
) (int, error) {
	total := 0
	for page := 0; page < maxSyncPages; page++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		result, err := list(ctx, domain.Pageable{Page: page, Size: syncPageSize, Sort: sort})
		if err != nil {
			return total, err
		}
		if len(result.Content) > 0 {
			if err := save(ctx, result.Content); err != nil {
				return total, err
			}
		}
		total += len(result.Content)
		logger.Debug("Page %d: %d records", page, len(result.Content))

		if result.Last() || len(result.Content) == 0 {
			return total, nil
		}
	}
	logger.Warn("Stopped after %d pages", maxSyncPages)
	return total, nil
}

// Stats summarises the cache contents.
func (s *CacheService) Stats(ctx context.Context) ([]domain.CacheStats, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheUnavailable
	}
	return s.cache.Stats(ctx)
}

// Clear empties the cache.
func (s *CacheService) Clear(ctx context.Context) error {
	if s.cache == nil {
		return domain.ErrCacheUnavailable
	}
	return s.cache.Clear(ctx)
}
