package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/pickers"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
	"github.com/goodeyes/frontdesk/internal/core/ports/driving"
	"github.com/goodeyes/frontdesk/internal/core/selector"
	"github.com/goodeyes/frontdesk/internal/logger"
)

// Ensure DirectoryService implements the interface.
var _ driving.DirectoryService = (*DirectoryService)(nil)

// Backend sort orders used by lookups.
const (
	patientSort = "firstName,asc"
	staffSort   = "username,asc"
)

// DirectoryService runs record lookups against the backend, writing results
// through to the record cache and answering from it while offline.
type DirectoryService struct {
	backend  driven.Backend
	cache    driven.RecordCache
	settings driving.SettingsService
	auth     driving.AuthService
}

// NewDirectoryService creates a new directory service.
// The cache is optional; without it lookups fail while the backend is down.
func NewDirectoryService(
	backend driven.Backend,
	cache driven.RecordCache,
	settings driving.SettingsService,
	auth driving.AuthService,
) *DirectoryService {
	return &DirectoryService{
		backend:  backend,
		cache:    cache,
		settings: settings,
		auth:     auth,
	}
}

// searchable trims query and reports whether it reaches the minimum length.
func (s *DirectoryService) searchable(query string) (string, domain.SearchSettings, bool) {
	cfg := s.settings.Get().Search
	query = strings.TrimSpace(query)
	return query, cfg, selector.QueryLen(query) >= cfg.MinQueryLength
}

// cacheEnabled reports whether results should be written to or read from the cache.
func (s *DirectoryService) cacheEnabled() bool {
	return s.cache != nil && s.settings.Get().Cache.Enabled
}

// SearchPatients searches patients by name, phone, national ID or number.
func (s *DirectoryService) SearchPatients(ctx context.Context, query string) ([]domain.Patient, error) {
	query, cfg, ok := s.searchable(query)
	if !ok {
		return nil, nil
	}

	logger.Debug("Searching patients for %q", query)
	page, err := s.backend.SearchPatients(ctx, query, domain.Pageable{Size: cfg.PageSize, Sort: patientSort})
	if err != nil {
		if s.offline(err) {
			cached, cacheErr := s.cache.ListPatients(ctx)
			if cacheErr != nil {
				return nil, fmt.Errorf("search patients offline: %w", cacheErr)
			}
			logger.Warn("Backend unavailable, matching %d cached patients", len(cached))
			return pickers.Patients().WithMinQueryLength(cfg.MinQueryLength).Filter(cached, query), nil
		}
		return nil, fmt.Errorf("search patients: %w", err)
	}

	if s.cacheEnabled() {
		if err := s.cache.SavePatients(ctx, page.Content); err != nil {
			logger.Warn("Caching patients: %v", err)
		}
	}
	return page.Content, nil
}

// SearchConsumables searches consumable items by name, SKU or description.
func (s *DirectoryService) SearchConsumables(ctx context.Context, query string) ([]domain.ConsumableItem, error) {
	query, cfg, ok := s.searchable(query)
	if !ok {
		return nil, nil
	}

	logger.Debug("Searching consumables for %q", query)
	items, err := s.backend.SearchConsumables(ctx, query)
	if err != nil {
		if s.offline(err) {
			cached, cacheErr := s.cache.ListConsumables(ctx)
			if cacheErr != nil {
				return nil, fmt.Errorf("search consumables offline: %w", cacheErr)
			}
			logger.Warn("Backend unavailable, matching %d cached consumables", len(cached))
			return pickers.Consumables().WithMinQueryLength(cfg.MinQueryLength).Filter(cached, query), nil
		}
		return nil, fmt.Errorf("search consumables: %w", err)
	}

	if s.cacheEnabled() {
		if err := s.cache.SaveConsumables(ctx, items); err != nil {
			logger.Warn("Caching consumables: %v", err)
		}
	}
	return items, nil
}

// SearchStaff returns the first page of hospital users. The backend has no
// staff search, so callers narrow the result with the staff picker.
func (s *DirectoryService) SearchStaff(ctx context.Context, query string) ([]domain.StaffMember, error) {
	query, cfg, ok := s.searchable(query)
	if !ok {
		return nil, nil
	}

	logger.Debug("Listing staff for %q", query)
	page, err := s.backend.ListStaff(ctx, domain.Pageable{Size: domain.DefaultStaffPageSize, Sort: staffSort})
	if err != nil {
		if s.offline(err) {
			cached, cacheErr := s.cache.ListStaff(ctx)
			if cacheErr != nil {
				return nil, fmt.Errorf("search staff offline: %w", cacheErr)
			}
			logger.Warn("Backend unavailable, matching %d cached staff", len(cached))
			return pickers.Staff().WithMinQueryLength(cfg.MinQueryLength).Filter(cached, query), nil
		}
		return nil, fmt.Errorf("search staff: %w", err)
	}

	if s.cacheEnabled() {
		if err := s.cache.SaveStaff(ctx, page.Content); err != nil {
			logger.Warn("Caching staff: %v", err)
		}
	}
	return page.Content, nil
}

// RecordUsage validates and records consumable usage.
func (s *DirectoryService) RecordUsage(ctx context.Context, usage domain.ConsumableUsage) error {
	if err := usage.Validate(); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}

	if _, err := s.auth.Session(); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	if !s.auth.Permissions().CanRecordUsage() {
		return fmt.Errorf("record usage: %w", domain.ErrForbidden)
	}

	logger.Info("Recording usage of item %d (qty %g, patient %d)",
		usage.ConsumableItemID, usage.QuantityUsed, usage.PatientID)
	if err := s.backend.RecordUsage(ctx, usage); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// offline reports whether err should be answered from the cache.
func (s *DirectoryService) offline(err error) bool {
	return errors.Is(err, domain.ErrBackendUnavailable) && s.cacheEnabled()
}
