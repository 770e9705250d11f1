package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
	"github.com/goodeyes/frontdesk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBackendURL     = "backend.url"
	KeyBackendTimeout = "backend.timeout"
	KeyBackendRate    = "backend.rate_per_second"
	KeyMinQueryLength = "search.min_query_length"
	KeySearchDebounce = "search.debounce"
	KeySearchPageSize = "search.page_size"
	KeyCacheEnabled   = "cache.enabled"
)

// EnvBackendURL overrides the configured backend URL when set.
const EnvBackendURL = "FRONTDESK_BACKEND_URL"

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindDuration
	kindBool
)

var settingKinds = map[string]settingKind{
	KeyBackendURL:     kindString,
	KeyBackendTimeout: kindDuration,
	KeyBackendRate:    kindInt,
	KeyMinQueryLength: kindInt,
	KeySearchDebounce: kindDuration,
	KeySearchPageSize: kindInt,
	KeyCacheEnabled:   kindBool,
}

// SettingsService reads and writes application settings through a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current settings. Missing or malformed keys fall back to
// defaults, and FRONTDESK_BACKEND_URL wins over the stored URL.
func (s *SettingsService) Get() domain.Settings {
	settings := domain.DefaultSettings()

	if v := s.configStore.GetString(KeyBackendURL); v != "" {
		settings.Backend.URL = v
	}
	if v := s.getenv(EnvBackendURL); v != "" {
		settings.Backend.URL = v
	}
	if v := s.configStore.GetDuration(KeyBackendTimeout); v > 0 {
		settings.Backend.Timeout = v
	}
	if _, ok := s.configStore.Get(KeyBackendRate); ok {
		if v := s.configStore.GetInt(KeyBackendRate); v >= 0 {
			settings.Backend.RatePerSecond = v
		}
	}
	if _, ok := s.configStore.Get(KeyMinQueryLength); ok {
		if v := s.configStore.GetInt(KeyMinQueryLength); v >= 0 {
			settings.Search.MinQueryLength = v
		}
	}
	if _, ok := s.configStore.Get(KeySearchDebounce); ok {
		if v := s.configStore.GetDuration(KeySearchDebounce); v >= 0 {
			settings.Search.Debounce = v
		}
	}
	if v := s.configStore.GetInt(KeySearchPageSize); v > 0 {
		settings.Search.PageSize = v
	}
	if _, ok := s.configStore.Get(KeyCacheEnabled); ok {
		settings.Cache.Enabled = s.configStore.GetBool(KeyCacheEnabled)
	}

	return settings
}

// Set parses value for key, validates the resulting settings and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(kind, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	candidate := s.Get()
	applySetting(&candidate, key, parsed)
	if err := candidate.Validate(); err != nil {
		return err
	}

	// Durations are stored in their string form so the file stays readable.
	if d, ok := parsed.(time.Duration); ok {
		parsed = d.String()
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyBackendURL,
		KeyBackendTimeout,
		KeyBackendRate,
		KeyMinQueryLength,
		KeySearchDebounce,
		KeySearchPageSize,
		KeyCacheEnabled,
	}
}

// Reload re-reads the config file.
func (s *SettingsService) Reload() error {
	return s.configStore.Load()
}

// Value returns the effective value of key formatted for display.
func (s *SettingsService) Value(key string) (string, error) {
	settings := s.Get()
	switch key {
	case KeyBackendURL:
		return settings.Backend.URL, nil
	case KeyBackendTimeout:
		return settings.Backend.Timeout.String(), nil
	case KeyBackendRate:
		return strconv.Itoa(settings.Backend.RatePerSecond), nil
	case KeyMinQueryLength:
		return strconv.Itoa(settings.Search.MinQueryLength), nil
	case KeySearchDebounce:
		return settings.Search.Debounce.String(), nil
	case KeySearchPageSize:
		return strconv.Itoa(settings.Search.PageSize), nil
	case KeyCacheEnabled:
		return strconv.FormatBool(settings.Cache.Enabled), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

func parseSetting(kind settingKind, value string) (any, error) {
	switch kind {
	case kindInt:
		return strconv.Atoi(value)
	case kindDuration:
		return time.ParseDuration(value)
	case kindBool:
		return strconv.ParseBool(value)
	default:
		return value, nil
	}
}

func applySetting(settings *domain.Settings, key string, value any) {
	switch key {
	case KeyBackendURL:
		settings.Backend.URL = value.(string)
	case KeyBackendTimeout:
		settings.Backend.Timeout = value.(time.Duration)
	case KeyBackendRate:
		settings.Backend.RatePerSecond = value.(int)
	case KeyMinQueryLength:
		settings.Search.MinQueryLength = value.(int)
	case KeySearchDebounce:
		settings.Search.Debounce = value.(time.Duration)
	case KeySearchPageSize:
		settings.Search.PageSize = value.(int)
	case KeyCacheEnabled:
		settings.Cache.Enabled = value.(bool)
	}
}
