package domain

import (
	"fmt"
	"time"
)

// Settings holds the user-configurable behaviour of the front desk.
type Settings struct {
	Backend BackendSettings
	Search  SearchSettings
	Cache   CacheSettings
}

// BackendSettings configures the hospital backend connection.
type BackendSettings struct {
	// URL is the API base, e.g. "http://localhost:5025/api".
	URL string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// RatePerSecond throttles outgoing requests. Zero disables throttling.
	RatePerSecond int
}

// SearchSettings configures lookups.
type SearchSettings struct {
	// MinQueryLength is the number of characters before a lookup runs.
	MinQueryLength int

	// Debounce delays backend searches while the user is typing.
	Debounce time.Duration

	// PageSize is the number of patients requested per search.
	PageSize int
}

// CacheSettings configures the offline record cache.
type CacheSettings struct {
	Enabled bool
}

// Default setting values.
const (
	DefaultBackendURL      = "http://localhost:5025/api"
	DefaultBackendTimeout  = 15 * time.Second
	DefaultRatePerSecond   = 10
	DefaultMinQueryLength  = 2
	DefaultSearchDebounce  = 300 * time.Millisecond
	DefaultPatientPageSize = 50
	DefaultStaffPageSize   = 100
)

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Backend: BackendSettings{
			URL:           DefaultBackendURL,
			Timeout:       DefaultBackendTimeout,
			RatePerSecond: DefaultRatePerSecond,
		},
		Search: SearchSettings{
			MinQueryLength: DefaultMinQueryLength,
			Debounce:       DefaultSearchDebounce,
			PageSize:       DefaultPatientPageSize,
		},
		Cache: CacheSettings{
			Enabled: true,
		},
	}
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	if s.Backend.URL == "" {
		return fmt.Errorf("%w: backend url is empty", ErrInvalidInput)
	}
	if s.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend timeout must be positive", ErrInvalidInput)
	}
	if s.Backend.RatePerSecond < 0 {
		return fmt.Errorf("%w: rate per second must not be negative", ErrInvalidInput)
	}
	if s.Search.MinQueryLength < 0 {
		return fmt.Errorf("%w: min query length must not be negative", ErrInvalidInput)
	}
	if s.Search.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalidInput)
	}
	if s.Search.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive", ErrInvalidInput)
	}
	return nil
}
