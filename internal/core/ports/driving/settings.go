package driving

import "github.com/goodeyes/frontdesk/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, filling gaps with defaults.
	Get() domain.Settings

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// Value returns the effective value of key formatted for display.
	Value(key string) (string, error)

	// Reload re-reads settings from storage.
	Reload() error
}
