// Package tui provides the interactive front desk console.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/goodeyes/frontdesk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Directory looks up patients, consumables and staff, and records usage.
	Directory driving.DirectoryService

	// Auth provides the signed-in session and its permissions.
	Auth driving.AuthService

	// Settings supplies search tuning and reloads it when the file changes.
	Settings driving.SettingsService

	// ConfigChanges receives a value whenever the config file is modified.
	// Optional; nil disables live reloading.
	ConfigChanges <-chan struct{}
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	directory driving.DirectoryService,
	auth driving.AuthService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Directory: directory,
		Auth:      auth,
		Settings:  settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Directory == nil {
		return ErrMissingDirectoryService
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
