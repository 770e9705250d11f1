// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/goodeyes/frontdesk/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewPatients is the patient lookup.
	ViewPatients
	// ViewConsumables is the consumable lookup.
	ViewConsumables
	// ViewStaff is the staff lookup.
	ViewStaff
	// ViewUsage is the record usage form.
	ViewUsage
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewPatients:
		return "patients"
	case ViewConsumables:
		return "consumables"
	case ViewStaff:
		return "staff"
	case ViewUsage:
		return "usage"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ConfigChanged signals the configuration file was modified on disk.
type ConfigChanged struct{}

// SettingsApplied carries settings after a reload.
type SettingsApplied struct {
	Settings domain.Settings
	Err      error
}

// UsageRecorded signals a consumable usage submission finished. Item and
// Patient are the records chosen when the form was submitted.
type UsageRecorded struct {
	Usage   domain.ConsumableUsage
	Item    domain.ConsumableItem
	Patient *domain.Patient
	Err     error
}
