// Package cli provides the frontdesk command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/goodeyes/frontdesk/internal/core/ports/driving"
	"github.com/goodeyes/frontdesk/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var verbose bool

// Driving ports used by the commands. Set with SetServices before Execute.
var (
	directoryService driving.DirectoryService
	authService      driving.AuthService
	cacheService     driving.CacheService
	settingsService  driving.SettingsService
)

// Errors returned when a command runs without its service.
var (
	errNoDirectory = errors.New("directory service not configured")
	errNoAuth      = errors.New("auth service not configured")
	errNoCache     = errors.New("cache service not configured")
	errNoSettings  = errors.New("settings service not configured")
)

// Services holds the driving ports the commands run against.
type Services struct {
	Directory driving.DirectoryService
	Auth      driving.AuthService
	Cache     driving.CacheService
	Settings  driving.SettingsService
}

// SetServices sets the services used by every command.
func SetServices(s Services) {
	directoryService = s.Directory
	authService = s.Auth
	cacheService = s.Cache
	settingsService = s.Settings
}

var rootCmd = &cobra.Command{
	Use:   "frontdesk",
	Short: "Good Eyes front desk console",
	Long: `frontdesk looks up patients, consumable items and staff in the Good Eyes
hospital system, and records consumable usage against patients.

Run "frontdesk login" first, then "frontdesk tui" for the interactive console
or "frontdesk search" for one-off lookups.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, or Background when run
// without one (tests calling RunE directly).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
