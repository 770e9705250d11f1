package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/goodeyes/frontdesk/internal/adapters/driving/tui"
	"github.com/goodeyes/frontdesk/internal/logger"
)

// WatchFunc starts watching the config file. The channel receives a value
// per change and is closed when ctx is cancelled.
type WatchFunc func(ctx context.Context) (<-chan struct{}, error)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// LogFile receives log output while the TUI owns the terminal.
	// Empty leaves logs on stderr.
	LogFile string

	// Watch reports config file changes. Optional.
	Watch WatchFunc
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive front desk console",
	Long: `Launch the interactive terminal console.

Pick a lookup from the menu and start typing: matches appear after two
characters and the backend is searched once you pause.

Controls:
  ↑/↓        - Move through matches
  Enter      - Pick the highlighted match
  ctrl+u     - Clear the selector
  Tab        - Next field in the usage form
  Esc        - Close / Back
  ?          - Help
  ctrl+c     - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	ports := tui.NewPorts(directoryService, authService, settingsService)

	if tuiConfig != nil && tuiConfig.LogFile != "" {
		closeLog, logErr := logger.ToFile(tuiConfig.LogFile)
		if logErr != nil {
			return fmt.Errorf("failed to open log file: %w", logErr)
		}
		defer func() {
			if cerr := closeLog(); cerr != nil {
				fmt.Fprintf(os.Stderr, "closing log file: %v\n", cerr)
			}
		}()
	}

	if tuiConfig != nil && tuiConfig.Watch != nil {
		changes, watchErr := tuiConfig.Watch(ctx)
		if watchErr != nil {
			// Live reload is a convenience; run without it.
			logger.Warn("Config reload disabled: %v", watchErr)
		} else {
			ports.ConfigChanges = changes
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	logger.Section("TUI")
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
