// Command frontdesk is the Good Eyes front desk console.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/goodeyes/frontdesk/internal/adapters/driven/backend/rest"
	"github.com/goodeyes/frontdesk/internal/adapters/driven/config/file"
	"github.com/goodeyes/frontdesk/internal/adapters/driven/storage/memory"
	"github.com/goodeyes/frontdesk/internal/adapters/driven/storage/sqlite"
	"github.com/goodeyes/frontdesk/internal/adapters/driving/cli"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
	"github.com/goodeyes/frontdesk/internal/core/services"
	"github.com/goodeyes/frontdesk/internal/logger"
)

// logFile receives logs while the TUI owns the terminal.
const logFile = "frontdesk.log"

func main() {
	os.Exit(run())
}

// run wires the services and executes the command line, returning the
// process exit code. Command errors are printed by cobra.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, err := file.DefaultDir()
	if err != nil {
		return fail(err)
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return fail(fmt.Errorf("failed to load config: %w", err))
	}
	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Get()

	sessions, err := file.NewSessionStore(dir)
	if err != nil {
		return fail(fmt.Errorf("failed to open session store: %w", err))
	}

	backend, err := rest.NewClient(rest.Config{
		BaseURL:       settings.Backend.URL,
		Timeout:       settings.Backend.Timeout,
		RatePerSecond: settings.Backend.RatePerSecond,
	}, sessions)
	if err != nil {
		return fail(fmt.Errorf("failed to create backend client: %w", err))
	}

	cache := openCache(dir, settings.Cache.Enabled)
	defer func() {
		if cerr := cache.Close(); cerr != nil {
			logger.Warn("closing record cache: %v", cerr)
		}
	}()

	authService := services.NewAuthService(backend, sessions)
	cli.SetServices(cli.Services{
		Directory: services.NewDirectoryService(backend, cache, settingsService, authService),
		Auth:      authService,
		Cache:     services.NewCacheService(backend, cache, settingsService),
		Settings:  settingsService,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		LogFile: filepath.Join(dir, logFile),
		Watch:   file.NewWatcher(configStore.Path()).Watch,
	})

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

// openCache returns the SQLite record cache, falling back to memory when
// caching is disabled or the database cannot be opened.
func openCache(dir string, enabled bool) driven.RecordCache {
	if !enabled {
		return memory.NewRecordCache()
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		logger.Warn("Offline cache unavailable, using memory: %v", err)
		return memory.NewRecordCache()
	}
	return store
}
