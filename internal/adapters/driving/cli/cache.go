package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the offline record cache",
	Long: `The record cache keeps a local copy of patients, consumable items and
staff so lookups keep working while the hospital backend is unreachable.`,
}

var cacheSyncCmd = &cobra.Command{
	Use:   "sync [patients|consumables|staff]",
	Short: "Download records into the cache",
	Long: `Downloads every record of the given kind into the local cache.
Without a kind, all kinds are synchronised.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCacheSync,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached record counts",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached record",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheSyncCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheSync(cmd *cobra.Command, args []string) error {
	if cacheService == nil {
		return errNoCache
	}

	kinds := domain.RecordKinds()
	if len(args) == 1 {
		kind, err := domain.ParseRecordKind(args[0])
		if err != nil {
			return err
		}
		kinds = []domain.RecordKind{kind}
	}

	ctx := commandContext(cmd)
	for _, kind := range kinds {
		cmd.Printf("Synchronising %s... ", kind)
		n, err := cacheService.Sync(ctx, kind)
		if err != nil {
			cmd.Println("FAILED")
			return fmt.Errorf("cache sync failed: %w", err)
		}
		cmd.Printf("%d cached\n", n)
	}
	return nil
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	if cacheService == nil {
		return errNoCache
	}

	stats, err := cacheService.Stats(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	cmd.Printf("%-12s %8s  %s\n", "KIND", "RECORDS", "LAST SYNC")
	for _, s := range stats {
		last := "never"
		if !s.LastSync.IsZero() {
			last = s.LastSync.Local().Format("2006-01-02 15:04")
		}
		cmd.Printf("%-12s %8d  %s\n", s.Kind, s.Count, last)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if cacheService == nil {
		return errNoCache
	}
	if err := cacheService.Clear(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	cmd.Println("Cache cleared.")
	return nil
}
