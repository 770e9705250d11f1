package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/pickers"
	"github.com/goodeyes/frontdesk/internal/core/selector"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <patients|consumables|staff> <query>",
	Short: "Look up patients, consumable items or staff",
	Long: `Searches the hospital backend and narrows the results with the same
match filter the interactive selectors use. Queries shorter than
search.min_query_length return nothing. When the backend is unreachable,
matching records from the local cache are shown instead.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results (0 for all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errNoDirectory
	}

	kind, err := domain.ParseRecordKind(args[0])
	if err != nil {
		return err
	}
	query := strings.Join(args[1:], " ")
	minLen := domain.DefaultMinQueryLength
	if settingsService != nil {
		minLen = settingsService.Get().Search.MinQueryLength
	}

	ctx := commandContext(cmd)
	switch kind {
	case domain.RecordKindPatient:
		records, err := directoryService.SearchPatients(ctx, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return outputSearch(cmd, pickers.Patients().WithMinQueryLength(minLen), records, query)

	case domain.RecordKindConsumable:
		records, err := directoryService.SearchConsumables(ctx, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return outputSearch(cmd, pickers.Consumables().WithMinQueryLength(minLen), records, query)

	default:
		records, err := directoryService.SearchStaff(ctx, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return outputSearch(cmd, pickers.Staff().WithMinQueryLength(minLen), records, query)
	}
}

func outputSearch[T any](cmd *cobra.Command, strategy selector.Strategy[T], records []T, query string) error {
	matches := strategy.Filter(records, query)
	if searchLimit > 0 && len(matches) > searchLimit {
		matches = matches[:searchLimit]
	}

	if searchJSON {
		return outputSearchJSON(cmd, matches)
	}
	return outputSearchTable(cmd, strategy, matches, query)
}

func outputSearchJSON[T any](cmd *cobra.Command, matches []T) error {
	if matches == nil {
		matches = []T{}
	}
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable[T any](cmd *cobra.Command, strategy selector.Strategy[T], matches []T, query string) error {
	if !strategy.Config.Searchable(query) {
		cmd.Println(strategy.Config.HintMessage())
		return nil
	}
	if len(matches) == 0 {
		cmd.Println(strategy.Config.NoResults())
		return nil
	}

	for i, rec := range matches {
		lines := strategy.CandidateLines(rec)
		if len(lines) == 0 {
			continue
		}
		cmd.Printf("  [%d] %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			cmd.Printf("      %s\n", line)
		}
		cmd.Println()
	}
	return nil
}
