package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/listgrid/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show listing counts per category",
	Long: `Display how many stored listings each category holds, largest first.

Examples:
  listgrid stats          # Table of categories
  listgrid stats -o json  # Output as JSON`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := db.CountByCategory(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count listings: %w", err)
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, counts, nil)
}
