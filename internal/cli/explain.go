package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/listgrid/internal/arrange"
	"github.com/vijay-prabhu/listgrid/internal/database"
	"github.com/vijay-prabhu/listgrid/internal/output"
)

var explainCmd = &cobra.Command{
	Use:   "explain <id>",
	Short: "Show how a listing is scored",
	Long: `Break a listing's score down clause by clause under both scoring policies,
with its derived badges and the tile size each score earns.

Examples:
  listgrid explain 3f2a...                 # Explain a stored listing
  listgrid explain 3f2a... --now=2025-06-01 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

var explainNow string

func init() {
	rootCmd.AddCommand(explainCmd)
	explainCmd.Flags().StringVar(&explainNow, "now", "", "Reference time (default: current time)")
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	now, err := referenceTime(explainNow)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	item, err := db.GetListing(cmd.Context(), args[0])
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("listing not found: %s", args[0])
	}
	if err != nil {
		return err
	}

	report, err := arrange.Explain(*item, now, cfg.Engine.RisingRule())
	if err != nil {
		return err
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, report, nil)
}
