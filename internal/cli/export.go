package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/listgrid/internal/database"
	"github.com/vijay-prabhu/listgrid/internal/listing"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export listings to JSON or YAML",
	Long: `Export stored listings in the same layout 'listings import' reads.

Supported formats:
  - yaml: YAML sequence of listings
  - json: JSON array of listings

Examples:
  listgrid export --format=yaml > listings.yaml
  listgrid export --format=json --out=listings.json
  listgrid export --category=tour`,
	RunE: runExport,
}

var (
	exportFormat   string
	exportOut      string
	exportCategory string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "Export format (yaml, json)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write to a file instead of stdout")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "Only export this category")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	opts := database.ListOptions{}
	if exportCategory != "" {
		opts.Category = &exportCategory
	}
	items, err := db.ListListings(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list listings: %w", err)
	}

	if exportOut == "" {
		return listing.Encode(cmd.OutOrStdout(), items, exportFormat)
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := listing.Encode(f, items, exportFormat); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d listings to %s\n", len(items), exportOut)
	return nil
}
