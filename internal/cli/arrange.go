package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/listgrid/internal/arrange"
	"github.com/vijay-prabhu/listgrid/internal/database"
	"github.com/vijay-prabhu/listgrid/internal/listing"
	"github.com/vijay-prabhu/listgrid/internal/logging"
	"github.com/vijay-prabhu/listgrid/internal/output"
)

var arrangeCmd = &cobra.Command{
	Use:   "arrange",
	Short: "Score, filter, and lay out listings",
	Long: `Arrange listings into grid tiles (or a sorted list for the list-only sort modes).

Listings come from the database, or from a JSON/YAML file with --file.
Flags override the [engine] and [filters] sections of the config file.

Examples:
  listgrid arrange                              # Tile stored listings
  listgrid arrange -o grid                      # ASCII preview of the first template cycle
  listgrid arrange --policy=engagement-weighted # Use the engagement-weighted policy
  listgrid arrange --sort=recently-listed       # Newest first, no tiling
  listgrid arrange --badge=trend --tag=outdoor  # Filter by badge label and tag
  listgrid arrange --file=listings.yaml --now="2025-06-01 12:00"`,
	RunE: runArrange,
}

var (
	arrangeFile     string
	arrangePolicy   string
	arrangeSort     string
	arrangeCategory string
	arrangeGroup    string
	arrangeBadge    string
	arrangeTag      string
	arrangeNow      string
	arrangeMinTiled int
)

func init() {
	rootCmd.AddCommand(arrangeCmd)

	arrangeCmd.Flags().StringVarP(&arrangeFile, "file", "f", "", "Read listings from a JSON or YAML file instead of the database")
	arrangeCmd.Flags().StringVar(&arrangePolicy, "policy", "", "Scoring policy (engagement-weighted, badge-weighted)")
	arrangeCmd.Flags().StringVar(&arrangeSort, "sort", "", "Sort mode (default, trending, chronological, recently-listed, by-category)")
	arrangeCmd.Flags().StringVar(&arrangeCategory, "category", "", "Only listings in this category")
	arrangeCmd.Flags().StringVar(&arrangeGroup, "group", "", "Only listings in this group")
	arrangeCmd.Flags().StringVar(&arrangeBadge, "badge", "", "Only listings with a badge label containing this text")
	arrangeCmd.Flags().StringVar(&arrangeTag, "tag", "", "Only listings with this tag")
	arrangeCmd.Flags().StringVar(&arrangeNow, "now", "", "Reference time for badges and scores (default: current time)")
	arrangeCmd.Flags().IntVar(&arrangeMinTiled, "min-tiled", -1, "Smallest collection to tile; fewer come back as a ranked list (0 = always tile)")
}

func runArrange(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	now, err := referenceTime(arrangeNow)
	if err != nil {
		return err
	}

	// Flags override config
	opts := cfg.ArrangeOptions()
	if arrangePolicy != "" {
		opts.ScoringPolicy = arrangePolicy
	}
	if arrangeSort != "" {
		opts.SortMode = arrangeSort
	}
	if arrangeCategory != "" {
		opts.Filters.Category = arrangeCategory
	}
	if arrangeGroup != "" {
		opts.Filters.GroupID = arrangeGroup
	}
	if arrangeBadge != "" {
		opts.Filters.BadgeLabel = arrangeBadge
	}
	if arrangeTag != "" {
		opts.Filters.Tag = arrangeTag
	}
	if arrangeMinTiled >= 0 {
		opts.MinTiledItems = arrangeMinTiled
	}

	engine, err := arrange.New(opts)
	if err != nil {
		return err
	}

	var items []listing.Item
	if arrangeFile != "" {
		items, err = listing.LoadFile(arrangeFile)
		if err != nil {
			return err
		}
	} else {
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		items, err = db.ListListings(cmd.Context(), database.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list listings: %w", err)
		}
	}

	result := engine.Arrange(items, now)
	logging.Debug("arranged listings",
		"total", result.Filter.Total,
		"kept", result.Filter.Kept,
		"layout", result.Layout,
		"fallback", result.Fallback,
	)

	w := cmd.OutOrStdout()
	return output.OutputTo(w, outputFmt, result, NewTerminal(w).Painter())
}

// referenceTime parses the --now flag, defaulting to the current time
func referenceTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	return listing.ParseTime(s)
}
