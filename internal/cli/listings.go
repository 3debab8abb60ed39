package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/listgrid/internal/database"
	"github.com/vijay-prabhu/listgrid/internal/listing"
	"github.com/vijay-prabhu/listgrid/internal/logging"
	"github.com/vijay-prabhu/listgrid/internal/output"
)

var listingsCmd = &cobra.Command{
	Use:     "listings",
	Aliases: []string{"ls"},
	Short:   "Manage stored listings",
}

var listingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored listings",
	Long: `List stored listings, oldest first, with optional filters.

Examples:
  listgrid listings list                      # List all listings
  listgrid listings list --category=tour      # Only tours
  listgrid listings list --since=7d           # Listings created in the last 7 days
  listgrid listings list -o json              # Output as JSON`,
	RunE: runListingsList,
}

var listingsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runListingsAdd,
}

var listingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import listings from a JSON or YAML file",
	Long: `Import listings from a JSON or YAML file. Listings with an existing ID are replaced.
The whole file is imported in one transaction.

Each entry takes: id, title, category, tags, group_id, is_promoted,
promotion_level (none, boosted, priority), engagement_count,
engagement_delta_24h, is_editors_pick, created_at.`,
	Args: cobra.ExactArgs(1),
	RunE: runListingsImport,
}

var listingsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runListingsShow,
}

var listingsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runListingsDelete,
}

var (
	listCategory string
	listGroup    string
	listSince    string
	listLimit    int

	addCategory   string
	addTags       []string
	addGroup      string
	addPromoted   bool
	addPromotion  string
	addEngagement int
	addDelta      float64
	addEditors    bool
	addCreated    string
)

func init() {
	rootCmd.AddCommand(listingsCmd)
	listingsCmd.AddCommand(listingsListCmd)
	listingsCmd.AddCommand(listingsAddCmd)
	listingsCmd.AddCommand(listingsImportCmd)
	listingsCmd.AddCommand(listingsShowCmd)
	listingsCmd.AddCommand(listingsDeleteCmd)

	listingsListCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	listingsListCmd.Flags().StringVar(&listGroup, "group", "", "Filter by group")
	listingsListCmd.Flags().StringVar(&listSince, "since", "", "Filter by age (e.g., 7d, 2w, 1m)")
	listingsListCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")

	listingsAddCmd.Flags().StringVar(&addCategory, "category", "", "Category")
	listingsAddCmd.Flags().StringSliceVar(&addTags, "tag", nil, "Tag (repeatable)")
	listingsAddCmd.Flags().StringVar(&addGroup, "group", "", "Group ID")
	listingsAddCmd.Flags().BoolVar(&addPromoted, "promoted", false, "Mark as promoted (Sponsored badge)")
	listingsAddCmd.Flags().StringVar(&addPromotion, "promotion", "none", "Promotion level (none, boosted, priority)")
	listingsAddCmd.Flags().IntVar(&addEngagement, "engagement", 0, "Engagement count")
	listingsAddCmd.Flags().Float64Var(&addDelta, "delta", 0, "Engagement change in the last 24h")
	listingsAddCmd.Flags().BoolVar(&addEditors, "editors-pick", false, "Mark as an editor's pick")
	listingsAddCmd.Flags().StringVar(&addCreated, "created", "", "Creation time (default: now)")
}

// openStore loads config and opens the listing database
func openStore() (*database.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func runListingsList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	// Build query options
	opts := database.ListOptions{
		Limit: listLimit,
	}
	if listCategory != "" {
		opts.Category = &listCategory
	}
	if listGroup != "" {
		opts.GroupID = &listGroup
	}
	if listSince != "" {
		since, err := parseDuration(listSince)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		sinceTime := time.Now().Add(-since)
		opts.Since = &sinceTime
	}

	items, err := db.ListListings(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list listings: %w", err)
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, items, nil)
}

func runListingsAdd(cmd *cobra.Command, args []string) error {
	level, err := listing.ParsePromotionLevel(addPromotion)
	if err != nil {
		return err
	}
	if addEngagement < 0 {
		return fmt.Errorf("engagement must not be negative")
	}

	created, err := referenceTime(addCreated)
	if err != nil {
		return err
	}

	item := &listing.Item{
		Title:           args[0],
		Category:        addCategory,
		Tags:            addTags,
		IsPromoted:      addPromoted,
		PromotionLevel:  level,
		EngagementCount: addEngagement,
		IsEditorsPick:   addEditors,
		CreatedAt:       created,
	}
	if addGroup != "" {
		item.GroupID = &addGroup
	}
	if cmd.Flags().Changed("delta") {
		item.EngagementDelta24h = &addDelta
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateListing(cmd.Context(), item); err != nil {
		return fmt.Errorf("failed to add listing: %w", err)
	}

	if outputFmt == "json" {
		return output.JSONTo(cmd.OutOrStdout(), item)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added listing %s\n", item.ID)
	return nil
}

func runListingsImport(cmd *cobra.Command, args []string) error {
	items, err := listing.LoadFile(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.ImportListings(cmd.Context(), items)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	logging.Info("imported listings", "file", args[0], "count", n)

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d listings from %s\n", n, args[0])
	return nil
}

func runListingsShow(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	item, err := db.GetListing(cmd.Context(), args[0])
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("listing not found: %s", args[0])
	}
	if err != nil {
		return err
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, item, nil)
}

func runListingsDelete(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteListing(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("listing not found: %s", args[0])
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted listing %s\n", args[0])
	return nil
}

// parseDuration parses a human-readable duration like "7d", "2w", "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid duration value")
	}

	switch unit {
	case 'h':
		return time.Duration(value) * time.Hour, nil
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %c (use h, d, w, or m)", unit)
	}
}
