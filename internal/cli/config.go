package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/listgrid/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	configFile := configPath
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(out, "Config file already exists at %s\n", configFile)
		fmt.Fprintln(out, "Use 'listgrid config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Import listings: listgrid listings import listings.yaml")
	fmt.Fprintln(out, "  2. Preview the grid: listgrid arrange -o grid")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "No config file found. Run 'listgrid config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	if _, err := config.Parse(data); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n\n", err)
	}

	fmt.Fprintf(out, "# Config file: %s\n\n", configPath)
	fmt.Fprintln(out, string(data))
	return nil
}

const defaultConfig = `# listgrid configuration

[database]
path = "~/.local/share/listgrid/listgrid.db"

[engine]
scoring_policy = "badge-weighted"   # badge-weighted or engagement-weighted
sort_mode = "default"               # default, trending, chronological, recently-listed, by-category
min_tiled_items = 3                 # smaller collections come back as a ranked list (0 = always tile)
badge_display_limit = 3             # badges shown per listing (0 = all)

[engine.rising]
rule = "absolute"      # absolute: delta > absolute_delta; relative: growth > relative_delta
absolute_delta = 10.0
relative_delta = 0.2

# Default filters applied to every arrangement (empty = off)
[filters]
category = ""
group_id = ""
badge_label = ""
tag = ""

[logging]
level = "warn"   # debug, info, warn, error
file = ""        # empty logs to stderr

[mcp]
enabled = true
transport = "stdio"
`
