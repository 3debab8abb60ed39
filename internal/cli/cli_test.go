package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vijay-prabhu/listgrid/internal/grid"
)

const testListings = `
- id: hot
  title: Rooftop cinema
  category: film
  is_promoted: true
  promotion_level: priority
  engagement_count: 600
  created_at: 2025-05-31T12:00:00Z
- id: mid
  title: Harbour walk
  category: tour
  engagement_count: 120
  created_at: 2025-05-27T12:00:00Z
- id: quiet
  title: Pottery class
  category: craft
  engagement_count: 5
  created_at: 2025-05-02T12:00:00Z
`

// setupCLI writes a config pointing at a temp database and a listings file
func setupCLI(t *testing.T) (cfgPath, listingsPath string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath = filepath.Join(dir, "config.toml")
	cfg := "[database]\npath = \"" + filepath.Join(dir, "listgrid.db") + "\"\n\n[logging]\nlevel = \"error\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	listingsPath = filepath.Join(dir, "listings.yaml")
	if err := os.WriteFile(listingsPath, []byte(testListings), 0644); err != nil {
		t.Fatalf("failed to write listings: %v", err)
	}
	return cfgPath, listingsPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	cfgPath, listingsPath := setupCLI(t)

	out, err := run(t, "-c", cfgPath, "listings", "import", listingsPath)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 3 listings") {
		t.Errorf("unexpected import output: %q", out)
	}

	out, err = run(t, "-c", cfgPath, "-o", "json", "arrange", "--now", "2025-06-01 12:00", "--min-tiled", "0")
	if err != nil {
		t.Fatalf("arrange failed: %v", err)
	}
	var result struct {
		Layout string `json:"layout"`
		Tiles  []struct {
			Size string `json:"size"`
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"tiles"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("arrange output is not JSON: %v\n%s", err, out)
	}
	if result.Layout != "grid" || len(result.Tiles) != 3 {
		t.Fatalf("unexpected arrangement: %+v", result)
	}
	if result.Tiles[0].Item.ID != "hot" || result.Tiles[1].Item.ID != "mid" || result.Tiles[2].Item.ID != "quiet" {
		t.Errorf("unexpected order: %+v", result.Tiles)
	}

	out, err = run(t, "-c", cfgPath, "-o", "grid", "arrange", "--now", "2025-06-01 12:00")
	if err != nil {
		t.Fatalf("arrange -o grid failed: %v", err)
	}
	if !strings.Contains(out, " XL Rooftop") || strings.Contains(out, "\033[") {
		t.Errorf("unexpected grid preview:\n%s", out)
	}

	out, err = run(t, "-c", cfgPath, "-o", "json", "explain", "hot", "--now", "2025-06-01 12:00")
	if err != nil {
		t.Fatalf("explain failed: %v", err)
	}
	if !strings.Contains(out, `"score": 820`) || !strings.Contains(out, `"score": 105`) {
		t.Errorf("unexpected explain output:\n%s", out)
	}

	out, err = run(t, "-c", cfgPath, "-o", "json", "stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, `"category": "film"`) {
		t.Errorf("unexpected stats output:\n%s", out)
	}

	out, err = run(t, "-c", cfgPath, "export", "--format", "json", "--category", "tour")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, `"id": "mid"`) || strings.Contains(out, `"id": "hot"`) {
		t.Errorf("unexpected export output:\n%s", out)
	}

	if _, err := run(t, "-c", cfgPath, "listings", "delete", "quiet"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := run(t, "-c", cfgPath, "-o", "table", "listings", "show", "quiet"); err == nil || !strings.Contains(err.Error(), "listing not found") {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestArrange_InvalidPolicy(t *testing.T) {
	cfgPath, listingsPath := setupCLI(t)

	_, err := run(t, "-c", cfgPath, "arrange", "--file", listingsPath, "--policy", "random")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("expected invalid configuration error, got %v", err)
	}
	arrangePolicy, arrangeFile = "", ""
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"12h", 12 * time.Hour, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"2w", 14 * 24 * time.Hour, false},
		{"1m", 30 * 24 * time.Hour, false},
		{"5y", 0, true},
		{"d", 0, true},
		{"xd", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDuration(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestTerminal_Painter(t *testing.T) {
	plain := NewTerminal(&bytes.Buffer{})
	if plain.IsTerminal || plain.UseColor {
		t.Error("a buffer is not a terminal")
	}
	if got := plain.Painter()(grid.SizeXL, "cell"); got != "cell" {
		t.Errorf("plain painter = %q", got)
	}

	colored := &Terminal{IsTerminal: true, UseColor: true}
	if got := colored.Painter()(grid.SizeXL, "cell"); got != ColorPurple+"cell"+ColorReset {
		t.Errorf("colored painter = %q", got)
	}

	if SizeColor(grid.SizeS) != ColorYellow || SizeColor("?") != ColorGray {
		t.Error("unexpected size colors")
	}
}
