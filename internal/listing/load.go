package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// record is the on-disk shape of a listing in an import file.
// created_at is a free-form timestamp string.
type record struct {
	ID                 string   `json:"id" yaml:"id"`
	Title              string   `json:"title" yaml:"title"`
	Category           string   `json:"category" yaml:"category"`
	Tags               []string `json:"tags" yaml:"tags"`
	GroupID            *string  `json:"group_id" yaml:"group_id"`
	IsPromoted         bool     `json:"is_promoted" yaml:"is_promoted"`
	PromotionLevel     string   `json:"promotion_level" yaml:"promotion_level"`
	EngagementCount    int      `json:"engagement_count" yaml:"engagement_count"`
	EngagementDelta24h *float64 `json:"engagement_delta_24h" yaml:"engagement_delta_24h"`
	IsEditorsPick      bool     `json:"is_editors_pick" yaml:"is_editors_pick"`
	CreatedAt          string   `json:"created_at" yaml:"created_at"`
}

// LoadFile reads listings from a JSON or YAML file.
// The format is chosen by extension (.json, .yaml, .yml).
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings file: %w", err)
	}

	var records []record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON listings: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse YAML listings: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported listings file extension: %q (use .json, .yaml, or .yml)", filepath.Ext(path))
	}

	items := make([]Item, 0, len(records))
	for i, r := range records {
		item, err := r.toItem()
		if err != nil {
			return nil, fmt.Errorf("listing %d (%s): %w", i+1, r.label(), err)
		}
		items = append(items, item)
	}

	return items, nil
}

// Encode writes listings in the import file layout so LoadFile can read them back.
// format is "json" or "yaml".
func Encode(w io.Writer, items []Item, format string) error {
	records := make([]record, 0, len(items))
	for _, item := range items {
		records = append(records, fromItem(item))
	}

	switch strings.ToLower(format) {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(records); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported listings format: %q (use json or yaml)", format)
	}
}

func fromItem(item Item) record {
	return record{
		ID:                 item.ID,
		Title:              item.Title,
		Category:           item.Category,
		Tags:               item.Tags,
		GroupID:            item.GroupID,
		IsPromoted:         item.IsPromoted,
		PromotionLevel:     string(item.PromotionLevel),
		EngagementCount:    item.EngagementCount,
		EngagementDelta24h: item.EngagementDelta24h,
		IsEditorsPick:      item.IsEditorsPick,
		CreatedAt:          item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (r record) label() string {
	if r.ID != "" {
		return r.ID
	}
	if r.Title != "" {
		return r.Title
	}
	return "unnamed"
}

func (r record) toItem() (Item, error) {
	level, err := ParsePromotionLevel(r.PromotionLevel)
	if err != nil {
		return Item{}, err
	}

	if r.EngagementCount < 0 {
		return Item{}, fmt.Errorf("engagement_count must not be negative, got %d", r.EngagementCount)
	}

	if r.CreatedAt == "" {
		return Item{}, fmt.Errorf("created_at is required")
	}
	createdAt, err := ParseTime(r.CreatedAt)
	if err != nil {
		return Item{}, err
	}

	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}

	return Item{
		ID:                 id,
		Title:              r.Title,
		Category:           r.Category,
		Tags:               r.Tags,
		GroupID:            r.GroupID,
		IsPromoted:         r.IsPromoted,
		PromotionLevel:     level,
		EngagementCount:    r.EngagementCount,
		EngagementDelta24h: r.EngagementDelta24h,
		IsEditorsPick:      r.IsEditorsPick,
		CreatedAt:          createdAt,
	}, nil
}

// ParseTime parses a timestamp in any common layout.
// Times without a zone are read as UTC.
func ParseTime(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
