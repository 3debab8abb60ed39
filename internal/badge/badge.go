package badge

import (
	"fmt"
	"strings"
	"time"

	"github.com/vijay-prabhu/listgrid/internal/listing"
)

// Label identifies a derived status badge
type Label string

const (
	LabelNew         Label = "New"
	LabelRising      Label = "Rising"
	LabelTrending    Label = "Trending"
	LabelPopular     Label = "Popular"
	LabelSponsored   Label = "Sponsored"
	LabelEditorsPick Label = "Editor's Pick"
)

// Thresholds for the fixed badge rules
const (
	NewWithin          = 72 * time.Hour
	TrendingEngagement = 50
	PopularEngagement  = 100
)

// weights holds each badge's contribution to the badge-weighted score
var weights = map[Label]float64{
	LabelNew:         50,
	LabelRising:      80,
	LabelTrending:    150,
	LabelPopular:     100,
	LabelSponsored:   120,
	LabelEditorsPick: 200,
}

// Badge is a derived qualifying label for a listing
type Badge struct {
	Label  Label   `json:"label"`
	Weight float64 `json:"weight"`
}

func newBadge(l Label) Badge {
	return Badge{Label: l, Weight: weights[l]}
}

// RisingMode selects how recent engagement growth is judged
type RisingMode string

const (
	RisingAbsolute RisingMode = "absolute"
	RisingRelative RisingMode = "relative"
)

// ParseRisingMode converts a string to a RisingMode
func ParseRisingMode(s string) (RisingMode, error) {
	switch RisingMode(strings.ToLower(s)) {
	case RisingAbsolute:
		return RisingAbsolute, nil
	case RisingRelative:
		return RisingRelative, nil
	default:
		return "", fmt.Errorf("unknown rising rule: %q (use absolute or relative)", s)
	}
}

// RisingRule configures the Rising badge threshold
type RisingRule struct {
	Mode          RisingMode `json:"mode"`
	AbsoluteDelta float64    `json:"absolute_delta"` // Rising if delta24h > AbsoluteDelta (absolute mode)
	RelativeDelta float64    `json:"relative_delta"` // Rising if growth over the previous day's count > RelativeDelta (relative mode)
}

// DefaultRisingRule is the absolute "more than 10 new interactions in 24h" rule
func DefaultRisingRule() RisingRule {
	return RisingRule{
		Mode:          RisingAbsolute,
		AbsoluteDelta: 10,
		RelativeDelta: 0.20,
	}
}

// Matches reports whether the listing's recent engagement change qualifies as rising
func (r RisingRule) Matches(item *listing.Item) bool {
	if item.EngagementDelta24h == nil {
		return false
	}
	delta := *item.EngagementDelta24h

	if r.Mode == RisingRelative {
		// Growth is measured against the count 24h ago
		baseline := float64(item.EngagementCount) - delta
		if baseline <= 0 {
			return delta > 0
		}
		return delta/baseline > r.RelativeDelta
	}

	return delta > r.AbsoluteDelta
}

// Deriver maps a listing to the badges it qualifies for
type Deriver struct {
	rising RisingRule
}

// NewDeriver creates a Deriver with the given Rising rule
func NewDeriver(rising RisingRule) *Deriver {
	return &Deriver{rising: rising}
}

// RisingRule returns the rule the deriver was built with
func (d *Deriver) RisingRule() RisingRule {
	return d.rising
}

// Derive returns every badge the listing qualifies for, in display order.
// now is passed explicitly so the result only depends on the arguments.
func (d *Deriver) Derive(item *listing.Item, now time.Time) []Badge {
	var badges []Badge

	if item.Age(now) < NewWithin {
		badges = append(badges, newBadge(LabelNew))
	}
	if d.rising.Matches(item) {
		badges = append(badges, newBadge(LabelRising))
	}
	if item.EngagementCount > TrendingEngagement {
		badges = append(badges, newBadge(LabelTrending))
	}
	if item.EngagementCount > PopularEngagement {
		badges = append(badges, newBadge(LabelPopular))
	}
	if item.IsPromoted {
		badges = append(badges, newBadge(LabelSponsored))
	}
	if item.IsEditorsPick {
		badges = append(badges, newBadge(LabelEditorsPick))
	}

	return badges
}

// All returns one badge of every label, in display order
func All() []Badge {
	order := []Label{LabelNew, LabelRising, LabelTrending, LabelPopular, LabelSponsored, LabelEditorsPick}
	badges := make([]Badge, 0, len(order))
	for _, l := range order {
		badges = append(badges, newBadge(l))
	}
	return badges
}

// Visible returns the first limit badges for display.
// A limit of zero or less shows all of them.
func Visible(badges []Badge, limit int) []Badge {
	if limit <= 0 || len(badges) <= limit {
		return badges
	}
	return badges[:limit]
}

// Has reports whether a badge with the given label is present
func Has(badges []Badge, l Label) bool {
	for _, b := range badges {
		if b.Label == l {
			return true
		}
	}
	return false
}

// Labels returns the badge labels as plain strings
func Labels(badges []Badge) []string {
	labels := make([]string, 0, len(badges))
	for _, b := range badges {
		labels = append(labels, string(b.Label))
	}
	return labels
}
