package listing

import (
	"fmt"
	"strings"
	"time"
)

// PromotionLevel is the paid/editorial promotion tier of a listing
type PromotionLevel string

const (
	PromotionNone     PromotionLevel = "none"
	PromotionBoosted  PromotionLevel = "boosted"
	PromotionPriority PromotionLevel = "priority"
)

// ParsePromotionLevel converts a string to a PromotionLevel.
// An empty string is treated as "none".
func ParsePromotionLevel(s string) (PromotionLevel, error) {
	switch PromotionLevel(strings.ToLower(strings.TrimSpace(s))) {
	case "", PromotionNone:
		return PromotionNone, nil
	case PromotionBoosted:
		return PromotionBoosted, nil
	case PromotionPriority:
		return PromotionPriority, nil
	default:
		return "", fmt.Errorf("unknown promotion level: %q (use none, boosted, or priority)", s)
	}
}

// Item is a listing (an event, project, editorial...) that gets ranked and placed on the grid.
// Optional fields are pointers; a nil value never satisfies a threshold.
type Item struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title,omitempty"`
	Category           string         `json:"category,omitempty"`
	Tags               []string       `json:"tags,omitempty"`
	GroupID            *string        `json:"group_id,omitempty"`
	IsPromoted         bool           `json:"is_promoted"`
	PromotionLevel     PromotionLevel `json:"promotion_level"`
	EngagementCount    int            `json:"engagement_count"`
	EngagementDelta24h *float64       `json:"engagement_delta_24h,omitempty"`
	IsEditorsPick      bool           `json:"is_editors_pick"`
	CreatedAt          time.Time      `json:"created_at"`
}

// HasGroup reports whether the listing belongs to a group
func (i *Item) HasGroup() bool {
	return i.GroupID != nil && *i.GroupID != ""
}

// Age returns how long ago the listing was created relative to now
func (i *Item) Age(now time.Time) time.Duration {
	return now.Sub(i.CreatedAt)
}

// HasTag checks tag membership, ignoring case
func (i *Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr returns a pointer to f
func Float64Ptr(f float64) *float64 {
	return &f
}
