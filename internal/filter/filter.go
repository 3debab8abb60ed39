package filter

import (
	"fmt"
	"strings"

	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/listing"
)

// Criterion identifies which check rejected a listing
type Criterion string

const (
	CriterionNone     Criterion = ""
	CriterionCategory Criterion = "category"
	CriterionGroup    Criterion = "group"
	CriterionBadge    Criterion = "badge"
	CriterionTag      Criterion = "tag"
)

// Criteria is a conjunction of listing filters. Empty fields match everything.
type Criteria struct {
	Category string `json:"category,omitempty" toml:"category"`
	GroupID  string `json:"group_id,omitempty" toml:"group_id"`

	// BadgeLabel matches a case-insensitive substring of any derived badge label
	BadgeLabel string `json:"badge_label,omitempty" toml:"badge_label"`

	// Tag matches tag membership, ignoring case
	Tag string `json:"tag,omitempty" toml:"tag"`
}

// IsZero reports whether no filter is set
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Result represents the outcome of filtering a listing
type Result struct {
	Include    bool      // Whether to keep this listing
	RejectedBy Criterion // Which check failed, if any
	Reason     string    // Human-readable reason
}

// Check runs every criterion against the listing and its derived badges.
// The first failing criterion is reported.
func (c Criteria) Check(item *listing.Item, badges []badge.Badge) Result {
	if c.Category != "" && item.Category != c.Category {
		return Result{
			RejectedBy: CriterionCategory,
			Reason:     fmt.Sprintf("category %q is not %q", item.Category, c.Category),
		}
	}

	if c.GroupID != "" && (item.GroupID == nil || *item.GroupID != c.GroupID) {
		return Result{
			RejectedBy: CriterionGroup,
			Reason:     "not in group " + c.GroupID,
		}
	}

	if c.BadgeLabel != "" && !hasBadgeLike(badges, c.BadgeLabel) {
		return Result{
			RejectedBy: CriterionBadge,
			Reason:     fmt.Sprintf("no badge matching %q", c.BadgeLabel),
		}
	}

	if c.Tag != "" && !item.HasTag(c.Tag) {
		return Result{
			RejectedBy: CriterionTag,
			Reason:     "missing tag " + c.Tag,
		}
	}

	return Result{Include: true, Reason: "matches all filters"}
}

// Match reports whether the listing passes every criterion
func (c Criteria) Match(item *listing.Item, badges []badge.Badge) bool {
	return c.Check(item, badges).Include
}

// hasBadgeLike checks whether any badge label contains the pattern, ignoring case
func hasBadgeLike(badges []badge.Badge, pattern string) bool {
	pattern = strings.ToLower(pattern)
	for _, b := range badges {
		if strings.Contains(strings.ToLower(string(b.Label)), pattern) {
			return true
		}
	}
	return false
}

// Stats returns filtering statistics
type Stats struct {
	Total      int `json:"total"`
	Kept       int `json:"kept"`
	ByCategory int `json:"rejected_by_category"`
	ByGroup    int `json:"rejected_by_group"`
	ByBadge    int `json:"rejected_by_badge"`
	ByTag      int `json:"rejected_by_tag"`
}

// Record adds one filter result to the statistics
func (s *Stats) Record(r Result) {
	s.Total++
	switch r.RejectedBy {
	case CriterionNone:
		s.Kept++
	case CriterionCategory:
		s.ByCategory++
	case CriterionGroup:
		s.ByGroup++
	case CriterionBadge:
		s.ByBadge++
	case CriterionTag:
		s.ByTag++
	}
}
