package scoring

import (
	"fmt"
	"time"

	"github.com/vijay-prabhu/listgrid/internal/listing"
)

// Engagement-weighted clause values
const (
	promotedPoints       = 40
	groupPoints          = 30
	priorityLevelPoints  = 25
	boostedLevelPoints   = 15
	risingDeltaPoints    = 20
	risingDeltaThreshold = 10
	recentPoints         = 10
	recentWithin         = 7 * 24 * time.Hour
)

// engagementTier is one step of the engagement-count ladder
type engagementTier struct {
	min    int
	points float64
}

// engagementTiers is ordered from highest to lowest; the last tier catches everything
var engagementTiers = []engagementTier{
	{min: 500, points: 30},
	{min: 200, points: 20},
	{min: 50, points: 15},
	{min: 0, points: 10},
}

// EngagementWeightedPolicy scores promotion, grouping, recent activity and engagement volume.
// Plausible scores top out around 175.
type EngagementWeightedPolicy struct{}

// NewEngagementWeighted creates the engagement-weighted policy
func NewEngagementWeighted() *EngagementWeightedPolicy {
	return &EngagementWeightedPolicy{}
}

// Name returns the policy name
func (p *EngagementWeightedPolicy) Name() string {
	return EngagementWeighted
}

// Score computes the engagement-weighted score
func (p *EngagementWeightedPolicy) Score(item *listing.Item, now time.Time) float64 {
	return p.Explain(item, now).Score
}

// Explain computes the score and records each clause that contributed
func (p *EngagementWeightedPolicy) Explain(item *listing.Item, now time.Time) Explanation {
	e := Explanation{Policy: p.Name()}

	if item.IsPromoted {
		e.add("promoted", promotedPoints)
	}
	if item.HasGroup() {
		e.add("in group "+*item.GroupID, groupPoints)
	}

	switch item.PromotionLevel {
	case listing.PromotionPriority:
		e.add("promotion level: priority", priorityLevelPoints)
	case listing.PromotionBoosted:
		e.add("promotion level: boosted", boostedLevelPoints)
	}

	if item.EngagementDelta24h != nil && *item.EngagementDelta24h > risingDeltaThreshold {
		e.add(fmt.Sprintf("engagement +%.0f in 24h", *item.EngagementDelta24h), risingDeltaPoints)
	}

	for _, tier := range engagementTiers {
		if item.EngagementCount >= tier.min {
			e.add(fmt.Sprintf("engagement %d (tier >= %d)", item.EngagementCount, tier.min), tier.points)
			break
		}
	}

	if item.Age(now) <= recentWithin {
		e.add("listed within 7 days", recentPoints)
	}

	return e
}
