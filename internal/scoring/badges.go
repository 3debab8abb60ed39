package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/listing"
)

// Badge-weighted clause values
const (
	engagementMultiplier = 2
	engagementCap        = 100
	priorityLevelBonus   = 300
	boostedLevelBonus    = 150
)

// BadgeWeightedPolicy scores capped engagement, derived badges and promotion level.
// Its scale matches the size thresholds at 100/200/300.
type BadgeWeightedPolicy struct {
	deriver *badge.Deriver
}

// NewBadgeWeighted creates the badge-weighted policy using deriver for badges
func NewBadgeWeighted(deriver *badge.Deriver) *BadgeWeightedPolicy {
	return &BadgeWeightedPolicy{deriver: deriver}
}

// Name returns the policy name
func (p *BadgeWeightedPolicy) Name() string {
	return BadgeWeighted
}

// Score computes the badge-weighted score
func (p *BadgeWeightedPolicy) Score(item *listing.Item, now time.Time) float64 {
	return p.Explain(item, now).Score
}

// Explain computes the score and records each clause that contributed
func (p *BadgeWeightedPolicy) Explain(item *listing.Item, now time.Time) Explanation {
	e := Explanation{Policy: p.Name()}

	engagement := math.Min(float64(item.EngagementCount*engagementMultiplier), engagementCap)
	if engagement > 0 {
		e.add(fmt.Sprintf("engagement %d x%d (max %d)", item.EngagementCount, engagementMultiplier, engagementCap), engagement)
	}

	for _, b := range p.deriver.Derive(item, now) {
		e.add("badge: "+string(b.Label), b.Weight)
	}

	switch item.PromotionLevel {
	case listing.PromotionPriority:
		e.add("promotion level: priority", priorityLevelBonus)
	case listing.PromotionBoosted:
		e.add("promotion level: boosted", boostedLevelBonus)
	}

	return e
}
