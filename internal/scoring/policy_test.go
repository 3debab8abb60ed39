package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/listing"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func exampleItems() (listing.Item, listing.Item) {
	hot := listing.Item{
		ID:              "1",
		EngagementCount: 600,
		IsPromoted:      true,
		PromotionLevel:  listing.PromotionPriority,
		CreatedAt:       now.Add(-24 * time.Hour),
	}
	quiet := listing.Item{
		ID:              "2",
		EngagementCount: 5,
		PromotionLevel:  listing.PromotionNone,
		CreatedAt:       now.Add(-30 * 24 * time.Hour),
	}
	return hot, quiet
}

func TestEngagementWeighted(t *testing.T) {
	p := NewEngagementWeighted()
	hot, quiet := exampleItems()

	tests := []struct {
		name     string
		item     listing.Item
		expected float64
	}{
		{"promoted priority listing", hot, 105},
		{"quiet old listing gets base engagement tier", quiet, 10},
		{
			name: "grouped boosted rising listing",
			item: listing.Item{
				GroupID:            listing.StringPtr("spring-market"),
				PromotionLevel:     listing.PromotionBoosted,
				EngagementCount:    250,
				EngagementDelta24h: listing.Float64Ptr(12),
				CreatedAt:          now.Add(-7 * 24 * time.Hour),
			},
			expected: 30 + 15 + 20 + 20 + 10,
		},
		{
			name:     "empty group id is not a group",
			item:     listing.Item{GroupID: listing.StringPtr(""), EngagementCount: 50, CreatedAt: now.Add(-8 * 24 * time.Hour)},
			expected: 15,
		},
		{
			name:     "delta of exactly 10 earns nothing",
			item:     listing.Item{EngagementDelta24h: listing.Float64Ptr(10), CreatedAt: now.Add(-8 * 24 * time.Hour)},
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Score(&tt.item, now); got != tt.expected {
				t.Errorf("Score() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBadgeWeighted(t *testing.T) {
	p := NewBadgeWeighted(badge.NewDeriver(badge.DefaultRisingRule()))
	hot, quiet := exampleItems()

	tests := []struct {
		name     string
		item     listing.Item
		expected float64
	}{
		// engagement 100 + New 50 + Trending 150 + Popular 100 + Sponsored 120 + priority 300
		{"promoted priority listing", hot, 820},
		{"quiet old listing", quiet, 10},
		{
			name:     "editor's pick boosted",
			item:     listing.Item{IsEditorsPick: true, PromotionLevel: listing.PromotionBoosted, CreatedAt: now.Add(-10 * 24 * time.Hour)},
			expected: 200 + 150,
		},
		{
			name:     "rising uses the deriver rule",
			item:     listing.Item{EngagementCount: 20, EngagementDelta24h: listing.Float64Ptr(15), CreatedAt: now.Add(-10 * 24 * time.Hour)},
			expected: 40 + 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Score(&tt.item, now); got != tt.expected {
				t.Errorf("Score() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestExplain_SumsToScore(t *testing.T) {
	hot, _ := exampleItems()
	policies := []Policy{NewEngagementWeighted(), NewBadgeWeighted(badge.NewDeriver(badge.DefaultRisingRule()))}

	for _, p := range policies {
		e := p.Explain(&hot, now)
		var sum float64
		for _, c := range e.Contributions {
			sum += c.Points
		}
		if sum != e.Score {
			t.Errorf("%s: contributions sum to %v, score is %v", p.Name(), sum, e.Score)
		}
		if e.Policy != p.Name() {
			t.Errorf("Explanation.Policy = %q, want %q", e.Policy, p.Name())
		}
	}
}

func TestScoreMonotonicity(t *testing.T) {
	policies := []Policy{NewEngagementWeighted(), NewBadgeWeighted(badge.NewDeriver(badge.DefaultRisingRule()))}

	for _, p := range policies {
		t.Run(p.Name()+" engagement count", func(t *testing.T) {
			prev := -1.0
			for count := 0; count <= 1200; count += 5 {
				item := listing.Item{EngagementCount: count, CreatedAt: now.Add(-10 * 24 * time.Hour)}
				score := p.Score(&item, now)
				if score < prev {
					t.Fatalf("score dropped from %v to %v at engagement %d", prev, score, count)
				}
				prev = score
			}
		})

		t.Run(p.Name()+" engagement delta", func(t *testing.T) {
			prev := -1.0
			for delta := -20.0; delta <= 60; delta++ {
				item := listing.Item{EngagementCount: 40, EngagementDelta24h: listing.Float64Ptr(delta), CreatedAt: now.Add(-10 * 24 * time.Hour)}
				score := p.Score(&item, now)
				if score < prev {
					t.Fatalf("score dropped from %v to %v at delta %v", prev, score, delta)
				}
				prev = score
			}
		})

		t.Run(p.Name()+" flags", func(t *testing.T) {
			base := listing.Item{EngagementCount: 40, CreatedAt: now.Add(-10 * 24 * time.Hour)}
			baseScore := p.Score(&base, now)

			variants := []listing.Item{base, base, base, base}
			variants[0].IsPromoted = true
			variants[1].IsEditorsPick = true
			variants[2].PromotionLevel = listing.PromotionBoosted
			variants[3].GroupID = listing.StringPtr("g1")

			for i := range variants {
				if s := p.Score(&variants[i], now); s < baseScore {
					t.Errorf("variant %d scored %v below base %v", i, s, baseScore)
				}
			}
		})
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		p, err := Lookup(name, nil)
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("Lookup(%q).Name() = %q", name, p.Name())
		}
	}

	_, err := Lookup("popularity", nil)
	if !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("Lookup(popularity) error = %v, want ErrUnknownPolicy", err)
	}

	if err := ValidateName(""); err == nil {
		t.Error("empty policy name should be rejected")
	}
}
