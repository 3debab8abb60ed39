package arrange

import (
	"time"

	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/grid"
	"github.com/vijay-prabhu/listgrid/internal/listing"
	"github.com/vijay-prabhu/listgrid/internal/scoring"
)

// PolicyReport is one policy's verdict on a listing
type PolicyReport struct {
	scoring.Explanation
	Size grid.SizeClass `json:"size"` // size the score earns before any slot default applies
}

// Report describes how a single listing is scored under every policy
type Report struct {
	Item     listing.Item   `json:"item"`
	Badges   []badge.Badge  `json:"badges"`
	Policies []PolicyReport `json:"policies"`
	Now      time.Time      `json:"now"`
}

// Explain scores one listing under every known policy.
// Sizes are classified against a small-slot default so only threshold overrides show.
func Explain(item listing.Item, now time.Time, rising badge.RisingRule) (*Report, error) {
	if rising.Mode == "" {
		rising = badge.DefaultRisingRule()
	}
	deriver := badge.NewDeriver(rising)

	report := &Report{
		Item:   item,
		Badges: deriver.Derive(&item, now),
		Now:    now,
	}

	for _, name := range scoring.Names() {
		policy, err := scoring.Lookup(name, deriver)
		if err != nil {
			return nil, err
		}
		explanation := policy.Explain(&item, now)
		report.Policies = append(report.Policies, PolicyReport{
			Explanation: explanation,
			Size:        ThresholdsFor(name).Classify(explanation.Score, grid.SizeS),
		})
	}

	return report, nil
}
