package scoring

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/listing"
)

// Policy names recognized by Lookup
const (
	EngagementWeighted = "engagement-weighted"
	BadgeWeighted      = "badge-weighted"
)

// ErrUnknownPolicy is returned by Lookup for an unrecognized policy name
var ErrUnknownPolicy = errors.New("unknown scoring policy")

// Policy maps a listing to a single relevance score.
// Implementations must be pure: the same item and now always give the same score.
type Policy interface {
	Name() string
	Score(item *listing.Item, now time.Time) float64
	Explain(item *listing.Item, now time.Time) Explanation
}

// Contribution records a single scoring clause and its point value
type Contribution struct {
	Reason string  `json:"reason"`
	Points float64 `json:"points"`
}

// Explanation breaks a score down into the clauses that produced it
type Explanation struct {
	Policy        string         `json:"policy"`
	Score         float64        `json:"score"`
	Contributions []Contribution `json:"contributions"`
}

func (e *Explanation) add(reason string, points float64) {
	e.Contributions = append(e.Contributions, Contribution{Reason: reason, Points: points})
	e.Score += points
}

// Names returns the recognized policy names
func Names() []string {
	return []string{EngagementWeighted, BadgeWeighted}
}

// Lookup returns the policy registered under name.
// The deriver is only used by policies that score derived badges.
func Lookup(name string, deriver *badge.Deriver) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EngagementWeighted:
		return NewEngagementWeighted(), nil
	case BadgeWeighted:
		if deriver == nil {
			deriver = badge.NewDeriver(badge.DefaultRisingRule())
		}
		return NewBadgeWeighted(deriver), nil
	default:
		return nil, fmt.Errorf("%w: %q (use %s)", ErrUnknownPolicy, name, strings.Join(Names(), " or "))
	}
}

// ValidateName checks a policy name without building the policy
func ValidateName(name string) error {
	_, err := Lookup(name, nil)
	return err
}
