package arrange

import (
	"fmt"
	"sort"
	"time"

	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/filter"
	"github.com/vijay-prabhu/listgrid/internal/grid"
	"github.com/vijay-prabhu/listgrid/internal/listing"
	"github.com/vijay-prabhu/listgrid/internal/scoring"
)

// Options configures an arrangement
type Options struct {
	ScoringPolicy string
	SortMode      string
	Filters       filter.Criteria
	Rising        badge.RisingRule

	// MinTiledItems is the smallest filtered collection that gets tiled.
	// Smaller collections come back as a ranked list. Zero always tiles.
	MinTiledItems int

	// BadgeLimit caps the badges shown per listing (0 = all)
	BadgeLimit int

	// Template overrides the default slot template when set
	Template grid.Template
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		ScoringPolicy: scoring.BadgeWeighted,
		SortMode:      string(SortDefault),
		Rising:        badge.DefaultRisingRule(),
		MinTiledItems: 3,
		BadgeLimit:    3,
	}
}

// Layout tells the renderer how to present a Result
type Layout string

const (
	LayoutGrid Layout = "grid"
	LayoutList Layout = "list"
)

// Entry is a listing in a flat list
type Entry struct {
	Item   listing.Item  `json:"item"`
	Badges []badge.Badge `json:"badges,omitempty"`
	Score  *float64      `json:"score,omitempty"` // set only for ranked fallback lists
}

// Result is the outcome of one arrangement. Exactly one of Tiles or Items is used,
// depending on Layout.
type Result struct {
	Layout   Layout       `json:"layout"`
	SortMode SortMode     `json:"sort_mode"`
	Policy   string       `json:"policy"`
	Fallback bool         `json:"fallback,omitempty"` // a tiled mode had too few listings to tile
	Tiles    []grid.Tile  `json:"tiles,omitempty"`
	Items    []Entry      `json:"items,omitempty"`
	Filter   filter.Stats `json:"filter"`
	Now      time.Time    `json:"now"`
}

// Len returns the number of arranged listings
func (r *Result) Len() int {
	if r.Layout == LayoutGrid {
		return len(r.Tiles)
	}
	return len(r.Items)
}

// Engine arranges listings according to validated options.
// It holds no state between calls.
type Engine struct {
	opts       Options
	mode       SortMode
	deriver    *badge.Deriver
	policy     scoring.Policy
	thresholds grid.Thresholds
	placer     *grid.Placer
}

// New validates the options and builds an Engine
func New(opts Options) (*Engine, error) {
	mode, err := ParseSortMode(opts.SortMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	if opts.Rising.Mode == "" {
		opts.Rising = badge.DefaultRisingRule()
	}
	if _, err := badge.ParseRisingMode(string(opts.Rising.Mode)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	deriver := badge.NewDeriver(opts.Rising)

	policy, err := scoring.Lookup(opts.ScoringPolicy, deriver)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	thresholds := ThresholdsFor(policy.Name())

	return &Engine{
		opts:       opts,
		mode:       mode,
		deriver:    deriver,
		policy:     policy,
		thresholds: thresholds,
		placer:     grid.NewPlacer(opts.Template, thresholds, opts.BadgeLimit),
	}, nil
}

// Arrange is a convenience wrapper around New and Engine.Arrange
func Arrange(items []listing.Item, now time.Time, opts Options) (*Result, error) {
	e, err := New(opts)
	if err != nil {
		return nil, err
	}
	return e.Arrange(items, now), nil
}

// ThresholdsFor returns the size table that matches a scoring policy's scale
func ThresholdsFor(policy string) grid.Thresholds {
	if policy == scoring.EngagementWeighted {
		return grid.EngagementWeightedThresholds
	}
	return grid.BadgeWeightedThresholds
}

// Policy returns the scoring policy in use
func (e *Engine) Policy() scoring.Policy {
	return e.policy
}

// Deriver returns the badge deriver in use
func (e *Engine) Deriver() *badge.Deriver {
	return e.deriver
}

// Placer returns the grid placer in use
func (e *Engine) Placer() *grid.Placer {
	return e.placer
}

// candidate is a listing that passed the filters, with its badges
type candidate struct {
	item   listing.Item
	badges []badge.Badge
}

// Arrange filters the listings and then either tiles them or returns a sorted list.
// The input slice is never modified.
func (e *Engine) Arrange(items []listing.Item, now time.Time) *Result {
	result := &Result{
		SortMode: e.mode,
		Policy:   e.policy.Name(),
		Now:      now,
	}

	candidates := make([]candidate, 0, len(items))
	for _, item := range items {
		badges := e.deriver.Derive(&item, now)
		check := e.opts.Filters.Check(&item, badges)
		result.Filter.Record(check)
		if check.Include {
			candidates = append(candidates, candidate{item: item, badges: badges})
		}
	}

	if !e.mode.Tiled() {
		result.Layout = LayoutList
		result.Items = e.sortFlat(candidates)
		return result
	}

	ranked := make([]grid.Ranked, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, grid.Ranked{
			Item:   c.item,
			Score:  e.policy.Score(&c.item, now),
			Badges: c.badges,
		})
	}

	if len(ranked) > 0 && len(ranked) < e.opts.MinTiledItems {
		result.Layout = LayoutList
		result.Fallback = true
		result.Items = e.rankedList(ranked)
		return result
	}

	result.Layout = LayoutGrid
	result.Tiles = e.placer.Place(ranked)
	return result
}

// sortFlat orders candidates for the list-only modes
func (e *Engine) sortFlat(candidates []candidate) []Entry {
	var less func(a, b *listing.Item) bool
	switch e.mode {
	case SortChronological:
		less = func(a, b *listing.Item) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortRecentlyListed:
		less = func(a, b *listing.Item) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortByCategory:
		less = func(a, b *listing.Item) bool { return a.Category < b.Category }
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return less(&candidates[i].item, &candidates[j].item)
	})

	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, Entry{
			Item:   c.item,
			Badges: badge.Visible(c.badges, e.opts.BadgeLimit),
		})
	}
	return entries
}

// rankedList is the single-column fallback for collections too small to tile
func (e *Engine) rankedList(ranked []grid.Ranked) []Entry {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	entries := make([]Entry, 0, len(ranked))
	for _, r := range ranked {
		score := r.Score
		entries = append(entries, Entry{
			Item:   r.Item,
			Badges: badge.Visible(r.Badges, e.opts.BadgeLimit),
			Score:  &score,
		})
	}
	return entries
}
