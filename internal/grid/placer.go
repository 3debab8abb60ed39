package grid

import (
	"sort"

	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/listing"
)

// Ranked is a listing with its score and derived badges, ready for placement
type Ranked struct {
	Item   listing.Item
	Score  float64
	Badges []badge.Badge
}

// Position is a tile's placement on the grid. Renderers use it as-is.
type Position struct {
	Row     int `json:"row"`
	Col     int `json:"col"`
	RowSpan int `json:"row_span"`
	ColSpan int `json:"col_span"`
}

// Tile is a listing's final size and grid placement
type Tile struct {
	Item     listing.Item  `json:"item"`
	Size     SizeClass     `json:"size"`
	Position Position      `json:"position"`
	Score    float64       `json:"score"`
	Badges   []badge.Badge `json:"badges,omitempty"`
	Slot     int           `json:"slot"`  // template index used
	Cycle    int           `json:"cycle"` // how many times the template wrapped before this tile
}

// Placer assigns template slots to ranked listings
type Placer struct {
	template   Template
	thresholds Thresholds
	badgeLimit int
}

// NewPlacer creates a Placer. badgeLimit caps the badges copied onto each tile (0 = all).
func NewPlacer(template Template, thresholds Thresholds, badgeLimit int) *Placer {
	if len(template) == 0 {
		template = DefaultTemplate
	}
	return &Placer{
		template:   template,
		thresholds: thresholds,
		badgeLimit: badgeLimit,
	}
}

// Template returns the placer's template
func (p *Placer) Template() Template {
	return p.template
}

// Place ranks listings by descending score and lays them over the template.
// Ties keep their input order. The input slice is not modified.
func (p *Placer) Place(ranked []Ranked) []Tile {
	if len(ranked) == 0 {
		return []Tile{}
	}

	sorted := make([]Ranked, len(ranked))
	copy(sorted, ranked)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	tiles := make([]Tile, 0, len(sorted))
	for i, r := range sorted {
		s := p.template.At(i)
		size := p.thresholds.Classify(r.Score, s.DefaultSize)

		// Size comes from the classifier, never from the slot's authored span
		span := size.Span()

		tiles = append(tiles, Tile{
			Item: r.Item,
			Size: size,
			Position: Position{
				Row:     s.Row,
				Col:     s.Col,
				RowSpan: span.Rows,
				ColSpan: span.Cols,
			},
			Score:  r.Score,
			Badges: badge.Visible(r.Badges, p.badgeLimit),
			Slot:   i % len(p.template),
			Cycle:  i / len(p.template),
		})
	}

	return tiles
}
