package grid

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/listing"
)

func rankedN(scores ...float64) []Ranked {
	ranked := make([]Ranked, 0, len(scores))
	for i, s := range scores {
		ranked = append(ranked, Ranked{
			Item:  listing.Item{ID: fmt.Sprintf("item-%d", i+1)},
			Score: s,
		})
	}
	return ranked
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		thresholds  Thresholds
		score       float64
		slotDefault SizeClass
		expected    SizeClass
	}{
		{"badge 300 is XL", BadgeWeightedThresholds, 300, SizeS, SizeXL},
		{"badge 299 is L", BadgeWeightedThresholds, 299, SizeS, SizeL},
		{"badge 200 is L", BadgeWeightedThresholds, 200, SizeS, SizeL},
		{"badge 100 is M", BadgeWeightedThresholds, 100, SizeS, SizeM},
		{"badge low keeps slot default", BadgeWeightedThresholds, 99, SizeXL, SizeXL},
		{"badge low keeps small slot", BadgeWeightedThresholds, 10, SizeS, SizeS},
		{"engagement 105 is XL", EngagementWeightedThresholds, 105, SizeS, SizeXL},
		{"engagement 80 is XL", EngagementWeightedThresholds, 80, SizeS, SizeXL},
		{"engagement 60 is L", EngagementWeightedThresholds, 60, SizeS, SizeL},
		{"engagement 50 is M", EngagementWeightedThresholds, 50, SizeS, SizeM},
		{"engagement low keeps slot default", EngagementWeightedThresholds, 10, SizeL, SizeL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.thresholds.Classify(tt.score, tt.slotDefault); got != tt.expected {
				t.Errorf("Classify(%v, %s) = %s, want %s", tt.score, tt.slotDefault, got, tt.expected)
			}
		})
	}
}

func TestSpanTable(t *testing.T) {
	expected := map[SizeClass]Span{
		SizeXL: {2, 2},
		SizeL:  {2, 1},
		SizeM:  {1, 2},
		SizeS:  {1, 1},
	}
	for size, span := range expected {
		if got := size.Span(); got != span {
			t.Errorf("%s.Span() = %+v, want %+v", size, got, span)
		}
	}

	if _, err := ParseSizeClass("XXL"); err == nil {
		t.Error("expected error for unknown size class")
	}
}

func TestDefaultTemplate(t *testing.T) {
	if len(DefaultTemplate) != 10 {
		t.Fatalf("template length = %d, want 10", len(DefaultTemplate))
	}
	if DefaultTemplate.Cols() != TemplateColumns {
		t.Errorf("template covers %d columns, want %d", DefaultTemplate.Cols(), TemplateColumns)
	}
	if DefaultTemplate.Rows() != 5 {
		t.Errorf("template covers %d rows, want 5", DefaultTemplate.Rows())
	}

	// Authored slots must not overlap
	occupied := map[[2]int]int{}
	for i, s := range DefaultTemplate {
		for r := s.Row; r < s.Row+s.RowSpan; r++ {
			for c := s.Col; c < s.Col+s.ColSpan; c++ {
				if prev, ok := occupied[[2]int{r, c}]; ok {
					t.Errorf("slot %d overlaps slot %d at (%d,%d)", i, prev, r, c)
				}
				occupied[[2]int{r, c}] = i
			}
		}
	}
}

func TestPlace_Empty(t *testing.T) {
	p := NewPlacer(DefaultTemplate, BadgeWeightedThresholds, 0)

	tiles := p.Place(nil)
	if tiles == nil || len(tiles) != 0 {
		t.Errorf("Place(nil) = %v, want empty non-nil slice", tiles)
	}
}

func TestPlace_SortsDescendingStable(t *testing.T) {
	p := NewPlacer(DefaultTemplate, BadgeWeightedThresholds, 0)
	ranked := rankedN(10, 50, 10, 50, 30)

	tiles := p.Place(ranked)

	var got []string
	for _, tile := range tiles {
		got = append(got, tile.Item.ID)
	}
	expected := []string{"item-2", "item-4", "item-5", "item-1", "item-3"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("order = %v, want %v", got, expected)
	}

	// Input must be untouched
	if ranked[0].Item.ID != "item-1" || ranked[1].Score != 50 {
		t.Error("Place modified its input")
	}
}

func TestPlace_Coverage(t *testing.T) {
	p := NewPlacer(DefaultTemplate, BadgeWeightedThresholds, 0)

	for _, n := range []int{1, 3, 10, 11, 25} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			scores := make([]float64, n)
			tiles := p.Place(rankedN(scores...))

			if len(tiles) != n {
				t.Fatalf("got %d tiles, want %d", len(tiles), n)
			}

			seen := map[[2]int]bool{}
			for i, tile := range tiles {
				s := DefaultTemplate[i%len(DefaultTemplate)]
				if tile.Position.Row != s.Row || tile.Position.Col != s.Col {
					t.Errorf("tile %d at (%d,%d), want slot (%d,%d)", i, tile.Position.Row, tile.Position.Col, s.Row, s.Col)
				}
				if tile.Slot != i%len(DefaultTemplate) || tile.Cycle != i/len(DefaultTemplate) {
					t.Errorf("tile %d slot/cycle = %d/%d", i, tile.Slot, tile.Cycle)
				}
				if n <= len(DefaultTemplate) {
					key := [2]int{tile.Position.Row, tile.Position.Col}
					if seen[key] {
						t.Errorf("duplicate position %v", key)
					}
					seen[key] = true
				}
			}
		})
	}
}

func TestPlace_SpanMatchesSize(t *testing.T) {
	p := NewPlacer(DefaultTemplate, BadgeWeightedThresholds, 0)
	// Slot 1 defaults to S but a score of 350 forces XL; slot 2 defaults to L and 250 keeps L
	tiles := p.Place(rankedN(400, 350, 150, 0, 0, 250, 0, 0, 0, 0, 0, 120))

	for i, tile := range tiles {
		span := tile.Size.Span()
		if tile.Position.RowSpan != span.Rows || tile.Position.ColSpan != span.Cols {
			t.Errorf("tile %d size %s has span %dx%d, want %dx%d",
				i, tile.Size, tile.Position.RowSpan, tile.Position.ColSpan, span.Rows, span.Cols)
		}
	}

	if tiles[1].Size != SizeXL || tiles[1].Position.RowSpan != 2 || tiles[1].Position.ColSpan != 2 {
		t.Errorf("slot 1 override: got %s %+v", tiles[1].Size, tiles[1].Position)
	}
	if tiles[2].Size != SizeL {
		t.Errorf("tile 2 size = %s, want L", tiles[2].Size)
	}
	// Low scores keep the slot default
	if tiles[11].Size != DefaultTemplate[1].DefaultSize {
		t.Errorf("tile 11 size = %s, want slot default %s", tiles[11].Size, DefaultTemplate[1].DefaultSize)
	}
}

func TestPlace_BadgeLimit(t *testing.T) {
	p := NewPlacer(DefaultTemplate, BadgeWeightedThresholds, 2)
	ranked := []Ranked{{
		Item:   listing.Item{ID: "a"},
		Score:  1,
		Badges: []badge.Badge{{Label: badge.LabelNew}, {Label: badge.LabelTrending}, {Label: badge.LabelSponsored}},
	}}

	tiles := p.Place(ranked)
	if len(tiles[0].Badges) != 2 {
		t.Errorf("tile carries %d badges, want 2", len(tiles[0].Badges))
	}
	if len(ranked[0].Badges) != 3 {
		t.Error("badge cap must not change the ranked input")
	}
}

func TestPlace_Deterministic(t *testing.T) {
	p := NewPlacer(DefaultTemplate, EngagementWeightedThresholds, 0)
	ranked := rankedN(10, 95, 60, 60, 52, 10, 0, 81, 33, 33, 33, 100, 5)

	first := p.Place(ranked)
	second := p.Place(ranked)
	if !reflect.DeepEqual(first, second) {
		t.Error("Place is not deterministic")
	}
}
