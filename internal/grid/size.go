package grid

import "fmt"

// SizeClass is one of the discrete tile sizes
type SizeClass string

const (
	SizeXL SizeClass = "XL"
	SizeL  SizeClass = "L"
	SizeM  SizeClass = "M"
	SizeS  SizeClass = "S"
)

// Span is a tile's extent in grid rows and columns
type Span struct {
	Rows int `json:"row_span"`
	Cols int `json:"col_span"`
}

// spans is the fixed size-to-span table.
// L is tall (2 rows x 1 col), M is wide (1 row x 2 cols).
var spans = map[SizeClass]Span{
	SizeXL: {Rows: 2, Cols: 2},
	SizeL:  {Rows: 2, Cols: 1},
	SizeM:  {Rows: 1, Cols: 2},
	SizeS:  {Rows: 1, Cols: 1},
}

// Span returns the fixed span for the size class.
// Unknown classes get a single cell.
func (s SizeClass) Span() Span {
	if span, ok := spans[s]; ok {
		return span
	}
	return Span{Rows: 1, Cols: 1}
}

// Valid reports whether s is a known size class
func (s SizeClass) Valid() bool {
	_, ok := spans[s]
	return ok
}

// ParseSizeClass converts a string to a SizeClass
func ParseSizeClass(s string) (SizeClass, error) {
	size := SizeClass(s)
	if !size.Valid() {
		return "", fmt.Errorf("unknown size class: %q (use XL, L, M, or S)", s)
	}
	return size, nil
}

// Threshold promotes any score at or above Min to Size
type Threshold struct {
	Min  float64   `json:"min"`
	Size SizeClass `json:"size"`
}

// Thresholds is a named classification table, ordered from highest Min to lowest.
// Scores below every threshold keep the template slot's default size.
type Thresholds struct {
	Name  string      `json:"name"`
	Steps []Threshold `json:"steps"`
}

// BadgeWeightedThresholds matches the badge-weighted score scale
var BadgeWeightedThresholds = Thresholds{
	Name: "badge-weighted",
	Steps: []Threshold{
		{Min: 300, Size: SizeXL},
		{Min: 200, Size: SizeL},
		{Min: 100, Size: SizeM},
	},
}

// EngagementWeightedThresholds matches the engagement-weighted score scale (max around 175)
var EngagementWeightedThresholds = Thresholds{
	Name: "engagement-weighted",
	Steps: []Threshold{
		{Min: 80, Size: SizeXL},
		{Min: 60, Size: SizeL},
		{Min: 50, Size: SizeM},
	},
}

// Classify maps a score to a size class, falling back to the slot default
// when the score does not reach any threshold
func (t Thresholds) Classify(score float64, slotDefault SizeClass) SizeClass {
	for _, step := range t.Steps {
		if score >= step.Min {
			return step.Size
		}
	}
	return slotDefault
}
