package grid

// Slot is one position in the layout template.
// Rows and columns are 1-based, matching CSS grid lines.
type Slot struct {
	Row         int       `json:"row"`
	Col         int       `json:"col"`
	RowSpan     int       `json:"row_span"`
	ColSpan     int       `json:"col_span"`
	DefaultSize SizeClass `json:"default_size"`
}

func slot(row, col int, size SizeClass) Slot {
	span := size.Span()
	return Slot{Row: row, Col: col, RowSpan: span.Rows, ColSpan: span.Cols, DefaultSize: size}
}

// Template is the fixed, cyclic sequence of slots
type Template []Slot

// TemplateColumns is the column count the default template is authored for
const TemplateColumns = 4

// DefaultTemplate lays ten slots over a four-column, five-row block:
//
//	row 1: XL XL  S  L
//	row 2: XL XL  S  L
//	row 3:  M  M  M  M
//	row 4:  S  L  M  M
//	row 5:  S  L  .  .
var DefaultTemplate = Template{
	slot(1, 1, SizeXL),
	slot(1, 3, SizeS),
	slot(1, 4, SizeL),
	slot(2, 3, SizeS),
	slot(3, 1, SizeM),
	slot(3, 3, SizeM),
	slot(4, 1, SizeS),
	slot(4, 2, SizeL),
	slot(4, 3, SizeM),
	slot(5, 1, SizeS),
}

// At returns the slot for the i-th ranked listing, cycling past the end
func (t Template) At(i int) Slot {
	return t[i%len(t)]
}

// Rows returns the number of grid rows one cycle of the template covers
func (t Template) Rows() int {
	rows := 0
	for _, s := range t {
		if end := s.Row + s.RowSpan - 1; end > rows {
			rows = end
		}
	}
	return rows
}

// Cols returns the number of grid columns one cycle of the template covers
func (t Template) Cols() int {
	cols := 0
	for _, s := range t {
		if end := s.Col + s.ColSpan - 1; end > cols {
			cols = end
		}
	}
	return cols
}
