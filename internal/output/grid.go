package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vijay-prabhu/listgrid/internal/arrange"
	"github.com/vijay-prabhu/listgrid/internal/grid"
)

// cellWidth is the character width of one grid column in the preview
const cellWidth = 14

// Painter decorates a preview cell for a tile of the given size
type Painter func(size grid.SizeClass, text string) string

// Grid writes an ASCII preview of an arrangement to stdout
func Grid(data interface{}) error {
	return GridTo(os.Stdout, data, nil)
}

// GridTo draws the first template cycle of a tiled arrangement.
// Anything that is not a tiled result is written as a table instead.
func GridTo(w io.Writer, data interface{}, paint Painter) error {
	r, ok := data.(*arrange.Result)
	if !ok || r.Layout != arrange.LayoutGrid || len(r.Tiles) == 0 {
		return TableTo(w, data)
	}
	if paint == nil {
		paint = func(_ grid.SizeClass, text string) string { return text }
	}

	var first []grid.Tile
	later := 0
	for _, t := range r.Tiles {
		if t.Cycle == 0 {
			first = append(first, t)
		} else {
			later++
		}
	}

	rows, cols := 0, 0
	for _, t := range first {
		rows = max(rows, t.Position.Row+t.Position.RowSpan-1)
		cols = max(cols, t.Position.Col+t.Position.ColSpan-1)
	}

	// owner[r][c] is the index in first of the tile covering that cell, or -1.
	// Where score overrides make tiles overlap, the earlier tile wins.
	owner := make([][]int, rows)
	for i := range owner {
		owner[i] = make([]int, cols)
		for j := range owner[i] {
			owner[i][j] = -1
		}
	}
	for idx, t := range first {
		p := t.Position
		for row := p.Row; row < p.Row+p.RowSpan; row++ {
			for col := p.Col; col < p.Col+p.ColSpan; col++ {
				if owner[row-1][col-1] == -1 {
					owner[row-1][col-1] = idx
				}
			}
		}
	}

	border := "+" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", cols)
	fmt.Fprintln(w, border)
	for row := 0; row < rows; row++ {
		var line strings.Builder
		line.WriteString("|")
		for col := 0; col < cols; col++ {
			idx := owner[row][col]
			if idx == -1 {
				line.WriteString(strings.Repeat(" ", cellWidth))
			} else {
				t := first[idx]
				line.WriteString(paint(t.Size, pad(cellLabel(t, row+1, col+1))))
			}
			line.WriteString("|")
		}
		fmt.Fprintln(w, line.String())
		fmt.Fprintln(w, border)
	}

	if later > 0 {
		fmt.Fprintf(w, "%d more tiles in later template cycles\n", later)
	}
	return summary(w, r)
}

// cellLabel names the tile in its top-left cell and marks the cells it spans
func cellLabel(t grid.Tile, row, col int) string {
	if row != t.Position.Row || col != t.Position.Col {
		return " " + strings.ToLower(string(t.Size))
	}
	name := t.Item.Title
	if name == "" {
		name = t.Item.ID
	}
	return fmt.Sprintf("%s %s", t.Size, name)
}

func pad(s string) string {
	s = " " + s
	if len(s) > cellWidth {
		return s[:cellWidth-3] + "..."
	}
	return s + strings.Repeat(" ", cellWidth-len(s))
}
