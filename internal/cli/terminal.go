package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/vijay-prabhu/listgrid/internal/grid"
	"github.com/vijay-prabhu/listgrid/internal/output"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorGray   = "\033[90m"
)

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal bool
	UseColor   bool
}

// NewTerminal creates a Terminal for the given writer.
// Only *os.File writers can be terminals.
func NewTerminal(w io.Writer) *Terminal {
	isTerminal := false
	if f, ok := w.(*os.File); ok {
		isTerminal = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal && os.Getenv("NO_COLOR") == "", // Only use color in terminal
	}
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// Painter colors grid preview cells by size class
func (t *Terminal) Painter() output.Painter {
	return func(size grid.SizeClass, text string) string {
		return t.Color(SizeColor(size), text)
	}
}

// SizeColor returns the display color for a tile size
func SizeColor(size grid.SizeClass) string {
	switch size {
	case grid.SizeXL:
		return ColorPurple
	case grid.SizeL:
		return ColorBlue
	case grid.SizeM:
		return ColorGreen
	case grid.SizeS:
		return ColorYellow
	default:
		return ColorGray
	}
}
