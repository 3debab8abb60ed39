package arrange

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfiguration wraps every option error reported by New
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrUnknownSortMode is returned by ParseSortMode for an unrecognized mode
var ErrUnknownSortMode = errors.New("unknown sort mode")

// SortMode selects how filtered listings are ordered and whether they are tiled
type SortMode string

const (
	SortDefault        SortMode = "default"
	SortTrending       SortMode = "trending"
	SortChronological  SortMode = "chronological"
	SortRecentlyListed SortMode = "recently-listed"
	SortByCategory     SortMode = "by-category"
)

// SortModes lists every recognized mode
var SortModes = []SortMode{
	SortDefault,
	SortTrending,
	SortChronological,
	SortRecentlyListed,
	SortByCategory,
}

// ParseSortMode converts a string to a SortMode
func ParseSortMode(s string) (SortMode, error) {
	mode := SortMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range SortModes {
		if m == mode {
			return m, nil
		}
	}

	names := make([]string, 0, len(SortModes))
	for _, m := range SortModes {
		names = append(names, string(m))
	}
	return "", fmt.Errorf("%w: %q (use %s)", ErrUnknownSortMode, s, strings.Join(names, ", "))
}

// Tiled reports whether the mode runs scoring and grid placement
func (m SortMode) Tiled() bool {
	return m == SortDefault || m == SortTrending
}
