package dataset

import (
	"fmt"
	"strings"
)

// ColumnIndex resolves each required header to its position in header.
// Matching ignores case and surrounding whitespace.
func ColumnIndex(header []string, required []string) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}
	index := make([]int, len(required))
	for i, name := range required {
		pos, ok := positions[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		index[i] = pos
	}
	return index, nil
}

// Project picks the cells at index; missing trailing cells read as blank.
func Project(cells []string, index []int) []string {
	out := make([]string, len(index))
	for i, pos := range index {
		out[i] = cellAt(cells, pos)
	}
	return out
}

// IsBlankRow reports whether every cell is empty or whitespace.
func IsBlankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
