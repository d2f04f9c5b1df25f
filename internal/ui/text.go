package ui

import "github.com/mattn/go-runewidth"

// Truncate trims s to at most width display cells, ending with an
// ellipsis when trimmed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight extends s with spaces to exactly width display cells,
// truncating first when it is too long.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(s, width), width)
}
