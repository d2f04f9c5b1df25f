package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"flint/internal/ui"
)

// Item is one selectable row.
type Item struct {
	Text     string
	Favorite bool
}

// EntryList renders a scrolling selection list, keeping the cursor
// row in view with overflow indicators.
type EntryList struct {
	Items  []Item
	Cursor int
	Width  int
	Height int

	Highlight    string
	FavoriteMark string
	Entry        lipgloss.Style
	Selected     lipgloss.Style
	Muted        lipgloss.Style
}

// View renders the visible window of the list.
func (l *EntryList) View() string {
	if len(l.Items) == 0 {
		return l.Muted.Render("nothing matches")
	}

	visible := l.Height
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.Cursor >= visible {
		start = l.Cursor - visible + 1
	}
	end := min(start+visible, len(l.Items))

	var b strings.Builder
	if start > 0 {
		b.WriteString(l.Muted.Render("  ↑ more"))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(l.row(l.Items[i], i == l.Cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(l.Items) {
		b.WriteString("\n")
		b.WriteString(l.Muted.Render("  ↓ more"))
	}
	return b.String()
}

// row renders a single item with the highlight and favorite columns.
func (l *EntryList) row(it Item, selected bool) string {
	prefix := strings.Repeat(" ", runewidth.StringWidth(l.Highlight))
	style := l.Entry
	if selected {
		prefix = l.Highlight
		style = l.Selected
	}
	mark := strings.Repeat(" ", runewidth.StringWidth(l.FavoriteMark))
	if it.Favorite {
		mark = l.FavoriteMark
	}
	text := ui.PadRight(it.Text, l.Width-runewidth.StringWidth(prefix)-runewidth.StringWidth(mark))
	return style.Render(prefix + mark + text)
}
