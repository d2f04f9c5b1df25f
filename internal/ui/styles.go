package ui

import (
	"github.com/charmbracelet/lipgloss"

	"flint/internal/config"
)

// BlockStyle is one configured screen region.
type BlockStyle struct {
	Frame      lipgloss.Style
	Text       lipgloss.Style
	Title      string
	TitleAlign lipgloss.Position
	Visible    bool
}

// Styles holds every configured block plus the fixed chrome styles.
type Styles struct {
	Window        BlockStyle
	OuterBox      BlockStyle
	Input         BlockStyle
	Scroll        BlockStyle
	InnerBox      BlockStyle
	Entry         BlockStyle
	EntrySelected BlockStyle
	Text          BlockStyle

	HighlightSymbol string
	FavoriteSymbol  string

	Muted lipgloss.Style
	Error lipgloss.Style
}

// FromConfig builds the style set from the configured blocks.
func FromConfig(cfg *config.Config) Styles {
	g := cfg.General
	return Styles{
		Window:        blockStyle(cfg.Styling.Window, g),
		OuterBox:      blockStyle(cfg.Styling.OuterBox, g),
		Input:         blockStyle(cfg.Styling.Input, g),
		Scroll:        blockStyle(cfg.Styling.Scroll, g),
		InnerBox:      blockStyle(cfg.Styling.InnerBox, g),
		Entry:         blockStyle(cfg.Styling.Entry, g),
		EntrySelected: blockStyle(cfg.Styling.EntrySelected, g),
		Text:          blockStyle(cfg.Styling.Text, g),

		HighlightSymbol: g.HighlightSymbol,
		FavoriteSymbol:  g.FavoriteSymbol,

		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

func blockStyle(b config.Block, g config.General) BlockStyle {
	frame := lipgloss.NewStyle()
	visible := b.IsVisible()
	if visible && b.HasBorders(g) {
		border := lipgloss.NormalBorder()
		if b.IsRounded(g) {
			border = lipgloss.RoundedBorder()
		}
		frame = frame.Border(border)
		if c, ok := config.ParseColor(b.BorderColor); ok {
			frame = frame.BorderForeground(c)
		}
	}

	text := lipgloss.NewStyle()
	if c, ok := config.ParseColor(b.Fg); ok {
		text = text.Foreground(c)
	}
	if c, ok := config.ParseColor(b.Bg); ok {
		text = text.Background(c)
	}

	return BlockStyle{
		Frame:      frame,
		Text:       text,
		Title:      b.Title,
		TitleAlign: titleAlign(b.TitleAlignment),
		Visible:    visible,
	}
}

func titleAlign(s string) lipgloss.Position {
	switch s {
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	}
	return lipgloss.Left
}

// Render draws content inside the block's frame at the given content
// width, prepending the title line when one is configured. Invisible
// blocks pass their content through unframed.
func (b BlockStyle) Render(width int, content string) string {
	if !b.Visible {
		return content
	}
	if b.Title != "" {
		title := b.Text.Width(width).Align(b.TitleAlign).Render(b.Title)
		content = title + "\n" + content
	}
	return b.Frame.Width(width).Render(content)
}
