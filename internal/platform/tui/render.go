package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aestallon/minesweeper/internal/core"
)

// palette maps core.Color to ANSI color numbers.
var palette = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Cursor brackets and mines stand out in bold.
var bold = map[core.Color]bool{
	core.ColorBrightYellow: true,
	core.ColorRed:          true,
}

// Styles maps core.Color to lipgloss styles bound to one renderer. SSH
// sessions get their own so the color profile follows the client terminal.
type Styles map[core.Color]lipgloss.Style

// NewStyles builds the palette for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	st := Styles{core.ColorDefault: r.NewStyle()}
	for c, ansi := range palette {
		st[c] = r.NewStyle().Foreground(lipgloss.Color(ansi)).Bold(bold[c])
	}
	return st
}

var defaultStyles = NewStyles(lipgloss.DefaultRenderer())

// RenderScreen converts a Screen buffer to a styled string for the local
// terminal.
func RenderScreen(s *core.Screen) string {
	return defaultStyles.Render(s)
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells with the same color share one styled run.
func (st Styles) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := st[color]
			if !ok {
				style = st[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
