package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruit-link/internal/core"
)

// ansi holds the 256-colour code of every core.Color. ColorDefault keeps
// the terminal's own foreground.
var ansi = [...]lipgloss.Color{
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

// cellStyle returns the lipgloss style for a colour and attribute set.
func cellStyle(color core.Color, attr core.Attr) lipgloss.Style {
	style := lipgloss.NewStyle().
		Bold(attr&core.AttrBold != 0).
		Reverse(attr&core.AttrReverse != 0).
		Blink(attr&core.AttrBlink != 0)
	if int(color) < len(ansi) && ansi[color] != "" {
		style = style.Foreground(ansi[color])
	}
	return style
}

// RenderScreen turns a screen buffer into terminal output, one styled span
// per run of cells that share colour and attributes.
func RenderScreen(s *core.Screen) string {
	lines := make([]string, s.Height())
	var span []rune

	for y := range lines {
		var line strings.Builder
		for x := 0; x < s.Width(); {
			first := s.GetCell(x, y)
			span = span[:0]
			for ; x < s.Width(); x++ {
				c := s.GetCell(x, y)
				if c.Color != first.Color || c.Attr != first.Attr {
					break
				}
				span = append(span, c.Rune)
			}
			line.WriteString(cellStyle(first.Color, first.Attr).Render(string(span)))
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
