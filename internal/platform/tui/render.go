package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/whackamole/internal/core"
)

// palette holds the terminal color for each core.Color, indexed by value.
// An empty entry renders unstyled.
var palette = [...]lipgloss.Color{
	core.ColorDefault:      "",
	core.ColorWhite:        "7",
	core.ColorGray:         "245",
	core.ColorOrange:       "208",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightCyan:   "14",
	core.ColorBrightWhite:  "15",
}

var cellStyles = buildCellStyles()

func buildCellStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(palette))
	for i, c := range palette {
		styles[i] = lipgloss.NewStyle()
		if c != "" {
			styles[i] = styles[i].Foreground(c)
		}
	}
	return styles
}

// styleFor returns the style for c; unknown colors render unstyled.
func styleFor(c core.Color) lipgloss.Style {
	if c.Valid() && int(c) < len(cellStyles) {
		return cellStyles[c]
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Rows are joined with newlines, without a trailing one.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		renderRow(&sb, s, y)
	}
	return sb.String()
}

// renderRow writes row y, one styled run per stretch of same-colored cells.
func renderRow(sb *strings.Builder, s *core.Screen, y int) {
	var run strings.Builder
	color := s.GetCell(0, y).Color

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if color == core.ColorDefault {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(styleFor(color).Render(run.String()))
		}
		run.Reset()
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != color {
			flush()
			color = cell.Color
		}
		run.WriteRune(cell.Rune)
	}
	flush()
}
