package formatter

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

var numericCell = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// RenderTable renders an aligned table with a header separator line. Widths
// are measured on visible text, so styled cells line up. Plain numeric
// cells are right-aligned.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	gap := strings.Repeat(" ", colGap)

	for i, h := range headers {
		b.WriteString(StyleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)) + gap)
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(gap)
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			switch {
			case numericCell.MatchString(cell):
				b.WriteString(pad + cell)
			case i < cols-1:
				b.WriteString(cell + pad)
			default:
				b.WriteString(cell)
			}
			if i < cols-1 {
				b.WriteString(gap)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
