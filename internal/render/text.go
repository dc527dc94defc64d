package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styler colours tier levels. The zero value renders plain text.
type Styler struct {
	Color bool
}

var levelColors = map[string]lipgloss.Color{
	"risk-low":      lipgloss.Color("42"),
	"risk-medium":   lipgloss.Color("226"),
	"risk-high":     lipgloss.Color("214"),
	"risk-critical": lipgloss.Color("196"),
}

// Level renders text in the colour of the tier class.
func (s Styler) Level(class, text string) string {
	if !s.Color {
		return text
	}
	style := lipgloss.NewStyle().Bold(true)
	if c, ok := levelColors[class]; ok {
		style = style.Foreground(c)
	}
	return style.Render(text)
}

func (s Styler) heading(text string) string {
	if !s.Color {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Underline(true).Render(text)
}

// WriteRecommendation prints the single-selection result panel.
func WriteRecommendation(w io.Writer, r Row, l Labels, s Styler) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", l.InputData, inputCell(r))
	fmt.Fprintf(&b, "%s: %s\n\n", l.AITool, toolCell(r))
	fmt.Fprintf(&b, "%s: %d\n", l.RiskScore, r.TotalScore)
	fmt.Fprintf(&b, "%s: %s\n", l.RiskLevel, s.Level(r.Class, r.Level))
	fmt.Fprintf(&b, "%s: %s\n", l.ActionRequired, r.Action)
	fmt.Fprintf(&b, "%s: %s\n", l.Approver, r.Approver)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMatrixText prints the decision matrix as an aligned table.
func WriteMatrixText(w io.Writer, rows []Row, l Labels, s Styler) error {
	header := l.matrixHeader()
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = matrixRecord(r)
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, rec := range records {
		for i, cell := range rec {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	b.WriteString(s.heading(l.Matrix))
	b.WriteString("\n\n")
	writeLine(&b, header, widths, func(_ int, cell string) string { return cell })
	sep := make([]string, len(widths))
	for i, wd := range widths {
		sep[i] = strings.Repeat("-", wd)
	}
	writeLine(&b, sep, widths, func(_ int, cell string) string { return cell })
	for ri, rec := range records {
		class := rows[ri].Class
		writeLine(&b, rec, widths, func(col int, cell string) string {
			if col == 3 {
				return s.Level(class, cell)
			}
			return cell
		})
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeLine pads before styling so escape codes do not skew alignment.
func writeLine(b *strings.Builder, cells []string, widths []int, style func(int, string) string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		pad := widths[i] - lipgloss.Width(cell)
		b.WriteString(style(i, cell))
		if i < len(cells)-1 && pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	b.WriteString("\n")
}
