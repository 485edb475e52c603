package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	statusLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("236"))

	statusValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Background(lipgloss.Color("236")).
			Bold(true)

	keyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Background(lipgloss.Color("236")).
		Italic(true)
)

// Status is what the status line reports about the last frame.
type Status struct {
	FPS     float64
	Active  int
	Lit     int
	Cells   int
	Speed   string
	Charset string
}

func field(label, value string) string {
	return statusLabel.Render(label+" ") + statusValue.Render(value)
}

// StatusLine renders s into a single line of the given width.
func StatusLine(s Status, width int) string {
	lit := 0.0
	if s.Cells > 0 {
		lit = 100 * float64(s.Lit) / float64(s.Cells)
	}
	sep := statusLabel.Render("  ")
	line := field("fps", fmt.Sprintf("%.1f", s.FPS)) + sep +
		field("drops", fmt.Sprintf("%d", s.Active)) + sep +
		field("lit", fmt.Sprintf("%.1f%%", lit)) + sep +
		field("speed", s.Speed) + sep +
		field("glyphs", s.Charset) + sep +
		keyHint.Render("tab hide · q quit")
	return statusStyle.Width(max(width, 0)).MaxHeight(1).Render(line)
}
