package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorBorder   = lipgloss.Color("#444466")
	colorTitle    = lipgloss.Color("#00ffff")
	colorOrigin   = lipgloss.Color("#ff3030")
	colorEligible = lipgloss.Color("#d0d0d0")
	colorEmpty    = lipgloss.Color("#202020")
)

// styles are built per renderer so color detection follows the writer.
type styles struct {
	panel       lipgloss.Style
	title       lipgloss.Style
	header      lipgloss.Style
	metricLabel lipgloss.Style
	metricValue lipgloss.Style
	subtle      lipgloss.Style
	origin      lipgloss.Style
	base        lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		title: r.NewStyle().
			Bold(true).
			Foreground(colorTitle),
		header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorBorder),
		metricLabel: r.NewStyle().Foreground(lipgloss.Color("#888899")),
		metricValue: r.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true),
		subtle:      r.NewStyle().Foreground(lipgloss.Color("#666688")),
		origin:      r.NewStyle().Foreground(colorOrigin).Bold(true),
		base:        r.NewStyle(),
	}
}

func (s styles) metric(label, value string) string {
	return s.metricLabel.Render(label+" ") + s.metricValue.Render(value)
}

// Decorative separator
func (s styles) separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.subtle.Render(left + " ◆ " + right)
}

// Helper functions
func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
