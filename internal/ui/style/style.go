// Package style provides shared styling primitives: terminal colors and icons
// for the CLI, and the chart palette for rendered visualizations.
package style

import "github.com/charmbracelet/lipgloss"

// Terminal colors.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Chart palette, in the order slices are colored.
var (
	Sage      = lipgloss.Color("#B5B682")
	Olive     = lipgloss.Color("#c0bc5d")
	Xanadu    = lipgloss.Color("#6C8975")
	Feldgrau  = lipgloss.Color("#485B4E")
	Hunter    = lipgloss.Color("#3c582d")
	Dartmouth = lipgloss.Color("#376D39")
)

// Palette is the chart colorway.
var Palette = []lipgloss.Color{Sage, Olive, Xanadu, Feldgrau, Hunter, Dartmouth}

// ChartColors returns n colors from the palette, cycling when n exceeds its length.
func ChartColors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(Palette[i%len(Palette)])
	}
	return out
}

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)
