package viz

import "github.com/charmbracelet/lipgloss"

// Colormap is a piecewise-linear ramp through evenly spaced stops.
type Colormap struct {
	Name  string
	Stops []lipgloss.Color
}

// Available colormaps
var (
	Viridis = Colormap{
		Name: "viridis",
		Stops: []lipgloss.Color{
			"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
			"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
		},
	}

	Gray = Colormap{
		Name:  "gray",
		Stops: []lipgloss.Color{"#000000", "#ffffff"},
	}

	Reds = Colormap{
		Name:  "reds",
		Stops: []lipgloss.Color{"#fff5f0", "#fc9272", "#de2d26", "#a50f15"},
	}
)

var Colormaps = map[string]Colormap{
	Viridis.Name: Viridis,
	Gray.Name:    Gray,
	Reds.Name:    Reds,
}

// At returns the interpolated color for v in [0,1]. Values outside the
// range are clamped.
func (c Colormap) At(v float64) lipgloss.Color {
	if len(c.Stops) == 0 {
		return lipgloss.Color("#ffffff")
	}
	if len(c.Stops) == 1 || v <= 0 || v != v {
		return c.Stops[0]
	}
	if v >= 1 {
		return c.Stops[len(c.Stops)-1]
	}

	pos := v * float64(len(c.Stops)-1)
	i := int(pos)
	t := pos - float64(i)

	sr, sg, sb := parseHex(string(c.Stops[i]))
	er, eg, eb := parseHex(string(c.Stops[i+1]))
	r := int(float64(sr) + t*float64(er-sr) + 0.5)
	g := int(float64(sg) + t*float64(eg-sg) + 0.5)
	b := int(float64(sb) + t*float64(eb-sb) + 0.5)
	return lipgloss.Color(hexColor(r, g, b))
}
