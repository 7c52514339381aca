package viz

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fsoh/internal/grid"
	"github.com/san-kum/fsoh/internal/origin"
)

const (
	DefaultWidth  = 32
	histogramBins = 40
)

// Terminal draws a run as three side-by-side panels: the habitat field
// heatmap, the eligible mask and the origin overlay, followed by an origin
// scatter and a histogram of field values.
type Terminal struct {
	Out       io.Writer
	Width     int // panel side in cells; larger grids are block-downsampled
	Colormap  Colormap
	Histogram bool
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		Out:       out,
		Width:     DefaultWidth,
		Colormap:  Viridis,
		Histogram: true,
	}
}

// Render implements origin.Renderer.
func (t *Terminal) Render(res *origin.Result) error {
	if res == nil {
		return origin.ErrNotRun
	}

	s := newStyles(lipgloss.NewRenderer(t.Out))
	cm := t.Colormap
	if len(cm.Stops) == 0 {
		cm = Viridis
	}

	n := res.Field.Size()
	block := blockSize(n, t.Width)
	values := averageBlocks(res.Field, block)
	eligible := anyBlocks(res.Eligible, block)
	origins := anyBlocks(res.Origins, block)

	fieldPanel := s.panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("Fractal-like Habitat Field"),
		heatmap(s, len(values), func(r, c int) lipgloss.Color { return cm.At(values[r][c]) }),
	))
	eligiblePanel := s.panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render(fmt.Sprintf("Eligible Regions (field > %g)", res.Config.Threshold)),
		heatmap(s, len(eligible), func(r, c int) lipgloss.Color { return maskColor(eligible[r][c]) }),
	))
	originPanel := s.panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render(fmt.Sprintf("Sparse Origins (p = %.1e)", res.Config.Sparsity)),
		heatmap(s, len(origins), func(r, c int) lipgloss.Color {
			if origins[r][c] {
				return colorOrigin
			}
			return maskColor(eligible[r][c])
		}),
	))

	stats := res.Stats()
	sections := []string{
		s.header.Render("Minimal FSOH Simulation"),
		lipgloss.JoinHorizontal(lipgloss.Top, fieldPanel, eligiblePanel, originPanel),
		strings.Join([]string{
			s.metric("size", strconv.Itoa(stats.Size)),
			s.metric("eligible", fmt.Sprintf("%d (%.2f%%)", stats.EligibleCount, 100*stats.EligibleFraction)),
			s.metric("origins", strconv.Itoa(stats.OriginCount)),
			s.metric("seed", seedLabel(res)),
		}, "   "),
		s.separator(3 * (len(values[0]) + 4)),
		s.panel.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Origin Positions"),
			s.origin.Render(originCanvas(res, t.Width).String()),
		)),
	}

	if t.Histogram {
		graph := asciigraph.Plot(histogram(res.Field.Values(), histogramBins),
			asciigraph.Height(8),
			asciigraph.Width(2*histogramBins),
			asciigraph.Caption("field value distribution"),
		)
		sections = append(sections, graph)
	}

	_, err := fmt.Fprintln(t.Out, strings.Join(sections, "\n"))
	return err
}

func seedLabel(res *origin.Result) string {
	if res.Config.Nondeterministic {
		return "entropy (non-reproducible)"
	}
	return strconv.FormatInt(res.Config.Seed, 10)
}

func maskColor(on bool) lipgloss.Color {
	if on {
		return colorEligible
	}
	return colorEmpty
}

// heatmap packs two grid rows into each terminal line using the upper
// half block: foreground is the top cell, background the bottom one.
func heatmap(s styles, rows int, color func(r, c int) lipgloss.Color) string {
	var b strings.Builder
	for r := 0; r < rows; r += 2 {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < rows; c++ {
			st := s.base.Foreground(color(r, c))
			if r+1 < rows {
				st = st.Background(color(r+1, c))
			}
			b.WriteString(st.Render("▀"))
		}
	}
	return b.String()
}

// originCanvas plots every origin as a Braille dot on a square canvas.
func originCanvas(res *origin.Result, width int) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	c := NewCanvas(width, (width+1)/2)
	n := res.Origins.Size()
	for _, p := range res.OriginPoints() {
		c.Plot(p.Row, p.Col, n)
	}
	return c
}

// blockSize is the side of the square block that shrinks a size×size grid
// to at most width cells per side.
func blockSize(size, width int) int {
	if width <= 0 || size <= width {
		return 1
	}
	return (size + width - 1) / width
}

func averageBlocks(s grid.Scalar, block int) [][]float64 {
	n := s.Size()
	rows := (n + block - 1) / block
	out := make([][]float64, rows)
	for br := range out {
		out[br] = make([]float64, rows)
		for bc := range out[br] {
			sum, count := 0.0, 0
			for r := br * block; r < min((br+1)*block, n); r++ {
				for c := bc * block; c < min((bc+1)*block, n); c++ {
					sum += s.At(r, c)
					count++
				}
			}
			out[br][bc] = sum / float64(count)
		}
	}
	return out
}

func anyBlocks(m *grid.Mask, block int) [][]bool {
	n := m.Size()
	rows := (n + block - 1) / block
	out := make([][]bool, rows)
	for br := range out {
		out[br] = make([]bool, rows)
	}
	for i, on := range m.Cells() {
		if on {
			out[(i/n)/block][(i%n)/block] = true
		}
	}
	return out
}

// histogram counts values in [0,1] into equal-width bins.
func histogram(values []float64, bins int) []float64 {
	out := make([]float64, bins)
	for _, v := range values {
		i := int(v * float64(bins))
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i]++
	}
	return out
}
