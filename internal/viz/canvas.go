package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set sets a dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Plot maps a cell of a size×size grid onto the canvas and sets its dot.
func (c *Canvas) Plot(row, col, size int) {
	if size <= 0 {
		return
	}
	x := col * c.Width * 2 / size
	y := row * c.Height * 4 / size
	c.Set(x, y)
}

// Dots returns the number of set dots.
func (c *Canvas) Dots() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			bits := r - brailleBlank
			for bits != 0 {
				n += int(bits & 1)
				bits >>= 1
			}
		}
	}
	return n
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

func (c *Canvas) Lines() []string {
	lines := make([]string, len(c.Grid))
	for i, row := range c.Grid {
		lines[i] = string(row)
	}
	return lines
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
