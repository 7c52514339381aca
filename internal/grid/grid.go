// Package grid holds the square boolean masks derived from a habitat field
// and the toroidal index helpers shared with the field generator.
package grid

import "math/rand/v2"

// Scalar is a read-only square grid of real values.
type Scalar interface {
	Size() int
	At(row, col int) float64
}

// Mask is a square grid of booleans in row-major order.
type Mask struct {
	size  int
	cells []bool
}

// NewMask allocates an all-false mask. Non-positive sizes are clamped to 1.
func NewMask(size int) *Mask {
	if size <= 0 {
		size = 1
	}
	return &Mask{size: size, cells: make([]bool, size*size)}
}

func (m *Mask) Size() int { return m.size }

func (m *Mask) At(row, col int) bool { return m.cells[Index(m.size, row, col)] }

func (m *Mask) Set(row, col int, v bool) { m.cells[Index(m.size, row, col)] = v }

// Cells exposes the backing slice in row-major order.
func (m *Mask) Cells() []bool { return m.cells }

// Count returns the number of true cells.
func (m *Mask) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Fraction returns Count divided by the number of cells.
func (m *Mask) Fraction() float64 {
	return float64(m.Count()) / float64(len(m.cells))
}

// SubsetOf reports whether every true cell of m is also true in other.
func (m *Mask) SubsetOf(other *Mask) bool {
	if other == nil || other.size != m.size {
		return false
	}
	for i, c := range m.cells {
		if c && !other.cells[i] {
			return false
		}
	}
	return true
}

// Threshold marks every cell whose value is strictly greater than t.
func Threshold(s Scalar, t float64) *Mask {
	n := s.Size()
	m := NewMask(n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			m.cells[Index(n, row, col)] = s.At(row, col) > t
		}
	}
	return m
}

// Sample keeps an eligible cell when a uniform draw in [0,1) is below p.
// One value is drawn for every cell in row-major order, eligible or not,
// so the stream position never depends on the mask.
func Sample(eligible *Mask, p float64, rng *rand.Rand) *Mask {
	out := NewMask(eligible.size)
	for i, ok := range eligible.cells {
		u := rng.Float64()
		out.cells[i] = ok && u < p
	}
	return out
}

// Index returns the row-major offset of (row, col).
func Index(size, row, col int) int { return row*size + col }

// Wrap maps any integer coordinate onto [0, size) with toroidal wrapping.
func Wrap(size, i int) int {
	return (i%size + size) % size
}
