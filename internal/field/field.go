package field

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/fsoh/internal/grid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Field is a square habitat grid stored as a dense row-major matrix.
type Field struct {
	size int
	data *mat.Dense
}

// New wraps a row-major slice of size*size values. The slice is not copied.
func New(size int, values []float64) (*Field, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidSize, size)
	}
	if len(values) != size*size {
		return nil, fmt.Errorf("field: expected %d values, got %d", size*size, len(values))
	}
	return &Field{size: size, data: mat.NewDense(size, size, values)}, nil
}

// Generate fills a size×size grid with uniform [0,1) draws from src in
// row-major order, applies iterations smoothing passes and rescales the
// result to [0,1].
func Generate(size, iterations int, src rand.Source) (*Field, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidSize, size)
	}
	if iterations < 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidIterations, iterations)
	}
	if src == nil {
		return nil, ErrNilSource
	}

	rng := rand.New(src)
	values := make([]float64, size*size)
	for i := range values {
		values[i] = rng.Float64()
	}
	f := &Field{size: size, data: mat.NewDense(size, size, values)}

	for i := 0; i < iterations; i++ {
		f.Smooth()
	}
	f.Normalize()
	return f, nil
}

// Smooth replaces every cell with the mean of itself and its four
// toroidal neighbors. All cells read the previous pass.
func (f *Field) Smooth() {
	n := f.size
	prev := f.data.RawMatrix().Data
	next := make([]float64, len(prev))

	for row := 0; row < n; row++ {
		up := grid.Wrap(n, row-1)
		down := grid.Wrap(n, row+1)
		for col := 0; col < n; col++ {
			left := grid.Wrap(n, col-1)
			right := grid.Wrap(n, col+1)
			sum := prev[grid.Index(n, row, col)] +
				prev[grid.Index(n, up, col)] +
				prev[grid.Index(n, down, col)] +
				prev[grid.Index(n, row, left)] +
				prev[grid.Index(n, row, right)]
			next[grid.Index(n, row, col)] = sum / 5.0
		}
	}
	f.data = mat.NewDense(n, n, next)
}

// Normalize rescales linearly so the minimum maps to 0 and the maximum to
// 1. A constant field is left unchanged.
func (f *Field) Normalize() {
	data := f.data.RawMatrix().Data
	lo, hi := floats.Min(data), floats.Max(data)
	if !(hi > lo) {
		return
	}
	span := hi - lo
	for i, v := range data {
		data[i] = (v - lo) / span
	}
}

func (f *Field) Size() int { return f.size }

func (f *Field) At(row, col int) float64 { return f.data.At(row, col) }

// Values returns a row-major copy of the grid.
func (f *Field) Values() []float64 {
	out := make([]float64, f.size*f.size)
	copy(out, f.data.RawMatrix().Data)
	return out
}

// Matrix returns a read-only view of the underlying matrix.
func (f *Field) Matrix() mat.Matrix { return f.data }

func (f *Field) Min() float64 { return floats.Min(f.data.RawMatrix().Data) }

func (f *Field) Max() float64 { return floats.Max(f.data.RawMatrix().Data) }

func (f *Field) Mean() float64 { return stat.Mean(f.data.RawMatrix().Data, nil) }

// StdDev is the sample standard deviation; a single-cell field reports 0.
func (f *Field) StdDev() float64 {
	data := f.data.RawMatrix().Data
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}
