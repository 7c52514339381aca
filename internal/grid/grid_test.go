package grid

import (
	"math/rand/v2"
	"testing"
)

type sliceScalar struct {
	n    int
	vals []float64
}

func (s sliceScalar) Size() int               { return s.n }
func (s sliceScalar) At(row, col int) float64 { return s.vals[row*s.n+col] }

func TestWrap(t *testing.T) {
	tests := []struct {
		size, in, want int
	}{
		{5, 0, 0},
		{5, 4, 4},
		{5, 5, 0},
		{5, -1, 4},
		{5, -6, 4},
		{5, 12, 2},
		{1, -1, 0},
		{1, 1, 0},
	}

	for _, tt := range tests {
		if got := Wrap(tt.size, tt.in); got != tt.want {
			t.Errorf("Wrap(%d, %d): expected %d, got %d", tt.size, tt.in, tt.want, got)
		}
	}
}

func TestNewMaskClamps(t *testing.T) {
	m := NewMask(0)
	if m.Size() != 1 || len(m.Cells()) != 1 {
		t.Errorf("expected 1x1 mask, got size %d", m.Size())
	}
}

func TestMaskSetAt(t *testing.T) {
	m := NewMask(3)
	m.Set(1, 2, true)
	if !m.At(1, 2) {
		t.Error("expected (1,2) set")
	}
	if !m.Cells()[Index(3, 1, 2)] {
		t.Error("expected row-major offset 5 set")
	}
	if m.Count() != 1 {
		t.Errorf("expected count 1, got %d", m.Count())
	}
	if m.Fraction() != 1.0/9.0 {
		t.Errorf("expected fraction 1/9, got %f", m.Fraction())
	}
}

func TestThreshold(t *testing.T) {
	s := sliceScalar{n: 2, vals: []float64{0.1, 0.5, 0.65, 0.9}}

	m := Threshold(s, 0.5)
	want := []bool{false, false, true, true}
	for i, v := range m.Cells() {
		if v != want[i] {
			t.Errorf("cell %d: expected %v, got %v", i, want[i], v)
		}
	}

	if Threshold(s, -1).Count() != 4 {
		t.Error("threshold below range should mark every cell")
	}
	if Threshold(s, 1).Count() != 0 {
		t.Error("threshold at the top should mark nothing")
	}
}

func TestSampleSubset(t *testing.T) {
	eligible := NewMask(16)
	for i := range eligible.Cells() {
		eligible.Cells()[i] = i%3 == 0
	}

	out := Sample(eligible, 0.5, rand.New(rand.NewPCG(1, 0)))
	if !out.SubsetOf(eligible) {
		t.Error("sampled cells must be eligible")
	}
	if out.Count() == 0 {
		t.Error("expected some origins at p=0.5")
	}
}

func TestSampleBounds(t *testing.T) {
	eligible := NewMask(8)
	for i := range eligible.Cells() {
		eligible.Cells()[i] = true
	}

	if n := Sample(eligible, 0, rand.New(rand.NewPCG(1, 0))).Count(); n != 0 {
		t.Errorf("p=0: expected no origins, got %d", n)
	}
	if n := Sample(eligible, 1, rand.New(rand.NewPCG(1, 0))).Count(); n != 64 {
		t.Errorf("p=1: expected 64 origins, got %d", n)
	}
}

// Every cell consumes one draw, so the stream is independent of the mask.
func TestSampleDrawsPerCell(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 0))
	Sample(NewMask(4), 0.5, rng)
	after := rng.Float64()

	ref := rand.New(rand.NewPCG(9, 0))
	for i := 0; i < 16; i++ {
		ref.Float64()
	}
	if want := ref.Float64(); after != want {
		t.Errorf("expected 16 draws consumed, stream at %v want %v", after, want)
	}
}

func TestSubsetOf(t *testing.T) {
	a, b := NewMask(2), NewMask(2)
	a.Set(0, 0, true)
	b.Set(0, 0, true)
	b.Set(1, 1, true)

	if !a.SubsetOf(b) {
		t.Error("a should be a subset of b")
	}
	if b.SubsetOf(a) {
		t.Error("b should not be a subset of a")
	}
	if a.SubsetOf(NewMask(3)) {
		t.Error("masks of different size are never subsets")
	}
	if a.SubsetOf(nil) {
		t.Error("nil is never a superset")
	}
}
