// Package sweep re-applies the threshold and sampling steps of a finished
// run over a range of parameter values, holding the field fixed.
package sweep

import (
	"math/rand/v2"
	"sort"

	"github.com/san-kum/fsoh/internal/field"
	"github.com/san-kum/fsoh/internal/grid"
	"github.com/san-kum/fsoh/internal/origin"
)

type Point struct {
	Value float64
	Count int
}

// Thresholds counts eligible cells of res.Field for each threshold.
// Points come back sorted by value.
func Thresholds(res *origin.Result, values []float64) []Point {
	pts := make([]Point, 0, len(values))
	for _, t := range sorted(values) {
		pts = append(pts, Point{Value: t, Count: grid.Threshold(res.Field, t).Count()})
	}
	return pts
}

// Sparsities counts origins for each sparsity, re-drawing the run's
// origin stream from the start every time. For nondeterministic runs a
// single entropy stream is drawn once and replayed.
func Sparsities(res *origin.Result, values []float64) []Point {
	newRNG := originStream(res)
	pts := make([]Point, 0, len(values))
	for _, p := range sorted(values) {
		pts = append(pts, Point{Value: p, Count: grid.Sample(res.Eligible, p, newRNG()).Count()})
	}
	return pts
}

// Best returns the point whose count is closest to target. Ties keep the
// earlier point.
func Best(pts []Point, target int) (Point, bool) {
	if len(pts) == 0 {
		return Point{}, false
	}
	best := pts[0]
	bestDist := abs(best.Count - target)
	for _, p := range pts[1:] {
		if d := abs(p.Count - target); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}

// Range returns n evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Counts extracts the counts as float64s, ready for plotting.
func Counts(pts []Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = float64(p.Count)
	}
	return out
}

func originStream(res *origin.Result) func() *rand.Rand {
	if !res.Config.Nondeterministic {
		seed := res.Config.OriginSeed()
		return func() *rand.Rand { return rand.New(field.NewSource(seed)) }
	}
	a, b := rand.Uint64(), rand.Uint64()
	return func() *rand.Rand { return rand.New(rand.NewPCG(a, b)) }
}

func sorted(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
