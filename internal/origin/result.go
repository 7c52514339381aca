package origin

import (
	"log/slog"

	"github.com/san-kum/fsoh/internal/config"
	"github.com/san-kum/fsoh/internal/field"
	"github.com/san-kum/fsoh/internal/grid"
)

// Result is the immutable output of one Run.
type Result struct {
	Config   config.Config
	Field    *field.Field
	Eligible *grid.Mask
	Origins  *grid.Mask
}

// Point is a grid coordinate.
type Point struct {
	Row int
	Col int
}

// OriginPoints lists origin cells in row-major order.
func (r *Result) OriginPoints() []Point {
	n := r.Origins.Size()
	pts := make([]Point, 0)
	for i, ok := range r.Origins.Cells() {
		if ok {
			pts = append(pts, Point{Row: i / n, Col: i % n})
		}
	}
	return pts
}

// Stats summarizes a run.
type Stats struct {
	Size             int
	Cells            int
	EligibleCount    int
	OriginCount      int
	EligibleFraction float64
	FieldMean        float64
	FieldStdDev      float64
}

func (r *Result) Stats() Stats {
	n := r.Field.Size()
	return Stats{
		Size:             n,
		Cells:            n * n,
		EligibleCount:    r.Eligible.Count(),
		OriginCount:      r.Origins.Count(),
		EligibleFraction: r.Eligible.Fraction(),
		FieldMean:        r.Field.Mean(),
		FieldStdDev:      r.Field.StdDev(),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("size", s.Size),
		slog.Int("cells", s.Cells),
		slog.Int("eligible", s.EligibleCount),
		slog.Int("origins", s.OriginCount),
		slog.Float64("eligible_fraction", s.EligibleFraction),
		slog.Float64("field_mean", s.FieldMean),
		slog.Float64("field_std", s.FieldStdDev),
	)
}
