// Package report encodes run results as CSV tables on a caller-supplied
// writer.
package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/fsoh/internal/origin"
	"github.com/san-kum/fsoh/internal/sweep"
)

// OriginRecord is one row of the origins table.
type OriginRecord struct {
	Row   int     `csv:"row"`
	Col   int     `csv:"col"`
	Field float64 `csv:"field"`
}

// SummaryRecord is one row of the run summary table.
type SummaryRecord struct {
	Size             int     `csv:"size"`
	FieldIterations  int     `csv:"field_iterations"`
	Threshold        float64 `csv:"threshold"`
	Sparsity         float64 `csv:"sparsity"`
	Seed             int64   `csv:"seed"`
	Nondeterministic bool    `csv:"nondeterministic"`
	Eligible         int     `csv:"eligible"`
	Origins          int     `csv:"origins"`
	EligibleFraction float64 `csv:"eligible_fraction"`
	FieldMean        float64 `csv:"field_mean"`
	FieldStdDev      float64 `csv:"field_std"`
}

// SweepRecord is one row of a parameter sweep table.
type SweepRecord struct {
	Parameter string  `csv:"parameter"`
	Value     float64 `csv:"value"`
	Count     int     `csv:"count"`
}

func Origins(res *origin.Result) []OriginRecord {
	pts := res.OriginPoints()
	records := make([]OriginRecord, len(pts))
	for i, p := range pts {
		records[i] = OriginRecord{Row: p.Row, Col: p.Col, Field: res.Field.At(p.Row, p.Col)}
	}
	return records
}

func Summary(res *origin.Result) SummaryRecord {
	cfg := res.Config
	s := res.Stats()
	return SummaryRecord{
		Size:             cfg.Size,
		FieldIterations:  cfg.FieldIterations,
		Threshold:        cfg.Threshold,
		Sparsity:         cfg.Sparsity,
		Seed:             cfg.Seed,
		Nondeterministic: cfg.Nondeterministic,
		Eligible:         s.EligibleCount,
		Origins:          s.OriginCount,
		EligibleFraction: s.EligibleFraction,
		FieldMean:        s.FieldMean,
		FieldStdDev:      s.FieldStdDev,
	}
}

// WriteOrigins writes the origins of res, one row per cell in row-major
// order.
func WriteOrigins(w io.Writer, res *origin.Result) error {
	if res == nil {
		return origin.ErrNotRun
	}
	if err := gocsv.Marshal(Origins(res), w); err != nil {
		return fmt.Errorf("writing origins: %w", err)
	}
	return nil
}

// WriteSummary writes one summary row per result.
func WriteSummary(w io.Writer, results ...*origin.Result) error {
	records := make([]SummaryRecord, 0, len(results))
	for _, res := range results {
		if res == nil {
			return origin.ErrNotRun
		}
		records = append(records, Summary(res))
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// WriteSweep writes sweep points labelled with the swept parameter.
func WriteSweep(w io.Writer, parameter string, pts []sweep.Point) error {
	records := make([]SweepRecord, len(pts))
	for i, p := range pts {
		records[i] = SweepRecord{Parameter: parameter, Value: p.Value, Count: p.Count}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing sweep: %w", err)
	}
	return nil
}

// ReadOrigins decodes a table written by WriteOrigins.
func ReadOrigins(r io.Reader) ([]OriginRecord, error) {
	var records []OriginRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("reading origins: %w", err)
	}
	return records, nil
}
