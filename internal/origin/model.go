package origin

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/san-kum/fsoh/internal/config"
	"github.com/san-kum/fsoh/internal/field"
	"github.com/san-kum/fsoh/internal/grid"
)

var (
	// ErrNotRun indicates display was requested before a run completed.
	ErrNotRun = errors.New("origin: model has not been run yet")
)

// Renderer displays a finished run. Implementations live outside this
// package; see internal/viz for the terminal one.
type Renderer interface {
	Render(res *Result) error
}

// Model runs the habitat pipeline for one Config. It is not safe for
// concurrent use; Config itself may be shared freely.
type Model struct {
	cfg    config.Config
	logger *slog.Logger
	latest *Result
}

func New(cfg config.Config) *Model {
	return &Model{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func NewDefault() *Model {
	return New(config.DefaultConfig())
}

// WithLogger sets the logger used to report finished runs.
func (m *Model) WithLogger(l *slog.Logger) *Model {
	if l != nil {
		m.logger = l
	}
	return m
}

func (m *Model) Config() config.Config { return m.cfg }

// Run generates the field, thresholds it and samples origins. The result
// replaces whatever a previous Run stored.
func (m *Model) Run() (*Result, error) {
	cfg := m.cfg
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}

	fieldSrc, originSrc := m.sources()

	f, err := field.Generate(cfg.Size, cfg.FieldIterations, fieldSrc)
	if err != nil {
		return nil, fmt.Errorf("origin: generating field: %w", err)
	}

	eligible := grid.Threshold(f, cfg.Threshold)
	origins := grid.Sample(eligible, cfg.Sparsity, rand.New(originSrc))

	res := &Result{
		Config:   cfg,
		Field:    f,
		Eligible: eligible,
		Origins:  origins,
	}
	m.latest = res

	m.logger.Info("run complete", "stats", res.Stats())
	return res, nil
}

// sources returns the field stream and the origin stream. The origin
// stream is seeded with seed+1.
func (m *Model) sources() (rand.Source, rand.Source) {
	if m.cfg.Nondeterministic {
		return field.NewEntropySource(), field.NewEntropySource()
	}
	return field.NewSource(m.cfg.Seed), field.NewSource(m.cfg.OriginSeed())
}

// Latest returns the result of the most recent Run.
func (m *Model) Latest() (*Result, bool) {
	return m.latest, m.latest != nil
}

// Plot hands the latest result to r.
func (m *Model) Plot(r Renderer) error {
	return Display(m.latest, r)
}

// Display hands res to r. A nil result means no run has happened.
func Display(res *Result, r Renderer) error {
	if res == nil {
		return ErrNotRun
	}
	if r == nil {
		return errors.New("origin: nil renderer")
	}
	if err := r.Render(res); err != nil {
		return fmt.Errorf("origin: rendering: %w", err)
	}
	return nil
}
