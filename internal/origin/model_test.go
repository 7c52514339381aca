package origin_test

import (
	"bytes"
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fsoh/internal/config"
	"github.com/san-kum/fsoh/internal/field"
	"github.com/san-kum/fsoh/internal/origin"
)

type recordingRenderer struct {
	calls int
	last  *origin.Result
	err   error
}

func (r *recordingRenderer) Render(res *origin.Result) error {
	r.calls++
	r.last = res
	return r.err
}

func smallConfig() config.Config {
	return config.Config{
		Size:            32,
		FieldIterations: 3,
		Threshold:       0.6,
		Sparsity:        0.2,
		Seed:            42,
	}
}

func run(cfg config.Config) *origin.Result {
	res, err := origin.New(cfg).Run()
	Expect(err).NotTo(HaveOccurred())
	return res
}

var _ = Describe("Model", func() {
	Describe("Run", func() {
		It("produces grids of the configured shape", func() {
			for _, size := range []int{1, 2, 7, 32} {
				cfg := smallConfig()
				cfg.Size = size
				res := run(cfg)
				Expect(res.Field.Size()).To(Equal(size))
				Expect(res.Eligible.Size()).To(Equal(size))
				Expect(res.Origins.Size()).To(Equal(size))
				Expect(res.Origins.Cells()).To(HaveLen(size * size))
			}
		})

		It("uses the seeded field stream", func() {
			cfg := smallConfig()
			want, err := field.Generate(cfg.Size, cfg.FieldIterations, field.NewSource(cfg.Seed))
			Expect(err).NotTo(HaveOccurred())

			res := run(cfg)
			Expect(res.Field.Values()).To(Equal(want.Values()))
		})

		It("is reproducible for a fixed seed", func() {
			a := run(smallConfig())
			b := run(smallConfig())
			Expect(a.Field.Values()).To(Equal(b.Field.Values()))
			Expect(a.Eligible.Cells()).To(Equal(b.Eligible.Cells()))
			Expect(a.Origins.Cells()).To(Equal(b.Origins.Cells()))
		})

		It("marks cells strictly above the threshold", func() {
			res := run(smallConfig())
			n := res.Field.Size()
			for row := 0; row < n; row++ {
				for col := 0; col < n; col++ {
					Expect(res.Eligible.At(row, col)).To(Equal(res.Field.At(row, col) > 0.6))
				}
			}
		})

		It("only places origins on eligible cells", func() {
			cfg := smallConfig()
			cfg.Threshold = 0.3
			cfg.Sparsity = 0.9
			res := run(cfg)
			Expect(res.Origins.Count()).To(BeNumerically(">", 0))
			Expect(res.Origins.SubsetOf(res.Eligible)).To(BeTrue())
		})

		It("never grows the eligible region as the threshold rises", func() {
			prev := -1
			for _, t := range []float64{-1, 0, 0.2, 0.5, 0.65, 0.8, 1, 2} {
				cfg := smallConfig()
				cfg.Threshold = t
				count := run(cfg).Eligible.Count()
				if prev >= 0 {
					Expect(count).To(BeNumerically("<=", prev))
				}
				prev = count
			}
		})

		It("never shrinks the origin set as sparsity rises", func() {
			var prev *origin.Result
			for _, p := range []float64{0, 0.01, 0.1, 0.3, 0.7, 1} {
				cfg := smallConfig()
				cfg.Sparsity = p
				res := run(cfg)
				if prev != nil {
					Expect(res.Origins.Count()).To(BeNumerically(">=", prev.Origins.Count()))
					Expect(prev.Origins.SubsetOf(res.Origins)).To(BeTrue())
				}
				prev = res
			}
		})

		It("places no origins when sparsity is zero", func() {
			cfg := smallConfig()
			cfg.Sparsity = 0
			cfg.Threshold = -1
			Expect(run(cfg).Origins.Count()).To(BeZero())
		})

		It("marks every cell eligible below the normalized range", func() {
			cfg := smallConfig()
			cfg.Threshold = -1
			res := run(cfg)
			Expect(res.Eligible.Count()).To(Equal(cfg.Size * cfg.Size))
		})

		It("marks nothing eligible at or above one", func() {
			cfg := smallConfig()
			cfg.Threshold = 1
			Expect(run(cfg).Eligible.Count()).To(BeZero())
		})

		It("selects every eligible cell when sparsity is one", func() {
			cfg := smallConfig()
			cfg.Sparsity = 1
			res := run(cfg)
			Expect(res.Origins.Cells()).To(Equal(res.Eligible.Cells()))
		})

		It("rejects invalid configs", func() {
			cfg := smallConfig()
			cfg.Size = 0
			_, err := origin.New(cfg).Run()
			Expect(err).To(MatchError(config.ErrInvalidSize))

			cfg = smallConfig()
			cfg.FieldIterations = -2
			_, err = origin.New(cfg).Run()
			Expect(err).To(MatchError(config.ErrInvalidIterations))
		})

		It("runs in nondeterministic mode", func() {
			cfg := smallConfig()
			cfg.Nondeterministic = true
			res := run(cfg)
			Expect(res.Field.Size()).To(Equal(cfg.Size))
			Expect(res.Origins.SubsetOf(res.Eligible)).To(BeTrue())
		})

		It("logs the run stats", func() {
			var buf bytes.Buffer
			m := origin.New(smallConfig()).WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))
			_, err := m.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring("run complete"))
			Expect(buf.String()).To(ContainSubstring("stats.eligible="))
		})
	})

	Describe("state", func() {
		It("starts unrun", func() {
			m := origin.NewDefault()
			_, ok := m.Latest()
			Expect(ok).To(BeFalse())
			Expect(m.Config()).To(Equal(config.DefaultConfig()))
		})

		It("replaces the latest result on re-run", func() {
			m := origin.New(smallConfig())
			first, err := m.Run()
			Expect(err).NotTo(HaveOccurred())
			second, err := m.Run()
			Expect(err).NotTo(HaveOccurred())

			latest, ok := m.Latest()
			Expect(ok).To(BeTrue())
			Expect(latest).To(BeIdenticalTo(second))
			Expect(latest).NotTo(BeIdenticalTo(first))
		})
	})

	Describe("Display", func() {
		It("fails on a never-run model", func() {
			r := &recordingRenderer{}
			err := origin.New(smallConfig()).Plot(r)
			Expect(err).To(MatchError(origin.ErrNotRun))
			Expect(r.calls).To(BeZero())
		})

		It("fails without a result", func() {
			Expect(origin.Display(nil, &recordingRenderer{})).To(MatchError(origin.ErrNotRun))
		})

		It("hands the latest result to the renderer", func() {
			m := origin.New(smallConfig())
			res, err := m.Run()
			Expect(err).NotTo(HaveOccurred())

			r := &recordingRenderer{}
			Expect(m.Plot(r)).To(Succeed())
			Expect(r.calls).To(Equal(1))
			Expect(r.last).To(BeIdenticalTo(res))
		})

		It("wraps renderer failures", func() {
			boom := errors.New("boom")
			res := run(smallConfig())
			err := origin.Display(res, &recordingRenderer{err: boom})
			Expect(err).To(MatchError(boom))
		})

		It("rejects a nil renderer", func() {
			Expect(origin.Display(run(smallConfig()), nil)).To(HaveOccurred())
		})
	})
})

var _ = Describe("Result", func() {
	It("lists origins in row-major order", func() {
		cfg := smallConfig()
		cfg.Sparsity = 0.5
		cfg.Threshold = -1
		res := run(cfg)

		pts := res.OriginPoints()
		Expect(pts).To(HaveLen(res.Origins.Count()))
		for i, p := range pts {
			Expect(res.Origins.At(p.Row, p.Col)).To(BeTrue())
			if i > 0 {
				prev := pts[i-1]
				Expect(prev.Row*cfg.Size + prev.Col).To(BeNumerically("<", p.Row*cfg.Size+p.Col))
			}
		}
	})

	It("summarizes counts", func() {
		res := run(smallConfig())
		s := res.Stats()
		Expect(s.Cells).To(Equal(32 * 32))
		Expect(s.EligibleCount).To(Equal(res.Eligible.Count()))
		Expect(s.OriginCount).To(Equal(res.Origins.Count()))
		Expect(s.EligibleFraction).To(BeNumerically("~", float64(s.EligibleCount)/float64(s.Cells), 1e-12))
		Expect(s.FieldMean).To(BeNumerically(">", 0))
		Expect(s.FieldMean).To(BeNumerically("<", 1))
	})
})
