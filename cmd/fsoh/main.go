package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fsoh/internal/config"
	"github.com/san-kum/fsoh/internal/origin"
	"github.com/san-kum/fsoh/internal/report"
	"github.com/san-kum/fsoh/internal/sweep"
	"github.com/san-kum/fsoh/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	verbose    bool
	// Model parameters; flags override preset and config file
	size             int
	iterations       int
	threshold        float64
	sparsity         float64
	seed             int64
	nondeterministic bool
	// Display
	width     int
	histogram bool
	// Sweep
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	sweepCSV   bool
	target     int
	// Origins
	summary bool
)

// main registers the fsoh commands and runs the root command. With no
// subcommand it runs the model once and displays it in the terminal.
func main() {
	rootCmd := &cobra.Command{
		Use:          "fsoh",
		Short:        "fractal habitat field with sparse origin sampling",
		SilenceUsage: true,
		RunE:         runDemo,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&size, "size", config.DefaultSize, "grid side length")
	pf.IntVar(&iterations, "iterations", config.DefaultFieldIterations, "smoothing passes")
	pf.Float64Var(&threshold, "threshold", config.DefaultThreshold, "eligibility threshold")
	pf.Float64Var(&sparsity, "sparsity", config.DefaultSparsity, "per-cell origin probability")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	pf.BoolVar(&nondeterministic, "nondeterministic", false, "ignore seed and draw from entropy (not reproducible)")

	rootCmd.Flags().IntVar(&width, "width", viz.DefaultWidth, "panel width in cells")
	rootCmd.Flags().BoolVar(&histogram, "histogram", true, "show field value histogram")

	originsCmd := &cobra.Command{
		Use:   "origins",
		Short: "write origin coordinates as CSV to stdout",
		Args:  cobra.NoArgs,
		RunE:  writeOrigins,
	}
	originsCmd.Flags().BoolVar(&summary, "summary", false, "write the run summary row instead")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "count eligible cells or origins over a parameter range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "threshold", "parameter to sweep (threshold|sparsity)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 21, "number of values")
	sweepCmd.Flags().BoolVar(&sweepCSV, "csv", false, "write CSV instead of a plot")
	sweepCmd.Flags().IntVar(&target, "target", 0, "report the value whose count is closest to this")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Printf("  %-8s size=%d iterations=%d threshold=%g sparsity=%g\n",
					name, p.Size, p.FieldIterations, p.Threshold, p.Sparsity)
			}
			return nil
		},
	}

	showConfigCmd := &cobra.Command{
		Use:   "show-config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}

	rootCmd.AddCommand(originsCmd, sweepCmd, presetsCmd, showConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveConfig layers defaults, then the preset, then the config file,
// then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return config.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("iterations") {
		cfg.FieldIterations = iterations
	}
	if flags.Changed("threshold") {
		cfg.Threshold = threshold
	}
	if flags.Changed("sparsity") {
		cfg.Sparsity = sparsity
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("nondeterministic") {
		cfg.Nondeterministic = nondeterministic
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runModel(cmd *cobra.Command) (*origin.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger()
	if cfg.Nondeterministic {
		logger.Warn("nondeterministic mode: results are not reproducible")
	}
	logger.Debug("running model", "size", cfg.Size, "iterations", cfg.FieldIterations, "seed", cfg.Seed)
	return origin.New(cfg).WithLogger(logger).Run()
}

func runDemo(cmd *cobra.Command, args []string) error {
	res, err := runModel(cmd)
	if err != nil {
		return err
	}

	term := viz.NewTerminal(os.Stdout)
	term.Width = width
	term.Histogram = histogram
	return origin.Display(res, term)
}

func writeOrigins(cmd *cobra.Command, args []string) error {
	res, err := runModel(cmd)
	if err != nil {
		return err
	}
	if summary {
		return report.WriteSummary(os.Stdout, res)
	}
	return report.WriteOrigins(os.Stdout, res)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepSteps < 2 {
		return fmt.Errorf("steps must be at least 2, got %d", sweepSteps)
	}

	res, err := runModel(cmd)
	if err != nil {
		return err
	}

	values := sweep.Range(sweepFrom, sweepTo, sweepSteps)
	var pts []sweep.Point
	var caption string
	switch strings.ToLower(sweepParam) {
	case "threshold":
		pts = sweep.Thresholds(res, values)
		caption = fmt.Sprintf("eligible cells vs threshold [%g, %g]", sweepFrom, sweepTo)
	case "sparsity":
		pts = sweep.Sparsities(res, values)
		caption = fmt.Sprintf("origins vs sparsity [%g, %g] (threshold %g)", sweepFrom, sweepTo, res.Config.Threshold)
	default:
		return fmt.Errorf("unknown sweep parameter: %s (threshold|sparsity)", sweepParam)
	}

	if sweepCSV {
		return report.WriteSweep(os.Stdout, strings.ToLower(sweepParam), pts)
	}

	graph := asciigraph.Plot(sweep.Counts(pts),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()

	if target > 0 {
		if best, ok := sweep.Best(pts, target); ok {
			fmt.Printf("%s closest to count %d: %g (%d)\n", sweepParam, target, best.Value, best.Count)
		}
	}
	return nil
}
