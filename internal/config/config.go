package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSize            = 512
	DefaultFieldIterations = 5
	DefaultThreshold       = 0.65
	DefaultSparsity        = 1e-4
	DefaultSeed            = 42
)

var (
	ErrInvalidSize       = errors.New("config: size must be positive")
	ErrInvalidIterations = errors.New("config: field_iterations must be non-negative")
)

// Config is the flat parameter set of a single model run. Threshold and
// sparsity are not range-checked; values outside [0,1] give all-true or
// all-false masks.
type Config struct {
	Size            int     `yaml:"size"`
	FieldIterations int     `yaml:"field_iterations"`
	Threshold       float64 `yaml:"threshold"`
	Sparsity        float64 `yaml:"sparsity"`
	Seed            int64   `yaml:"seed"`

	// Nondeterministic ignores Seed and draws both random streams from
	// OS entropy. Runs are not reproducible in this mode.
	Nondeterministic bool `yaml:"nondeterministic"`
}

func DefaultConfig() Config {
	return Config{
		Size:            DefaultSize,
		FieldIterations: DefaultFieldIterations,
		Threshold:       DefaultThreshold,
		Sparsity:        DefaultSparsity,
		Seed:            DefaultSeed,
	}
}

func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidSize, c.Size)
	}
	if c.FieldIterations < 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidIterations, c.FieldIterations)
	}
	return nil
}

// OriginSeed is the seed of the origin sampling stream, kept distinct from
// the field stream so habitat structure and placement stay uncorrelated.
func (c Config) OriginSeed() int64 {
	return c.Seed + 1
}

// Load reads a yaml file on top of DefaultConfig, so omitted keys keep
// their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
