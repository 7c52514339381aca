package config

import "sort"

var Presets = map[string]Config{
	"default": DefaultConfig(),
	"fine": {
		Size: 256, FieldIterations: 2, Threshold: 0.6, Sparsity: 1e-3, Seed: DefaultSeed,
	},
	"coarse": {
		Size: 128, FieldIterations: 20, Threshold: 0.7, Sparsity: 5e-3, Seed: DefaultSeed,
	},
	"dense": {
		Size: 128, FieldIterations: 5, Threshold: 0.5, Sparsity: 0.05, Seed: DefaultSeed,
	},
	"smooth": {
		Size: 512, FieldIterations: 40, Threshold: 0.65, Sparsity: 1e-4, Seed: DefaultSeed,
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (Config, bool) {
	cfg, ok := Presets[name]
	return cfg, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
