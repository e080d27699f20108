package model

import "time"

// Config holds engine, plot and output settings
type Config struct {
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Plot   PlotConfig   `yaml:"plot" mapstructure:"plot"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// EngineConfig controls how operations are evaluated
type EngineConfig struct {
	Workers      int           `yaml:"workers" mapstructure:"workers"`             // Concurrent combinations per wave
	CacheEnabled bool          `yaml:"cache_enabled" mapstructure:"cache_enabled"` // Memoise combination results
	CacheTTL     time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	CacheCleanup time.Duration `yaml:"cache_cleanup" mapstructure:"cache_cleanup"`
}

// PlotConfig controls the rendered image
type PlotConfig struct {
	WidthInches  float64 `yaml:"width_inches" mapstructure:"width_inches"`
	HeightInches float64 `yaml:"height_inches" mapstructure:"height_inches"`
	Format       string  `yaml:"format" mapstructure:"format"` // png or svg
}

// OutputConfig controls console output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Workers:      4,
			CacheEnabled: true,
			CacheTTL:     10 * time.Minute,
			CacheCleanup: time.Minute,
		},
		Plot: PlotConfig{
			WidthInches:  8,
			HeightInches: 5,
			Format:       "png",
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
