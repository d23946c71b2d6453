// Package config handles polygonizer configuration loading and management.
package config

import (
	"fmt"

	"github.com/chazu/cuboid/internal/logger"
	"github.com/chazu/cuboid/pkg/polygonize"
	"github.com/chazu/cuboid/pkg/tessellate"
)

// Config holds all cuboid settings.
type Config struct {
	Polygonize polygonize.Options `yaml:"polygonize"`
	Sampling   SamplingConfig     `yaml:"sampling"`
	Mesher     tessellate.Mesher  `yaml:"mesher"`
	Output     OutputConfig       `yaml:"output"`
	Logging    LoggingConfig      `yaml:"logging"`
}

// SamplingConfig controls how solids are voxelised.
type SamplingConfig struct {
	Cells   int `yaml:"cells"`   // samples along the longest axis
	Padding int `yaml:"padding"` // extra samples on every side
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Path string `yaml:"path"` // STL file to write
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := tessellate.DefaultOptions()
	return &Config{
		Polygonize: polygonize.Options{
			Tau:          0,
			HighIsInside: true,
		},
		Sampling: SamplingConfig{
			Cells:   opts.Cells,
			Padding: opts.Padding,
		},
		Mesher: opts.Mesher,
		Output: OutputConfig{
			Path: "out.stl",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Tessellate returns the tessellation options described by the config.
func (c *Config) Tessellate() tessellate.Options {
	return tessellate.Options{
		Cells:      c.Sampling.Cells,
		Padding:    c.Sampling.Padding,
		Mesher:     c.Mesher,
		Polygonize: c.Polygonize,
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if err := c.Tessellate().Validate(); err != nil {
		return err
	}
	if c.Polygonize.PreSmoothSteps < 0 {
		return fmt.Errorf("pre_smooth_steps must not be negative, got %d", c.Polygonize.PreSmoothSteps)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output path is empty")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
