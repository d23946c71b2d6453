package config

import (
	"flag"
	"math"

	"github.com/chazu/cuboid/pkg/tessellate"
)

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagTau         = flag.Float64("tau", math.NaN(), "Isovalue separating inside from outside")
	flagLowInside   = flag.Bool("low-inside", false, "Treat samples at or below tau as inside")
	flagCells       = flag.Int("cells", 0, "Samples along the longest axis of a solid")
	flagPadding     = flag.Int("padding", -1, "Extra samples on every side of a solid")
	flagSmooth      = flag.Int("smooth", -1, "Box filter passes before extraction")
	flagTriangulate = flag.Bool("triangulate", false, "Split quads into triangles")
	flagMesher      = flag.String("mesher", "", "Mesher: cuboid or marching")
	flagOutput      = flag.String("o", "", "Output STL path")
	flagSaveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether -save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// InputPath returns the first positional argument: a scene script or a
// JSON volume.
func InputPath() string {
	return flag.Arg(0)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if !math.IsNaN(*flagTau) {
		cfg.Polygonize.Tau = *flagTau
	}
	if *flagLowInside {
		cfg.Polygonize.HighIsInside = false
	}
	if *flagCells > 0 {
		cfg.Sampling.Cells = *flagCells
	}
	if *flagPadding >= 0 {
		cfg.Sampling.Padding = *flagPadding
	}
	if *flagSmooth >= 0 {
		cfg.Polygonize.PreSmoothSteps = *flagSmooth
	}
	if *flagTriangulate {
		cfg.Polygonize.Triangulate = true
	}
	if *flagMesher != "" {
		cfg.Mesher = tessellate.Mesher(*flagMesher)
	}
	if *flagOutput != "" {
		cfg.Output.Path = *flagOutput
	}
}
