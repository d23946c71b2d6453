// Package main is the entry point for the cuboid polygonizer.
//
// Usage:
//
//	cuboid [flags] <scene.lisp | volume.json>
//	cuboid [flags] -save-config
//
// Scene scripts are evaluated into solids and voxelised; JSON volumes are
// polygonized directly in grid index space. The result is written as STL.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/chazu/cuboid/internal/config"
	"github.com/chazu/cuboid/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("saving config failed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("saved config", zap.String("path", path))
		return
	}

	input := config.InputPath()
	if input == "" {
		fmt.Fprintln(os.Stderr, "usage: cuboid [flags] <scene.lisp | volume.json> | -save-config")
		os.Exit(2)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	sum, err := run(cfg, input, logger.Log)
	if err != nil {
		logger.Error("polygonize failed", zap.String("input", input), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("wrote mesh",
		zap.String("output", sum.Output),
		zap.Int("parts", sum.Parts),
		zap.Int("triangles", sum.Triangles),
		zap.Duration("elapsed", sum.Elapsed),
	)
}
