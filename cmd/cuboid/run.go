package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"go.uber.org/zap"

	"github.com/chazu/cuboid/internal/config"
	"github.com/chazu/cuboid/pkg/engine"
	"github.com/chazu/cuboid/pkg/kernel"
	"github.com/chazu/cuboid/pkg/kernel/sdfx"
	"github.com/chazu/cuboid/pkg/tessellate"
	"github.com/chazu/cuboid/pkg/volume"
	"github.com/chazu/cuboid/pkg/xform"
)

// summary describes one completed run.
type summary struct {
	Output    string
	Parts     int
	Triangles int
	Elapsed   time.Duration
}

// run meshes input according to cfg and writes the STL file.
func run(cfg *config.Config, input string, log *zap.Logger) (summary, error) {
	start := time.Now()
	opts := cfg.Tessellate()
	opts.Polygonize.Logger = log.Named("polygonize")

	var (
		meshes []*kernel.Mesh
		err    error
	)
	if strings.EqualFold(filepath.Ext(input), ".json") {
		meshes, err = meshVolume(input, opts)
	} else {
		meshes, err = meshScript(input, opts, log)
	}
	if err != nil {
		return summary{}, err
	}

	var tris []*sdf.Triangle3
	for _, m := range meshes {
		log.Debug("part", zap.String("name", m.Name), zap.Int("triangles", m.TriangleCount()))
		tris = append(tris, m.Triangles()...)
	}
	if len(tris) == 0 {
		log.Warn("mesh is empty", zap.String("input", input))
	}
	if err := render.SaveSTL(cfg.Output.Path, tris); err != nil {
		return summary{}, fmt.Errorf("writing %s: %w", cfg.Output.Path, err)
	}

	return summary{
		Output:    cfg.Output.Path,
		Parts:     len(meshes),
		Triangles: len(tris),
		Elapsed:   time.Since(start),
	}, nil
}

// meshVolume polygonizes a JSON volume in grid index space.
func meshVolume(path string, opts tessellate.Options) ([]*kernel.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := volume.ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := tessellate.FromGrid(g, xform.Identity(g.Dims()), opts)
	if err != nil {
		return nil, err
	}
	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []*kernel.Mesh{m}, nil
}

// meshScript evaluates a scene script and tessellates its parts.
func meshScript(path string, opts tessellate.Options, log *zap.Logger) ([]*kernel.Mesh, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	k := sdfx.New()
	sc, evalErrs, err := engine.NewEngine(k).Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Error("script error", zap.String("file", path), zap.Int("line", e.Line), zap.String("msg", e.Message))
		}
		return nil, fmt.Errorf("evaluating %s: %w", path, evalErrs[0])
	}
	if sc.PartCount() == 0 {
		return nil, fmt.Errorf("%s defines no solids", path)
	}
	return tessellate.Tessellate(sc, k, opts)
}
