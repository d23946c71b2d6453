// Package tessellate turns the parts of a scene into triangle meshes using
// a geometry kernel. One mesh is produced per part.
package tessellate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/cuboid/pkg/engine"
	"github.com/chazu/cuboid/pkg/kernel"
	"github.com/chazu/cuboid/pkg/polygonize"
	"github.com/chazu/cuboid/pkg/volume"
	"github.com/chazu/cuboid/pkg/xform"
)

// Mesher selects how a solid is turned into triangles.
type Mesher string

const (
	// MesherCuboid voxelises the solid and runs the cuboid polygonizer.
	MesherCuboid Mesher = "cuboid"
	// MesherMarching uses the kernel's own marching cubes mesher.
	MesherMarching Mesher = "marching"
)

// Options controls tessellation.
type Options struct {
	// Cells is the number of samples along the longest bounding box axis.
	Cells int `yaml:"cells"`
	// Padding is the number of extra samples on every side of the solid.
	Padding int `yaml:"padding"`
	Mesher  Mesher `yaml:"mesher"`

	Polygonize polygonize.Options `yaml:"polygonize"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Cells:   64,
		Padding: 2,
		Mesher:  MesherCuboid,
	}
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	if o.Cells < 2 {
		return fmt.Errorf("cells must be at least 2, got %d", o.Cells)
	}
	if o.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", o.Padding)
	}
	switch o.Mesher {
	case "", MesherCuboid, MesherMarching:
		return nil
	}
	return fmt.Errorf("unknown mesher %q, expected %q or %q", o.Mesher, MesherCuboid, MesherMarching)
}

func (o Options) logger() *zap.Logger {
	if o.Polygonize.Logger == nil {
		return zap.NewNop()
	}
	return o.Polygonize.Logger
}

// Tessellate produces one triangle mesh per scene part using the provided
// geometry kernel. The tessellator is read-only and never mutates the scene.
func Tessellate(sc *engine.Scene, k kernel.Kernel, opts Options) ([]*kernel.Mesh, error) {
	if sc == nil {
		return nil, nil
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}

	var meshes []*kernel.Mesh
	for _, p := range sc.Parts {
		m, err := TessellateSolid(p.Solid, k, opts)
		if err != nil {
			return nil, fmt.Errorf("tessellate: part %q: %w", p.Name, err)
		}
		m.Name = p.Name
		opts.logger().Debug("tessellated part",
			zap.String("part", p.Name),
			zap.String("mesher", string(opts.Mesher)),
			zap.Int("triangles", m.TriangleCount()),
		)
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// TessellateSolid meshes a single solid with the configured mesher.
func TessellateSolid(s kernel.Solid, k kernel.Kernel, opts Options) (*kernel.Mesh, error) {
	switch opts.Mesher {
	case "", MesherCuboid:
		g, xf, err := k.Voxelize(s, opts.Cells, opts.Padding)
		if err != nil {
			return nil, fmt.Errorf("voxelize: %w", err)
		}
		// Kernel fields are signed distances, negative inside.
		popts := opts.Polygonize
		popts.HighIsInside = false
		return FromGrid(g, xf, Options{Polygonize: popts})

	case MesherMarching:
		m, err := k.ToMesh(s, opts.Cells)
		if err != nil {
			return nil, fmt.Errorf("ToMesh failed: %w", err)
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown mesher %q", opts.Mesher)
}

// FromGrid runs the cuboid polygonizer on a sampled grid and flattens the
// result into a render mesh.
func FromGrid(g *volume.Grid, xf xform.Transform, opts Options) (*kernel.Mesh, error) {
	pm, err := polygonize.PolygonizeVolume(xf, g, opts.Polygonize)
	if err != nil {
		return nil, err
	}
	return kernel.FromPolygonMesh(pm), nil
}
