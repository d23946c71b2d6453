// Package kernel defines the abstract geometry kernel interface.
// Implementations model solids as implicit fields and turn them into
// voxel grids for the cuboid polygonizer. The kernel abstraction
// allows swapping backends without changing the rest of the system.
package kernel

import (
	"github.com/chazu/cuboid/pkg/volume"
	"github.com/chazu/cuboid/pkg/xform"
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) (Solid, error)
	Sphere(radius float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Voxelize samples the solid's signed distance on a grid with cells
	// samples along the longest bounding box axis, padded by padding
	// samples on every side. Samples are negative inside the solid.
	Voxelize(s Solid, cells, padding int) (*volume.Grid, *xform.XForm, error)

	// ToMesh triangulates the solid with the backend's own mesher.
	ToMesh(s Solid, cells int) (*Mesh, error)
}
