// Package xform maps between grid-index space and world space.
package xform

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deadsy/sdfx/vec/v3i"
)

// Transform maps world positions into grid-index space (Apply) and back
// (Inverse). The corners bound the grid in world space.
type Transform interface {
	Apply(world v3.Vec) v3.Vec
	Inverse(index v3.Vec) v3.Vec
	LowerLeftFront() v3.Vec
	UpperRightTop() v3.Vec
}

// Compile-time interface check.
var _ Transform = (*XForm)(nil)

// XForm is an affine Transform stored as a pair of sdfx matrices.
type XForm struct {
	toGrid  sdf.M44
	toWorld sdf.M44
	llf     v3.Vec
	urt     v3.Vec
}

// New returns the transform that maps bbox onto a grid with the given
// dimensions: bbox.Min lands on index (0,0,0) and bbox.Max on dims-1.
// Axes with a single sample or zero extent use unit scale.
func New(bbox sdf.Box3, dims v3i.Vec) *XForm {
	size := bbox.Max.Sub(bbox.Min)
	scale := v3.Vec{
		X: axisScale(size.X, dims.X),
		Y: axisScale(size.Y, dims.Y),
		Z: axisScale(size.Z, dims.Z),
	}
	toGrid := sdf.Scale3d(scale).Mul(sdf.Translate3d(bbox.Min.MulScalar(-1)))
	return &XForm{
		toGrid:  toGrid,
		toWorld: toGrid.Inverse(),
		llf:     bbox.Min,
		urt:     bbox.Max,
	}
}

// Identity returns the transform for a grid whose index space is world
// space.
func Identity(dims v3i.Vec) *XForm {
	hi := v3.Vec{X: float64(dims.X - 1), Y: float64(dims.Y - 1), Z: float64(dims.Z - 1)}
	return &XForm{
		toGrid:  sdf.Identity3d(),
		toWorld: sdf.Identity3d(),
		urt:     hi,
	}
}

func axisScale(size float64, n int) float64 {
	if n < 2 || size <= 0 {
		return 1
	}
	return float64(n-1) / size
}

// Apply maps a world position into grid-index space.
func (x *XForm) Apply(world v3.Vec) v3.Vec {
	return x.toGrid.MulPosition(world)
}

// Inverse maps a grid-index position into world space.
func (x *XForm) Inverse(index v3.Vec) v3.Vec {
	return x.toWorld.MulPosition(index)
}

// LowerLeftFront returns the minimum world corner of the grid.
func (x *XForm) LowerLeftFront() v3.Vec {
	return x.llf
}

// UpperRightTop returns the maximum world corner of the grid.
func (x *XForm) UpperRightTop() v3.Vec {
	return x.urt
}

// VoxelSize returns the world-space extent of one grid cell along each axis.
func (x *XForm) VoxelSize() v3.Vec {
	o := x.Inverse(v3.Vec{})
	return x.Inverse(v3.Vec{X: 1, Y: 1, Z: 1}).Sub(o)
}
