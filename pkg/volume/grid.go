// Package volume defines the dense scalar grid consumed by the polygonizer
// and the clamped trilinear field sampler that evaluates it at arbitrary
// real positions.
package volume

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deadsy/sdfx/vec/v3i"
)

// Grid is a dense 3D array of scalar samples indexed by integer positions in
// [0, dims) per axis. Samples are stored at full float64 precision so
// classification against a threshold sees exactly the value that was set.
// Every sample carries a validity flag; an undefined sample lies outside the
// known domain of the field.
type Grid struct {
	dims    v3i.Vec
	values  []float64
	defined []bool
}

// NewGrid returns a grid of the given dimensions with every sample defined
// and set to zero. Negative dimensions are treated as zero.
func NewGrid(dims v3i.Vec) *Grid {
	dims = v3i.Vec{X: max(dims.X, 0), Y: max(dims.Y, 0), Z: max(dims.Z, 0)}
	n := dims.X * dims.Y * dims.Z
	g := &Grid{
		dims:    dims,
		values:  make([]float64, n),
		defined: make([]bool, n),
	}
	for i := range g.defined {
		g.defined[i] = true
	}
	return g
}

// NewGridFunc returns a grid whose samples are f evaluated at every integer
// position. NaN results mark the sample undefined.
func NewGridFunc(dims v3i.Vec, f func(p v3i.Vec) float64) *Grid {
	g := NewGrid(dims)
	g.Each(func(p v3i.Vec) {
		g.Set(p, f(p))
	})
	return g
}

// Dims returns the number of samples along each axis.
func (g *Grid) Dims() v3i.Vec {
	return g.dims
}

// Len returns the total number of samples.
func (g *Grid) Len() int {
	return len(g.values)
}

// Empty reports whether any axis has no samples.
func (g *Grid) Empty() bool {
	return g.dims.X < 1 || g.dims.Y < 1 || g.dims.Z < 1
}

// InDomain reports whether p is a valid sample index.
func (g *Grid) InDomain(p v3i.Vec) bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0 &&
		p.X < g.dims.X && p.Y < g.dims.Y && p.Z < g.dims.Z
}

func (g *Grid) index(p v3i.Vec) int {
	return p.X + g.dims.X*(p.Y+g.dims.Y*p.Z)
}

// At returns the sample at p and whether it is defined. Positions outside
// the domain are reported as undefined.
func (g *Grid) At(p v3i.Vec) (float64, bool) {
	if !g.InDomain(p) {
		return 0, false
	}
	i := g.index(p)
	if !g.defined[i] {
		return 0, false
	}
	return g.values[i], true
}

// Set stores v at p. Storing NaN marks the sample undefined. Positions
// outside the domain are ignored.
func (g *Grid) Set(p v3i.Vec, v float64) {
	if !g.InDomain(p) {
		return
	}
	i := g.index(p)
	if math.IsNaN(v) {
		g.values[i] = 0
		g.defined[i] = false
		return
	}
	g.values[i] = v
	g.defined[i] = true
}

// Unset marks the sample at p undefined.
func (g *Grid) Unset(p v3i.Vec) {
	g.Set(p, math.NaN())
}

// Each calls f for every integer position in x-fastest order.
func (g *Grid) Each(f func(p v3i.Vec)) {
	for z := 0; z < g.dims.Z; z++ {
		for y := 0; y < g.dims.Y; y++ {
			for x := 0; x < g.dims.X; x++ {
				f(v3i.Vec{X: x, Y: y, Z: z})
			}
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		dims:    g.dims,
		values:  make([]float64, len(g.values)),
		defined: make([]bool, len(g.defined)),
	}
	copy(c.values, g.values)
	copy(c.defined, g.defined)
	return c
}

// Range returns the smallest and largest defined sample. ok is false when
// the grid holds no defined samples.
func (g *Grid) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i, v := range g.values {
		if !g.defined[i] {
			continue
		}
		lo = math.Min(lo, float64(v))
		hi = math.Max(hi, float64(v))
		ok = true
	}
	return lo, hi, ok
}

// ToV3 converts an integer grid position to a real one.
func ToV3(p v3i.Vec) v3.Vec {
	return v3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

// Trunc converts a real position to an integer one by truncating each
// component toward zero.
func Trunc(p v3.Vec) v3i.Vec {
	return v3i.Vec{X: int(p.X), Y: int(p.Y), Z: int(p.Z)}
}

// Offset returns p + d.
func Offset(p, d v3i.Vec) v3i.Vec {
	return v3i.Vec{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
}
