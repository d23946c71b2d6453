package volume

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deadsy/sdfx/vec/v3i"
)

// cubeCorners are the unit cube corner offsets in the order shared by the
// value and gradient weight tables.
var cubeCorners = [8]v3i.Vec{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 1, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: 1},
}

// cell is the clamped base cell and fractional offsets of a real position.
type cell struct {
	base               v3i.Vec
	alpha, beta, gamma float64
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// clampFloat clamps v into [lo, hi]. NaN maps to lo.
func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// locate clamps p into the grid. p is first clamped to [0, dims-1]; the base
// index is the integer part of that clamped position, limited to
// [0, dims-2] so the eight corners of the base cell are always readable.
func (g *Grid) locate(p v3.Vec) cell {
	d := g.dims
	c := v3.Vec{
		X: clampFloat(p.X, 0, float64(d.X-1)),
		Y: clampFloat(p.Y, 0, float64(d.Y-1)),
		Z: clampFloat(p.Z, 0, float64(d.Z-1)),
	}
	base := v3i.Vec{
		X: clampInt(int(c.X), 0, max(d.X-2, 0)),
		Y: clampInt(int(c.Y), 0, max(d.Y-2, 0)),
		Z: clampInt(int(c.Z), 0, max(d.Z-2, 0)),
	}
	return cell{
		base:  base,
		alpha: c.X - float64(base.X),
		beta:  c.Y - float64(base.Y),
		gamma: c.Z - float64(base.Z),
	}
}

// corners reads the eight samples of the cell. An axis with a single sample
// reuses that sample for both corners. ok is false if any corner is
// undefined.
func (g *Grid) corners(c cell) (s [8]float64, ok bool) {
	hi := v3i.Vec{X: g.dims.X - 1, Y: g.dims.Y - 1, Z: g.dims.Z - 1}
	for i, off := range cubeCorners {
		p := v3i.Vec{
			X: min(c.base.X+off.X, hi.X),
			Y: min(c.base.Y+off.Y, hi.Y),
			Z: min(c.base.Z+off.Z, hi.Z),
		}
		v, defined := g.At(p)
		if !defined {
			return s, false
		}
		s[i] = v
	}
	return s, true
}

// SampleValue evaluates the grid at p by trilinear interpolation. Positions
// outside the grid are clamped to its boundary rather than rejected. The
// result is NaN if any sample of the surrounding cell is undefined or the
// grid is empty.
func SampleValue(g *Grid, p v3.Vec) float64 {
	if g.Empty() {
		return math.NaN()
	}
	c := g.locate(p)
	s, ok := g.corners(c)
	if !ok {
		return math.NaN()
	}
	a, b, gm := c.alpha, c.beta, c.gamma
	ma, mb, mg := 1-a, 1-b, 1-gm
	w := [8]float64{
		ma * mb * mg,
		a * mb * mg,
		ma * b * mg,
		a * b * mg,
		ma * mb * gm,
		a * mb * gm,
		ma * b * gm,
		a * b * gm,
	}
	var f float64
	for i := range w {
		f += w[i] * s[i]
	}
	return f
}

// SampleGradient returns the analytic gradient of the trilinear blend at p,
// with the same clamping as SampleValue. The gradient is discontinuous
// across cell faces. Components are NaN under the same conditions as
// SampleValue.
func SampleGradient(g *Grid, p v3.Vec) v3.Vec {
	nan := math.NaN()
	if g.Empty() {
		return v3.Vec{X: nan, Y: nan, Z: nan}
	}
	c := g.locate(p)
	s, ok := g.corners(c)
	if !ok {
		return v3.Vec{X: nan, Y: nan, Z: nan}
	}
	a, b, gm := c.alpha, c.beta, c.gamma
	ma, mb, mg := 1-a, 1-b, 1-gm
	dx := [8]float64{
		-mb * mg,
		mb * mg,
		-b * mg,
		b * mg,
		-mb * gm,
		mb * gm,
		-b * gm,
		b * gm,
	}
	dy := [8]float64{
		-ma * mg,
		-a * mg,
		ma * mg,
		a * mg,
		-ma * gm,
		-a * gm,
		ma * gm,
		a * gm,
	}
	dz := [8]float64{
		-ma * mb,
		-a * mb,
		-ma * b,
		-a * b,
		ma * mb,
		a * mb,
		ma * b,
		a * b,
	}
	var grad v3.Vec
	for i := range s {
		grad.X += dx[i] * s[i]
		grad.Y += dy[i] * s[i]
		grad.Z += dz[i] * s[i]
	}
	return grad
}
