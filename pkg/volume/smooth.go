package volume

import "github.com/deadsy/sdfx/vec/v3i"

// n6 are the six axis-aligned neighbour offsets.
var n6 = [6]v3i.Vec{
	{X: -1}, {X: 1},
	{Y: -1}, {Y: 1},
	{Z: -1}, {Z: 1},
}

// Smooth returns a copy of g filtered by steps passes of a 7-point box
// average. Each defined sample is replaced by the mean of itself and its
// defined in-domain neighbours; undefined samples stay undefined. g is not
// modified.
func Smooth(g *Grid, steps int) *Grid {
	src := g.Clone()
	if steps <= 0 || g.Empty() {
		return src
	}
	dst := g.Clone()
	for step := 0; step < steps; step++ {
		src.Each(func(p v3i.Vec) {
			v, ok := src.At(p)
			if !ok {
				return
			}
			sum, n := v, 1.0
			for _, d := range n6 {
				if nv, ok := src.At(Offset(p, d)); ok {
					sum += nv
					n++
				}
			}
			dst.Set(p, sum/n)
		})
		src, dst = dst, src
	}
	return src
}
