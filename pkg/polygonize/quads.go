// Package polygonize extracts a cuboid boundary surface from a scalar grid
// and relaxes it toward the isosurface.
package polygonize

import (
	"runtime"
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deadsy/sdfx/vec/v3i"

	"github.com/chazu/cuboid/pkg/volume"
)

// neighbours are the six face-adjacent offsets, indexed like faceCorners.
var neighbours = [6]v3i.Vec{
	{X: -1}, {X: 1},
	{Y: -1}, {Y: 1},
	{Z: -1}, {Z: 1},
}

// faceCorners holds, for each neighbour direction, the four corners of the
// unit cube face on that side of a cell centred at the origin, ordered
// counter-clockwise as seen from outside the cell.
var faceCorners = [6][4]v3.Vec{
	{{X: -0.5, Y: -0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: -0.5, Z: -0.5}},
	{{X: 0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5}},
	{{X: 0.5, Y: -0.5, Z: 0.5}, {X: -0.5, Y: -0.5, Z: 0.5}, {X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5}},
	{{X: -0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5}},
	{{X: -0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: -0.5, Z: -0.5}},
	{{X: 0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5}},
}

// classifier decides which samples belong to the inside region.
type classifier struct {
	g            *volume.Grid
	tau          float64
	highIsInside bool
}

func (c classifier) inside(p v3i.Vec) bool {
	v, ok := c.g.At(p)
	return ok && c.highIsInside == (v > c.tau)
}

// outside is the complement of inside: off-grid and undefined samples are
// always outside.
func (c classifier) outside(p v3i.Vec) bool {
	return !c.inside(p)
}

// ExtractBoundaryQuads returns a quad soup in grid-index space: four
// vertices for every face of every inside cell whose neighbour across that
// face is outside. A sample is inside when it is defined and
// highIsInside == (value > tau). Coincident corners of adjacent quads are
// repeated, not shared. The order matches a scan of cells with x fastest,
// then y, then z, visiting neighbours in -x, +x, -y, +y, -z, +z order.
func ExtractBoundaryQuads(g *volume.Grid, tau float64, highIsInside bool) []v3.Vec {
	if g.Empty() {
		return nil
	}
	c := classifier{g: g, tau: tau, highIsInside: highIsInside}
	dims := g.Dims()

	workers := min(runtime.GOMAXPROCS(0), dims.Z)
	slabs := make([][]v3.Vec, dims.Z)
	var wg sync.WaitGroup
	next := make(chan int, dims.Z)
	for z := 0; z < dims.Z; z++ {
		next <- z
	}
	close(next)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for z := range next {
				slabs[z] = c.extractSlab(z)
			}
		}()
	}
	wg.Wait()

	n := 0
	for _, s := range slabs {
		n += len(s)
	}
	quads := make([]v3.Vec, 0, n)
	for _, s := range slabs {
		quads = append(quads, s...)
	}
	return quads
}

// extractSlab emits the quads of every inside cell in the plane z.
func (c classifier) extractSlab(z int) []v3.Vec {
	dims := c.g.Dims()
	var quads []v3.Vec
	for y := 0; y < dims.Y; y++ {
		for x := 0; x < dims.X; x++ {
			pi := v3i.Vec{X: x, Y: y, Z: z}
			if !c.inside(pi) {
				continue
			}
			p := volume.ToV3(pi)
			for i, d := range neighbours {
				if !c.outside(volume.Offset(pi, d)) {
					continue
				}
				for _, corner := range faceCorners[i] {
					quads = append(quads, p.Add(corner))
				}
			}
		}
	}
	return quads
}
