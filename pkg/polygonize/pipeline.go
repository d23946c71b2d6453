package polygonize

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deadsy/sdfx/vec/v3i"
	"go.uber.org/zap"

	"github.com/chazu/cuboid/pkg/mesh"
	"github.com/chazu/cuboid/pkg/volume"
	"github.com/chazu/cuboid/pkg/xform"
)

// WeldTolerance is the distance below which quad corners are welded, in
// grid-index units: a thousandth of half a cell's space diagonal.
var WeldTolerance = 0.001 * math.Sqrt(3) / 2

// Options controls PolygonizeVolume.
type Options struct {
	// Tau is the isovalue separating inside from outside.
	Tau float64 `yaml:"tau"`
	// HighIsInside selects samples above Tau as inside; otherwise samples
	// at or below Tau are inside.
	HighIsInside bool `yaml:"high_is_inside"`
	// Triangulate splits the quads into triangles before relaxation.
	Triangulate bool `yaml:"triangulate"`
	// PreSmoothSteps box-filters the grid this many times before
	// extraction.
	PreSmoothSteps int `yaml:"pre_smooth_steps"`

	Logger *zap.Logger `yaml:"-"`
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// PolygonizeVolume extracts the cuboid boundary of the inside region of g,
// welds it into a mesh, relaxes every lattice vertex toward the isosurface
// and maps the result into world space with xf.Inverse.
func PolygonizeVolume(xf xform.Transform, g *volume.Grid, opts Options) (*mesh.Mesh, error) {
	log := opts.logger()

	// The forward map is only used to report the grid extent.
	llf := xf.Apply(xf.LowerLeftFront())
	urt := xf.Apply(xf.UpperRightTop())
	log.Debug("polygonize volume",
		zap.Int("dimX", g.Dims().X),
		zap.Int("dimY", g.Dims().Y),
		zap.Int("dimZ", g.Dims().Z),
		zap.Float64("tau", opts.Tau),
		zap.Bool("highIsInside", opts.HighIsInside),
		zap.Float64("extent", urt.Sub(llf).Length()),
	)

	if opts.PreSmoothSteps > 0 {
		g = volume.Smooth(g, opts.PreSmoothSteps)
	}

	b := mesh.NewBuilder()
	quads := ExtractBoundaryQuads(g, opts.Tau, opts.HighIsInside)
	sizes := make([]int, len(quads)/4)
	for i := range sizes {
		sizes[i] = 4
	}
	indices := make([]int, len(quads))
	for i := range indices {
		indices[i] = i
	}
	if err := b.Build(quads, sizes, indices); err != nil {
		return nil, fmt.Errorf("polygonize: building quad mesh: %w", err)
	}

	welded := b.Stitch(WeldTolerance)
	if opts.Triangulate {
		b.Triangulate()
	}
	droppedFaces, droppedVerts := b.Cleanup()

	relaxed := 0
	for i := 0; i < b.VertexCount(); i++ {
		if p, ok := Relax(g, b.Position(i), opts.Tau); ok {
			b.SetPosition(i, p)
			relaxed++
		}
	}
	for i := 0; i < b.VertexCount(); i++ {
		b.SetPosition(i, xf.Inverse(b.Position(i)))
	}

	log.Debug("polygonized volume",
		zap.Int("quads", len(sizes)),
		zap.Int("welded", welded),
		zap.Int("droppedFaces", droppedFaces),
		zap.Int("droppedVertices", droppedVerts),
		zap.Int("vertices", b.VertexCount()),
		zap.Int("faces", b.FaceCount()),
		zap.Int("relaxed", relaxed),
	)
	return b.Finish(), nil
}

// diagonalA and diagonalB pair the corners of a unit cell across its four
// space diagonals.
var (
	diagonalA = [4]v3i.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}
	diagonalB = [4]v3i.Vec{{X: 1, Y: 1, Z: 1}, {Y: 1, Z: 1}, {X: 1, Z: 1}, {X: 1, Y: 1}}
)

// Relax estimates where the isosurface crosses the cell whose minimum
// corner is pos truncated to integers. Along each of the cell's four space
// diagonals whose end samples straddle tau, the crossing is linearly
// interpolated; the estimate is the mean of those crossings. ok is false,
// and pos should be kept, when the cell is not fully inside the grid or no
// diagonal straddles tau.
func Relax(g *volume.Grid, pos v3.Vec, tau float64) (v3.Vec, bool) {
	pi := volume.Trunc(pos)
	if !g.InDomain(pi) || !g.InDomain(volume.Offset(pi, diagonalB[0])) {
		return pos, false
	}
	var sum v3.Vec
	n := 0
	for i := range diagonalA {
		pa := volume.Offset(pi, diagonalA[i])
		pb := volume.Offset(pi, diagonalB[i])
		va, okA := g.At(pa)
		vb, okB := g.At(pb)
		if !okA || !okB {
			continue
		}
		if math.Max(va, vb) <= tau || math.Min(va, vb) > tau {
			continue
		}
		sum = sum.Add(volume.ToV3(pa).MulScalar((vb - tau) / (vb - va)))
		sum = sum.Add(volume.ToV3(pb).MulScalar((va - tau) / (va - vb)))
		n++
	}
	if n == 0 {
		return pos, false
	}
	return sum.DivScalar(float64(n)), true
}
