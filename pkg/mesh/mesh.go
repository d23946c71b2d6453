// Package mesh provides the polygon mesh used by the polygonizer: a Builder
// that is constructed from a face/vertex soup and refined in place by
// stitching, triangulation and cleanup, and the immutable Mesh it produces.
package mesh

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is a finished polygon mesh. Each face lists vertex indices in
// counter-clockwise order as seen from outside.
type Mesh struct {
	Positions []v3.Vec
	Faces     [][]int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no faces.
func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// BoundingBox returns the axis-aligned bounding box of the vertices.
func (m *Mesh) BoundingBox() sdf.Box3 {
	if len(m.Positions) == 0 {
		return sdf.Box3{}
	}
	bb := sdf.Box3{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		bb.Min = bb.Min.Min(p)
		bb.Max = bb.Max.Max(p)
	}
	return bb
}

// Triangles fans every face into triangles for export.
func (m *Mesh) Triangles() []*sdf.Triangle3 {
	var tris []*sdf.Triangle3
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			tris = append(tris, &sdf.Triangle3{
				m.Positions[f[0]],
				m.Positions[f[i]],
				m.Positions[f[i+1]],
			})
		}
	}
	return tris
}

// Area returns the total surface area.
func (m *Mesh) Area() float64 {
	var area float64
	for _, f := range m.Faces {
		area += polygonArea(m.Positions, f)
	}
	return area
}

// FaceNormal returns the unit normal of face i, or the zero vector for a
// degenerate face.
func (m *Mesh) FaceNormal(i int) v3.Vec {
	n := polygonNormal(m.Positions, m.Faces[i])
	l := n.Length()
	if l == 0 {
		return v3.Vec{}
	}
	return n.DivScalar(l)
}

// polygonNormal returns the Newell normal of a face; its length is twice
// the face area.
func polygonNormal(pos []v3.Vec, f []int) v3.Vec {
	var n v3.Vec
	for i := range f {
		a := pos[f[i]]
		b := pos[f[(i+1)%len(f)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

func polygonArea(pos []v3.Vec, f []int) float64 {
	return 0.5 * polygonNormal(pos, f).Length()
}

// SignedVolume returns the volume enclosed by a closed, consistently
// oriented mesh. It is positive when faces wind counter-clockwise as seen
// from outside.
func (m *Mesh) SignedVolume() float64 {
	var vol float64
	for _, f := range m.Faces {
		a := m.Positions[f[0]]
		for i := 1; i+1 < len(f); i++ {
			b := m.Positions[f[i]]
			c := m.Positions[f[i+1]]
			vol += a.Dot(b.Cross(c))
		}
	}
	return vol / 6
}

func distance(a, b v3.Vec) float64 {
	d := a.Sub(b)
	return math.Sqrt(d.Dot(d))
}
