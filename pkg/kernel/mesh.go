package kernel

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cuboid/pkg/mesh"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// FromPolygonMesh flattens a polygon mesh into a render mesh. Faces are
// fanned into triangles and every triangle gets its own three vertices
// carrying the face normal, so shading stays flat.
func FromPolygonMesh(pm *mesh.Mesh) *Mesh {
	m := &Mesh{}
	for fi, f := range pm.Faces {
		n := pm.FaceNormal(fi)
		for i := 1; i+1 < len(f); i++ {
			for _, v := range [3]int{f[0], f[i], f[i+1]} {
				p := pm.Positions[v]
				m.Indices = append(m.Indices, uint32(m.VertexCount()))
				m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
				m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
			}
		}
	}
	return m
}

// Triangles returns the mesh as sdfx triangles, for STL export.
func (m *Mesh) Triangles() []*sdf.Triangle3 {
	vertex := func(i uint32) v3.Vec {
		return v3.Vec{
			X: float64(m.Vertices[i*3]),
			Y: float64(m.Vertices[i*3+1]),
			Z: float64(m.Vertices[i*3+2]),
		}
	}
	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, &sdf.Triangle3{vertex(m.Indices[i]), vertex(m.Indices[i+1]), vertex(m.Indices[i+2])})
	}
	return tris
}
