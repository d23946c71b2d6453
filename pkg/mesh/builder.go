package mesh

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Builder owns a mesh while it is being constructed and refined. It is
// threaded through each stage in turn and handed off with Finish; it is not
// safe for concurrent use.
type Builder struct {
	pos   []v3.Vec
	faces [][]int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Clear discards all vertices and faces.
func (b *Builder) Clear() {
	b.pos = nil
	b.faces = nil
}

// VertexCount returns the number of vertices.
func (b *Builder) VertexCount() int {
	return len(b.pos)
}

// FaceCount returns the number of faces.
func (b *Builder) FaceCount() int {
	return len(b.faces)
}

// Position returns the position of vertex i.
func (b *Builder) Position(i int) v3.Vec {
	return b.pos[i]
}

// SetPosition moves vertex i to p.
func (b *Builder) SetPosition(i int, p v3.Vec) {
	b.pos[i] = p
}

// Build replaces the builder's content with the given vertex soup. Face i
// is bounded by the next faceSizes[i] entries of indices, in the given
// winding order.
func (b *Builder) Build(positions []v3.Vec, faceSizes []int, indices []int) error {
	b.Clear()
	total := 0
	for i, n := range faceSizes {
		if n < 3 {
			return fmt.Errorf("mesh: face %d has %d vertices", i, n)
		}
		total += n
	}
	if total != len(indices) {
		return fmt.Errorf("mesh: faces reference %d indices, got %d", total, len(indices))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(positions) {
			return fmt.Errorf("mesh: index %d at %d out of range [0, %d)", idx, i, len(positions))
		}
	}

	b.pos = make([]v3.Vec, len(positions))
	copy(b.pos, positions)
	b.faces = make([][]int, len(faceSizes))
	k := 0
	for i, n := range faceSizes {
		f := make([]int, n)
		copy(f, indices[k:k+n])
		b.faces[i] = f
		k += n
	}
	return nil
}

// cellKey addresses a bucket of the spatial hash used by Stitch.
type cellKey struct {
	x, y, z int64
}

func keyOf(p v3.Vec, size float64) cellKey {
	return cellKey{
		x: int64(math.Floor(p.X / size)),
		y: int64(math.Floor(p.Y / size)),
		z: int64(math.Floor(p.Z / size)),
	}
}

// Stitch welds vertices that lie within tol of each other and rewrites face
// references to the surviving vertex. The survivor of each group is its
// lowest-indexed member and keeps its position; unmerged vertices are not
// moved. Vertices are compacted in their original order. It returns the
// number of vertices removed.
func (b *Builder) Stitch(tol float64) int {
	if len(b.pos) == 0 || tol < 0 {
		return 0
	}
	size := tol
	if size == 0 {
		size = 1
	}

	parent := make([]int, len(b.pos))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	buckets := make(map[cellKey][]int, len(b.pos))
	for i, p := range b.pos {
		k := keyOf(p, size)
		for dz := int64(-1); dz <= 1; dz++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dx := int64(-1); dx <= 1; dx++ {
					for _, j := range buckets[cellKey{k.x + dx, k.y + dy, k.z + dz}] {
						if distance(p, b.pos[j]) > tol {
							continue
						}
						ri, rj := find(i), find(j)
						if ri == rj {
							continue
						}
						if ri < rj {
							parent[rj] = ri
						} else {
							parent[ri] = rj
						}
					}
				}
			}
		}
		buckets[k] = append(buckets[k], i)
	}

	remap := make([]int, len(b.pos))
	pos := make([]v3.Vec, 0, len(b.pos))
	for i := range b.pos {
		r := find(i)
		if r == i {
			remap[i] = len(pos)
			pos = append(pos, b.pos[i])
		} else {
			remap[i] = remap[r]
		}
	}
	removed := len(b.pos) - len(pos)
	b.pos = pos
	for _, f := range b.faces {
		for i, v := range f {
			f[i] = remap[v]
		}
	}
	return removed
}

// Triangulate splits every face with more than three vertices into
// triangles, preserving winding. Quads are split along their shorter
// diagonal; larger polygons are fanned from their first vertex.
func (b *Builder) Triangulate() {
	faces := make([][]int, 0, len(b.faces)*2)
	for _, f := range b.faces {
		switch {
		case len(f) <= 3:
			faces = append(faces, f)
		case len(f) == 4:
			d02 := distance(b.pos[f[0]], b.pos[f[2]])
			d13 := distance(b.pos[f[1]], b.pos[f[3]])
			if d13 < d02 {
				faces = append(faces, []int{f[0], f[1], f[3]}, []int{f[1], f[2], f[3]})
			} else {
				faces = append(faces, []int{f[0], f[1], f[2]}, []int{f[0], f[2], f[3]})
			}
		default:
			for i := 1; i+1 < len(f); i++ {
				faces = append(faces, []int{f[0], f[i], f[i+1]})
			}
		}
	}
	b.faces = faces
}

// Cleanup removes consecutive repeated vertex references from faces, drops
// faces left with fewer than three distinct vertices, and removes vertices
// no face references. It returns the number of faces and vertices removed.
func (b *Builder) Cleanup() (faces, vertices int) {
	kept := b.faces[:0]
	for _, f := range b.faces {
		g := f[:0]
		for i, v := range f {
			if i > 0 && v == g[len(g)-1] {
				continue
			}
			g = append(g, v)
		}
		for len(g) > 1 && g[0] == g[len(g)-1] {
			g = g[:len(g)-1]
		}
		if distinct(g) < 3 {
			faces++
			continue
		}
		kept = append(kept, g)
	}
	for i := len(kept); i < len(b.faces); i++ {
		b.faces[i] = nil
	}
	b.faces = kept

	used := make([]bool, len(b.pos))
	for _, f := range b.faces {
		for _, v := range f {
			used[v] = true
		}
	}
	remap := make([]int, len(b.pos))
	pos := make([]v3.Vec, 0, len(b.pos))
	for i, p := range b.pos {
		if !used[i] {
			vertices++
			continue
		}
		remap[i] = len(pos)
		pos = append(pos, p)
	}
	b.pos = pos
	for _, f := range b.faces {
		for i, v := range f {
			f[i] = remap[v]
		}
	}
	return faces, vertices
}

func distinct(f []int) int {
	n := 0
	for i, v := range f {
		seen := false
		for _, w := range f[:i] {
			if w == v {
				seen = true
				break
			}
		}
		if !seen {
			n++
		}
	}
	return n
}

// Finish hands the built mesh to the caller and leaves the builder empty.
func (b *Builder) Finish() *Mesh {
	m := &Mesh{Positions: b.pos, Faces: b.faces}
	if m.Positions == nil {
		m.Positions = []v3.Vec{}
	}
	if m.Faces == nil {
		m.Faces = [][]int{}
	}
	b.Clear()
	return m
}
