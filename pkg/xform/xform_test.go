package xform

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deadsy/sdfx/vec/v3i"
)

func near(a, b v3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestNewMapsCorners(t *testing.T) {
	bb := sdf.Box3{Min: v3.Vec{X: -10, Y: 0, Z: 5}, Max: v3.Vec{X: 10, Y: 4, Z: 6}}
	dims := v3i.Vec{X: 21, Y: 5, Z: 3}
	x := New(bb, dims)

	tests := []struct {
		name  string
		world v3.Vec
		index v3.Vec
	}{
		{"min corner", bb.Min, v3.Vec{}},
		{"max corner", bb.Max, v3.Vec{X: 20, Y: 4, Z: 2}},
		{"interior", v3.Vec{X: 0.5, Y: 1, Z: 5.25}, v3.Vec{X: 10.5, Y: 1, Z: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := x.Apply(tt.world); !near(got, tt.index, 1e-9) {
				t.Errorf("Apply(%v) = %v, want %v", tt.world, got, tt.index)
			}
			if got := x.Inverse(tt.index); !near(got, tt.world, 1e-9) {
				t.Errorf("Inverse(%v) = %v, want %v", tt.index, got, tt.world)
			}
		})
	}

	if x.LowerLeftFront() != bb.Min || x.UpperRightTop() != bb.Max {
		t.Errorf("corners = %v, %v; want %v, %v", x.LowerLeftFront(), x.UpperRightTop(), bb.Min, bb.Max)
	}
	if vs := x.VoxelSize(); !near(vs, v3.Vec{X: 1, Y: 1, Z: 0.5}, 1e-9) {
		t.Errorf("VoxelSize() = %v", vs)
	}
}

func TestNewDegenerateAxis(t *testing.T) {
	bb := sdf.Box3{Min: v3.Vec{X: 1, Y: 1, Z: 1}, Max: v3.Vec{X: 1, Y: 3, Z: 1}}
	x := New(bb, v3i.Vec{X: 1, Y: 3, Z: 1})
	if got := x.Apply(v3.Vec{X: 2, Y: 3, Z: 1}); !near(got, v3.Vec{X: 1, Y: 2, Z: 0}, 1e-9) {
		t.Errorf("Apply on degenerate axis = %v", got)
	}
}

func TestIdentity(t *testing.T) {
	x := Identity(v3i.Vec{X: 4, Y: 4, Z: 4})
	p := v3.Vec{X: 1.5, Y: -2, Z: 3.25}
	if x.Apply(p) != p || x.Inverse(p) != p {
		t.Errorf("identity transform moved %v", p)
	}
	if x.UpperRightTop() != (v3.Vec{X: 3, Y: 3, Z: 3}) {
		t.Errorf("UpperRightTop() = %v", x.UpperRightTop())
	}
}
