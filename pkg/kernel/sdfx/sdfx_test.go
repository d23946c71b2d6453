package sdfx

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deadsy/sdfx/vec/v3i"
)

func TestBox(t *testing.T) {
	k := New()
	box, err := k.Box(100, 50, 25)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	mesh, err := k.ToMesh(box, 50)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestInvalidPrimitives(t *testing.T) {
	k := New()
	if _, err := k.Sphere(-1); err == nil {
		t.Error("Sphere(-1) should fail")
	}
	if _, err := k.Box(-1, 1, 1); err == nil {
		t.Error("Box(-1, 1, 1) should fail")
	}
	if _, err := k.Cylinder(10, -2); err == nil {
		t.Error("Cylinder(10, -2) should fail")
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box, err := k.Box(100, 50, 25)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box, _ := k.Box(10, 10, 10)
	translated := k.Translate(box, 100, 200, 300)

	min, max := translated.BoundingBox()

	// Translated box(10,10,10) by (100,200,300) should be centered at (100,200,300).
	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box, _ := k.Box(100, 10, 10)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestBooleans(t *testing.T) {
	k := New()
	a, _ := k.Box(10, 10, 10)
	b, _ := k.Sphere(6)

	origin := v3.Vec{}
	corner := v3.Vec{X: 4.9, Y: 4.9, Z: 4.9}
	tests := []struct {
		name           string
		field          func() float64
		insideAtCorner bool
	}{
		{"union", func() float64 { return SDF(k.Union(a, b)).Evaluate(corner) }, true},
		{"intersection", func() float64 { return SDF(k.Intersection(a, b)).Evaluate(corner) }, false},
		{"difference", func() float64 { return SDF(k.Difference(a, b)).Evaluate(corner) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if inside := tt.field() < 0; inside != tt.insideAtCorner {
				t.Errorf("corner inside = %v, want %v", inside, tt.insideAtCorner)
			}
		})
	}
	if SDF(k.Difference(a, b)).Evaluate(origin) < 0 {
		t.Error("difference should hollow out the origin")
	}
}

func TestVoxelizeSphere(t *testing.T) {
	k := New()
	s, err := k.Sphere(5)
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	g, xf, err := k.Voxelize(s, 21, 2)
	if err != nil {
		t.Fatalf("Voxelize failed: %v", err)
	}
	want := v3i.Vec{X: 25, Y: 25, Z: 25}
	if g.Dims() != want {
		t.Fatalf("dims = %v, want %v", g.Dims(), want)
	}

	centre := xf.Apply(v3.Vec{})
	if centre.Sub(v3.Vec{X: 12, Y: 12, Z: 12}).Length() > 1e-9 {
		t.Errorf("origin maps to index %v, want (12, 12, 12)", centre)
	}
	if v, _ := g.At(v3i.Vec{X: 12, Y: 12, Z: 12}); math.Abs(v+5) > 1e-4 {
		t.Errorf("centre sample = %f, want -5", v)
	}
	if v, _ := g.At(v3i.Vec{}); v <= 0 {
		t.Errorf("corner sample = %f, want positive", v)
	}
	if vs := xf.VoxelSize(); math.Abs(vs.X-0.5) > 1e-9 {
		t.Errorf("voxel size = %v, want 0.5", vs)
	}
}

func TestVoxelizeErrors(t *testing.T) {
	k := New()
	s, _ := k.Sphere(1)
	if _, _, err := k.Voxelize(s, 1, 0); err == nil {
		t.Error("Voxelize with 1 cell should fail")
	}
	if _, _, err := k.Voxelize(s, 8, -1); err == nil {
		t.Error("Voxelize with negative padding should fail")
	}
}
