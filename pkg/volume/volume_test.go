package volume

import (
	"bytes"
	"math"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deadsy/sdfx/vec/v3i"
)

// testGrid returns a 4x5x6 grid with a non-linear field so that trilinear
// blends and their derivatives are not trivially constant.
func testGrid() *Grid {
	return NewGridFunc(v3i.Vec{X: 4, Y: 5, Z: 6}, func(p v3i.Vec) float64 {
		x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
		return x*x - 2*y + 0.5*z*x + math.Sin(z)
	})
}

func TestSampleValueAtIntegerPositions(t *testing.T) {
	g := testGrid()
	g.Each(func(p v3i.Vec) {
		want, _ := g.At(p)
		got := SampleValue(g, ToV3(p))
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("SampleValue(%v) = %f, want %f", p, got, want)
		}
	})
}

func TestSampleValueClamps(t *testing.T) {
	g := testGrid()
	tests := []struct {
		name    string
		pos     v3.Vec
		clamped v3i.Vec
	}{
		{"below origin", v3.Vec{X: -3, Y: -1, Z: -10}, v3i.Vec{}},
		{"beyond max", v3.Vec{X: 9, Y: 7, Z: 100}, v3i.Vec{X: 3, Y: 4, Z: 5}},
		{"mixed", v3.Vec{X: -1, Y: 2, Z: 8}, v3i.Vec{X: 0, Y: 2, Z: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, _ := g.At(tt.clamped)
			got := SampleValue(g, tt.pos)
			if math.Abs(got-want) > 1e-6 {
				t.Errorf("SampleValue(%v) = %f, want %f", tt.pos, got, want)
			}
		})
	}
}

func TestSampleClampsExtremePositions(t *testing.T) {
	// x squared along X so that extrapolating past the last cell is visible.
	g := NewGridFunc(v3i.Vec{X: 4, Y: 4, Z: 4}, func(p v3i.Vec) float64 {
		return float64(p.X * p.X)
	})
	tests := []struct {
		name string
		x    float64
		want float64
		grad float64
	}{
		{"large", 1e6, 9, 5},
		{"beyond int range", 1e19, 9, 5},
		{"positive infinity", math.Inf(1), 9, 5},
		{"negative beyond int range", -1e19, 0, 1},
		{"negative infinity", math.Inf(-1), 0, 1},
		{"nan", math.NaN(), 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := v3.Vec{X: tt.x, Y: 1, Z: 1}
			if got := SampleValue(g, p); got != tt.want {
				t.Errorf("SampleValue(%v) = %v, want %v", p, got, tt.want)
			}
			if got := SampleGradient(g, p); got.X != tt.grad {
				t.Errorf("SampleGradient(%v).X = %v, want %v", p, got.X, tt.grad)
			}
		})
	}
}

func TestSampleValueLinearField(t *testing.T) {
	g := NewGridFunc(v3i.Vec{X: 3, Y: 3, Z: 3}, func(p v3i.Vec) float64 {
		return float64(p.X) + 2*float64(p.Y) - float64(p.Z)
	})
	p := v3.Vec{X: 0.25, Y: 1.5, Z: 1.75}
	want := 0.25 + 3 - 1.75
	if got := SampleValue(g, p); math.Abs(got-want) > 1e-9 {
		t.Errorf("SampleValue(%v) = %f, want %f", p, got, want)
	}
	grad := SampleGradient(g, p)
	if math.Abs(grad.X-1) > 1e-9 || math.Abs(grad.Y-2) > 1e-9 || math.Abs(grad.Z+1) > 1e-9 {
		t.Errorf("SampleGradient(%v) = %v, want (1, 2, -1)", p, grad)
	}
}

func TestSampleGradientMatchesFiniteDifference(t *testing.T) {
	g := testGrid()
	const h = 1e-5
	points := []v3.Vec{
		{X: 0.3, Y: 0.6, Z: 0.2},
		{X: 1.5, Y: 2.25, Z: 3.7},
		{X: 2.9, Y: 3.1, Z: 4.4},
		{X: 1.1, Y: 0.9, Z: 2.5},
	}
	for _, p := range points {
		grad := SampleGradient(g, p)
		fd := v3.Vec{
			X: (SampleValue(g, v3.Vec{X: p.X + h, Y: p.Y, Z: p.Z}) - SampleValue(g, v3.Vec{X: p.X - h, Y: p.Y, Z: p.Z})) / (2 * h),
			Y: (SampleValue(g, v3.Vec{X: p.X, Y: p.Y + h, Z: p.Z}) - SampleValue(g, v3.Vec{X: p.X, Y: p.Y - h, Z: p.Z})) / (2 * h),
			Z: (SampleValue(g, v3.Vec{X: p.X, Y: p.Y, Z: p.Z + h}) - SampleValue(g, v3.Vec{X: p.X, Y: p.Y, Z: p.Z - h})) / (2 * h),
		}
		if math.Abs(grad.X-fd.X) > 1e-3 || math.Abs(grad.Y-fd.Y) > 1e-3 || math.Abs(grad.Z-fd.Z) > 1e-3 {
			t.Errorf("gradient at %v = %v, finite difference %v", p, grad, fd)
		}
	}
}

func TestSampleUndefinedCorner(t *testing.T) {
	g := NewGrid(v3i.Vec{X: 3, Y: 3, Z: 3})
	g.Unset(v3i.Vec{X: 1, Y: 1, Z: 1})

	if v := SampleValue(g, v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}); !math.IsNaN(v) {
		t.Errorf("SampleValue next to undefined sample = %f, want NaN", v)
	}
	if grad := SampleGradient(g, v3.Vec{X: 1.5, Y: 1.5, Z: 1.5}); !math.IsNaN(grad.X) {
		t.Errorf("SampleGradient next to undefined sample = %v, want NaN", grad)
	}
	// The cell [1,2]^3 touches (1,1,1); the opposite cell does not.
	g2 := NewGrid(v3i.Vec{X: 4, Y: 4, Z: 4})
	g2.Unset(v3i.Vec{})
	if v := SampleValue(g2, v3.Vec{X: 2.5, Y: 2.5, Z: 2.5}); math.IsNaN(v) {
		t.Error("SampleValue away from undefined sample is NaN")
	}
}

func TestSampleDegenerateAxes(t *testing.T) {
	g := NewGridFunc(v3i.Vec{X: 1, Y: 2, Z: 1}, func(p v3i.Vec) float64 {
		return float64(p.Y) * 10
	})
	if got := SampleValue(g, v3.Vec{X: 3, Y: 0.5, Z: -2}); math.Abs(got-5) > 1e-9 {
		t.Errorf("SampleValue on flat grid = %f, want 5", got)
	}
	if got := SampleGradient(g, v3.Vec{Y: 0.5}); math.Abs(got.Y-10) > 1e-9 || got.X != 0 || got.Z != 0 {
		t.Errorf("SampleGradient on flat grid = %v, want (0, 10, 0)", got)
	}

	empty := NewGrid(v3i.Vec{X: 0, Y: 3, Z: 3})
	if !math.IsNaN(SampleValue(empty, v3.Vec{})) {
		t.Error("SampleValue on empty grid should be NaN")
	}
}

func TestGridSetNaNUndefines(t *testing.T) {
	g := NewGrid(v3i.Vec{X: 2, Y: 2, Z: 2})
	p := v3i.Vec{X: 1}
	g.Set(p, math.NaN())
	if _, ok := g.At(p); ok {
		t.Error("NaN sample should be undefined")
	}
	g.Set(p, 3)
	if v, ok := g.At(p); !ok || v != 3 {
		t.Errorf("At(%v) = %f, %v; want 3, true", p, v, ok)
	}
	if _, ok := g.At(v3i.Vec{X: 2}); ok {
		t.Error("out-of-domain position should be undefined")
	}
}

func TestGridKeepsFullPrecision(t *testing.T) {
	g := NewGrid(v3i.Vec{X: 2, Y: 2, Z: 2})
	for _, v := range []float64{1e-50, -1e-50, 1e300, 0.1} {
		g.Set(v3i.Vec{}, v)
		got, ok := g.At(v3i.Vec{})
		if !ok || got != v {
			t.Errorf("At after Set(%g) = %g, %v", v, got, ok)
		}
	}
}

func TestGridRange(t *testing.T) {
	g := testGrid()
	g.Unset(v3i.Vec{X: 3})
	lo, hi, ok := g.Range()
	if !ok || lo >= hi {
		t.Fatalf("Range() = %f, %f, %v", lo, hi, ok)
	}
	empty := NewGrid(v3i.Vec{X: 1, Y: 1, Z: 1})
	empty.Unset(v3i.Vec{})
	if _, _, ok := empty.Range(); ok {
		t.Error("Range() on all-undefined grid should report !ok")
	}
}

func TestSmooth(t *testing.T) {
	g := NewGrid(v3i.Vec{X: 3, Y: 3, Z: 3})
	centre := v3i.Vec{X: 1, Y: 1, Z: 1}
	g.Set(centre, 7)
	g.Unset(v3i.Vec{})

	s := Smooth(g, 1)
	if v, _ := s.At(centre); math.Abs(v-1) > 1e-6 {
		t.Errorf("smoothed centre = %f, want 1", v)
	}
	if v, _ := s.At(v3i.Vec{X: 1, Y: 1}); math.Abs(v-7.0/6) > 1e-6 {
		t.Errorf("smoothed face neighbour = %f, want %f", v, 7.0/6)
	}
	if _, ok := s.At(v3i.Vec{}); ok {
		t.Error("undefined sample became defined")
	}
	if v, _ := g.At(centre); v != 7 {
		t.Error("Smooth modified its input")
	}
	if z := Smooth(g, 0); z == g {
		t.Error("Smooth(g, 0) should return a copy")
	}
}

func TestReadJSON(t *testing.T) {
	src := `[[[0, 1], [2, null]], [[4, 5], [6, 7]]]`
	g, err := ReadJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if g.Dims() != (v3i.Vec{X: 2, Y: 2, Z: 2}) {
		t.Fatalf("dims = %v", g.Dims())
	}
	if v, ok := g.At(v3i.Vec{X: 1, Y: 0, Z: 1}); !ok || v != 5 {
		t.Errorf("At(1,0,1) = %f, %v; want 5, true", v, ok)
	}
	if _, ok := g.At(v3i.Vec{X: 1, Y: 1, Z: 0}); ok {
		t.Error("null sample should be undefined")
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, g); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON after WriteJSON: %v", err)
	}
	if _, ok := back.At(v3i.Vec{X: 1, Y: 1, Z: 0}); ok {
		t.Error("undefined sample lost in round trip")
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not json", `{{`},
		{"ragged rows", `[[[0, 1], [2]]]`},
		{"ragged planes", `[[[0]], [[0], [1]]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
