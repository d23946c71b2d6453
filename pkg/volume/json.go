package volume

import (
	"encoding/json"
	"io"

	"github.com/deadsy/sdfx/vec/v3i"
	"github.com/pkg/errors"
)

// ReadJSON reads a grid encoded as a nested JSON array with z on the outer
// dimension, then y, then x. A null entry is an undefined sample. Every row
// and plane must have the same length.
func ReadJSON(r io.Reader) (*Grid, error) {
	var object [][][]*float64
	if err := json.NewDecoder(r).Decode(&object); err != nil {
		return nil, errors.Wrap(err, "read volume")
	}
	dims := v3i.Vec{Z: len(object)}
	if dims.Z > 0 {
		dims.Y = len(object[0])
		if dims.Y > 0 {
			dims.X = len(object[0][0])
		}
	}
	g := NewGrid(dims)
	for z, plane := range object {
		if len(plane) != dims.Y {
			return nil, errors.Errorf("read volume: plane %d has %d rows, want %d", z, len(plane), dims.Y)
		}
		for y, row := range plane {
			if len(row) != dims.X {
				return nil, errors.Errorf("read volume: row %d of plane %d has %d samples, want %d", y, z, len(row), dims.X)
			}
			for x, v := range row {
				p := v3i.Vec{X: x, Y: y, Z: z}
				if v == nil {
					g.Unset(p)
					continue
				}
				g.Set(p, *v)
			}
		}
	}
	return g, nil
}

// WriteJSON writes g in the layout accepted by ReadJSON.
func WriteJSON(w io.Writer, g *Grid) error {
	object := make([][][]*float64, g.dims.Z)
	for z := range object {
		object[z] = make([][]*float64, g.dims.Y)
		for y := range object[z] {
			object[z][y] = make([]*float64, g.dims.X)
			for x := range object[z][y] {
				if v, ok := g.At(v3i.Vec{X: x, Y: y, Z: z}); ok {
					object[z][y][x] = &v
				}
			}
		}
	}
	return errors.Wrap(json.NewEncoder(w).Encode(object), "write volume")
}
