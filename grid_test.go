package surfaces

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/surfaces/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func uvField(u, v float64) r3.Vec { return r3.Vec{X: u, Y: v} }

func TestMeshGridSingleCell(t *testing.T) {
	m, err := MeshGrid(1, 1, uvField, nil)
	if err != nil {
		t.Fatal(err)
	}
	wantUV := []r3.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	if len(m.Vertices) != len(wantUV) {
		t.Fatalf("got %d vertices, want %d", len(m.Vertices), len(wantUV))
	}
	for i, want := range wantUV {
		if m.Vertices[i].Pos != want {
			t.Errorf("vertex %d: got (u,v)=%v, want %v", i, m.Vertices[i].Pos, want)
		}
	}
	wantIdx := []uint32{0, 2, 1, 3}
	if len(m.Indices) != len(wantIdx) {
		t.Fatalf("got indices %v, want %v", m.Indices, wantIdx)
	}
	for i := range wantIdx {
		if m.Indices[i] != wantIdx[i] {
			t.Fatalf("got indices %v, want %v", m.Indices, wantIdx)
		}
	}
	if m.HasNormals {
		t.Error("mesh built without normal field reports normals")
	}
}

func TestMeshGridSizes(t *testing.T) {
	for rows := 1; rows <= 7; rows++ {
		for cols := 1; cols <= 7; cols++ {
			m, err := MeshGrid(rows, cols, uvField, uvField)
			if err != nil {
				t.Fatal(err)
			}
			if len(m.Vertices) != (rows+1)*(cols+1) {
				t.Errorf("%dx%d: got %d vertices", rows, cols, len(m.Vertices))
			}
			if len(m.Indices) != rows*2*(cols+1) {
				t.Errorf("%dx%d: got %d indices", rows, cols, len(m.Indices))
			}
			if err := m.Validate(); err != nil {
				t.Errorf("%dx%d: %v", rows, cols, err)
			}
		}
	}
}

func TestMeshGridStripsShareRows(t *testing.T) {
	const rows, cols = 3, 4
	m, err := MeshGrid(rows, cols, uvField, nil)
	if err != nil {
		t.Fatal(err)
	}
	stripLen := 2 * (cols + 1)
	for i := 1; i < rows; i++ {
		prev := m.Indices[(i-1)*stripLen : i*stripLen]
		cur := m.Indices[i*stripLen : (i+1)*stripLen]
		for j := 0; j <= cols; j++ {
			// Bottom row of the previous strip is the top row of this one.
			if prev[2*j+1] != cur[2*j] {
				t.Errorf("strip %d col %d: previous strip bottom %d != top %d", i, j, prev[2*j+1], cur[2*j])
			}
		}
	}
}

func TestMeshGridBadResolution(t *testing.T) {
	called := false
	field := func(u, v float64) r3.Vec {
		called = true
		return r3.Vec{}
	}
	for _, res := range []Resolution{{0, 1}, {1, 0}, {-2, 3}, {0, 0}} {
		m, err := MeshGrid(res.Rows, res.Cols, field, nil)
		if !errors.Is(err, ErrBadResolution) {
			t.Errorf("%+v: expected ErrBadResolution, got %v", res, err)
		}
		if m.Vertices != nil || m.Indices != nil {
			t.Errorf("%+v: buffers allocated on rejected resolution", res)
		}
	}
	if called {
		t.Error("field evaluated for rejected resolution")
	}
}

// The 4x4 demo floor: 25 vertices on [-5,5]^2 and four strips of ten indices.
func TestFloorMatchesDemo(t *testing.T) {
	m, err := Floor(4, 10)
	if err != nil {
		t.Fatal(err)
	}
	coords := []float64{-5, -2.5, 0, 2.5, 5}
	for i, z := range coords {
		for j, x := range coords {
			got := m.Vertices[i*5+j].Pos
			if !d3.EqualWithin(got, r3.Vec{X: x, Z: z}, 1e-12) {
				t.Errorf("vertex %d: got %v, want (%g,0,%g)", i*5+j, got, x, z)
			}
		}
	}
	demo := []uint32{
		0, 5, 1, 6, 2, 7, 3, 8, 4, 9,
		5, 10, 6, 11, 7, 12, 8, 13, 9, 14,
		10, 15, 11, 16, 12, 17, 13, 18, 14, 19,
		15, 20, 16, 21, 17, 22, 18, 23, 19, 24,
	}
	if len(m.Indices) != len(demo) {
		t.Fatalf("got %d indices, want %d", len(m.Indices), len(demo))
	}
	for i := range demo {
		if m.Indices[i] != demo[i] {
			t.Fatalf("index %d: got %d, want %d", i, m.Indices[i], demo[i])
		}
	}
	// First triangle of each strip must face +Y.
	for s := 0; s < 4; s++ {
		a, b, c := m.Vertices[m.Indices[s*10]].Pos, m.Vertices[m.Indices[s*10+1]].Pos, m.Vertices[m.Indices[s*10+2]].Pos
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		if n.Y <= 0 {
			t.Errorf("strip %d first triangle faces %v", s, n)
		}
	}
}

func TestFloorBadSize(t *testing.T) {
	if _, err := Floor(4, 0); err == nil {
		t.Error("expected error for zero size floor")
	}
	if _, err := Floor(4, math.Inf(1)); err == nil {
		t.Error("expected error for infinite floor")
	}
	if _, err := Floor(0, 10); !errors.Is(err, ErrBadResolution) {
		t.Errorf("expected ErrBadResolution, got %v", err)
	}
}
