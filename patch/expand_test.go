package patch

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/surfaces/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestRotateStep(t *testing.T) {
	p := r3.Vec{X: 1.5, Y: 2, Z: -0.25}
	half := RotateStep(p, 2)
	if half != (r3.Vec{X: -1.5, Y: 2, Z: 0.25}) {
		t.Errorf("180 degree step: got %v", half)
	}
	if q := RotateStep(p, 1); q != (r3.Vec{X: -0.25, Y: 2, Z: -1.5}) {
		t.Errorf("90 degree step: got %v", q)
	}
	// Three quarter turns undo a single one.
	if q := RotateStep(RotateStep(p, 1), 3); !d3.EqualWithin(q, p, 0) {
		t.Errorf("1+3 steps: got %v, want %v", q, p)
	}
	for step := 0; step < 4; step++ {
		q := RotateStep(p, step)
		if math.Hypot(q.X, q.Z) != math.Hypot(p.X, p.Z) || q.Y != p.Y {
			t.Errorf("step %d is not a rotation about y: %v", step, q)
		}
	}
}

func TestMirrorIndexInvolution(t *testing.T) {
	for k := 0; k < Size; k++ {
		m := MirrorIndex(k)
		if m/4 != k/4 {
			t.Errorf("MirrorIndex(%d)=%d changes row", k, m)
		}
		if m%4 != 3-k%4 {
			t.Errorf("MirrorIndex(%d)=%d does not reverse column", k, m)
		}
		if MirrorIndex(m) != k {
			t.Errorf("MirrorIndex is not an involution at %d", k)
		}
	}
}

func TestTeapotStructure(t *testing.T) {
	s := Teapot()
	if s.NumPatches() != 32 {
		t.Fatalf("got %d patches, want 32", s.NumPatches())
	}
	if s.NumPoints() != 32*Size {
		t.Fatalf("got %d points, want %d", s.NumPoints(), 32*Size)
	}
	seen := make([]bool, s.NumPoints())
	for i := 0; i < s.NumPatches(); i++ {
		for _, idx := range s.Patch(i) {
			if seen[idx] {
				t.Fatalf("point %d shared between patches", idx)
			}
			seen[idx] = true
		}
	}
	total := 0
	for _, part := range []Part{Body, Lid, Handle, Spout} {
		first, n := part.Range()
		if first != total {
			t.Errorf("%v starts at %d, want %d", part, first, total)
		}
		total += n
	}
	if total != 32 {
		t.Errorf("parts cover %d patches", total)
	}
	if got := len(s.AppendFlat(nil)); got != 32*Size*Dim {
		t.Errorf("flat layout has %d values", got)
	}
}

func TestTeapotRotationCopies(t *testing.T) {
	s := Teapot()
	// Canonical patch 0 (rim) expands to patches 0..3, one per quarter turn.
	base := s.ControlGrid(0)
	for step := 1; step < 4; step++ {
		grid := s.ControlGrid(step)
		for k := range grid {
			if want := RotateStep(base[k], step); grid[k] != want {
				t.Fatalf("patch %d point %d: got %v, want %v", step, k, grid[k], want)
			}
		}
		for _, uv := range [][2]float64{{0.3, 0.4}, {0.8, 0.1}, {0.5, 0.5}} {
			n0 := Normal(&base, uv[0], uv[1])
			n := Normal(&grid, uv[0], uv[1])
			if !d3.EqualWithin(n, RotateStep(n0, step), 1e-9) {
				t.Errorf("patch %d at %v: normal %v is not rotated %v", step, uv, n, n0)
			}
		}
	}
}

func TestTeapotMirrorKeepsFacing(t *testing.T) {
	s := Teapot()
	first, _ := Handle.Range()
	orig := s.ControlGrid(first)
	mirrored := s.ControlGrid(first + 1)
	for k := range mirrored {
		want := orig[MirrorIndex(k)]
		want.X = -want.X
		if mirrored[k] != want {
			t.Fatalf("point %d: got %v, want %v", k, mirrored[k], want)
		}
	}
	// Without reordering the reflection would flip the surface inside out.
	var flipped [Size]r3.Vec
	for k, p := range orig {
		flipped[k] = r3.Vec{X: -p.X, Y: p.Y, Z: p.Z}
	}
	for _, uv := range [][2]float64{{0.2, 0.3}, {0.6, 0.7}, {0.5, 0.5}} {
		u, v := uv[0], uv[1]
		n := Normal(&orig, u, v)
		reflected := r3.Vec{X: -n.X, Y: n.Y, Z: n.Z}
		if got := Normal(&mirrored, u, 1-v); !d3.EqualWithin(got, reflected, 1e-9) {
			t.Errorf("at %v: mirrored normal %v, want %v", uv, got, reflected)
		}
		if got := Normal(&flipped, u, v); !d3.EqualWithin(got, r3.Scale(-1, reflected), 1e-9) {
			t.Errorf("at %v: plain reflection normal %v, want %v", uv, got, r3.Scale(-1, reflected))
		}
	}
}

func TestExpandKeepsDegenerateRows(t *testing.T) {
	s := Teapot()
	// Bottom is canonical patch 3, its first row collapses to the centre point.
	for p := 12; p < 16; p++ {
		grid := s.ControlGrid(p)
		for k := 1; k < 4; k++ {
			if grid[k] != grid[0] {
				t.Errorf("bottom patch %d: row 0 point %d is %v, want %v", p, k, grid[k], grid[0])
			}
		}
		if grid[0] != (r3.Vec{}) {
			t.Errorf("bottom patch %d pole at %v", p, grid[0])
		}
	}
	// Lid is canonical patch 4 with row 2 collapsed.
	first, _ := Lid.Range()
	for p := first; p < first+4; p++ {
		grid := s.ControlGrid(p)
		if grid[8] != grid[9] || grid[9] != grid[10] || grid[10] != grid[11] {
			t.Errorf("lid patch %d row 2 not collapsed: %v", p, grid[8:12])
		}
	}
}

func TestExpandBadInput(t *testing.T) {
	pts := []r3.Vec{{}, {X: 1}}
	var p Patch
	if _, err := Expand([]Patch{p}, pts, nil); !errors.Is(err, ErrBadPatch) {
		t.Errorf("missing symmetry: got %v", err)
	}
	p[5] = 2
	if _, err := Expand([]Patch{p}, pts, []Symmetry{Rotate4}); !errors.Is(err, ErrBadPatch) {
		t.Errorf("out of range point: got %v", err)
	}
	p[5] = 1
	if _, err := Expand([]Patch{p}, pts, []Symmetry{0}); !errors.Is(err, ErrBadPatch) {
		t.Errorf("invalid symmetry: got %v", err)
	}
	s, err := Expand([]Patch{p}, pts, []Symmetry{MirrorZ})
	if err != nil {
		t.Fatal(err)
	}
	if s.NumPatches() != 2 {
		t.Errorf("mirror emitted %d patches", s.NumPatches())
	}
	if _, err := NewSurface([]r3.Vec{{X: math.NaN()}}, []Patch{{}}); !errors.Is(err, ErrBadPatch) {
		t.Errorf("NaN point: got %v", err)
	}
}

func TestExpandMirrorPlanes(t *testing.T) {
	var (
		p   Patch
		pts = make([]r3.Vec, Size)
	)
	for k := range p {
		p[k] = k
		pts[k] = r3.Vec{X: float64(k%4) + 1, Y: float64(k/4) + 0.5, Z: float64(k) - 7}
	}
	for _, test := range []struct {
		sym  Symmetry
		flip r3.Vec
	}{
		{sym: MirrorX, flip: r3.Vec{X: -1, Y: 1, Z: 1}},
		{sym: MirrorY, flip: r3.Vec{X: 1, Y: -1, Z: 1}},
		{sym: MirrorZ, flip: r3.Vec{X: 1, Y: 1, Z: -1}},
	} {
		s, err := Expand([]Patch{p}, pts, []Symmetry{test.sym})
		if err != nil {
			t.Fatal(err)
		}
		if s.NumPatches() != 2 || s.NumPoints() != 2*Size {
			t.Fatalf("%v: got %d patches and %d points", test.sym, s.NumPatches(), s.NumPoints())
		}
		orig, mirrored := s.ControlGrid(0), s.ControlGrid(1)
		for k := 0; k < Size; k++ {
			if orig[k] != pts[k] {
				t.Errorf("%v: original point %d changed to %v", test.sym, k, orig[k])
			}
			src := pts[MirrorIndex(k)]
			want := r3.Vec{X: src.X * test.flip.X, Y: src.Y * test.flip.Y, Z: src.Z * test.flip.Z}
			if mirrored[k] != want {
				t.Errorf("%v: mirrored point %d = %v, want %v", test.sym, k, mirrored[k], want)
			}
		}
	}
}
