package glrender

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/gl/all-core/gl"
	"github.com/soypat/surfaces"
)

func TestLayoutAttribs(t *testing.T) {
	l := DefaultLayout()
	stride, a := l.attribs(true)
	if stride != 24 || len(a) != 2 {
		t.Fatalf("with normals: stride %d, %d attribs", stride, len(a))
	}
	if a[0] != (attrib{loc: 0, size: 3, offset: 0}) || a[1] != (attrib{loc: 1, size: 3, offset: 12}) {
		t.Errorf("with normals: got %+v", a)
	}
	stride, a = l.attribs(false)
	if stride != 12 || len(a) != 1 || a[0].loc != 0 {
		t.Errorf("without normals: stride %d, attribs %+v", stride, a)
	}
	l.Normal = -1
	stride, a = l.attribs(true)
	if stride != 24 || len(a) != 1 {
		t.Errorf("shader without normal input: stride %d, attribs %+v", stride, a)
	}
}

func TestFlatten(t *testing.T) {
	m, err := surfaces.MeshRevolution(3, 5, 1, surfaces.CircularSurface())
	if err != nil {
		t.Fatal(err)
	}
	v, idx, err := flatten(nil, nil, m)
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 6*len(m.Vertices) || len(idx) != len(m.Indices) {
		t.Fatalf("got %d floats and %d indices", len(v), len(idx))
	}
	// Reusing scratch space must not accumulate previous uploads.
	v, idx, err = flatten(v[:0], idx[:0], m)
	if err != nil || len(v) != 6*len(m.Vertices) || len(idx) != len(m.Indices) {
		t.Fatalf("reused scratch: %d floats, %d indices, err %v", len(v), len(idx), err)
	}

	m.Vertices = append([]surfaces.Vertex(nil), m.Vertices...)
	m.Vertices[3].Pos.Y = math.Inf(1)
	if _, _, err := flatten(nil, nil, m); err == nil || !strings.Contains(err.Error(), "vertex 3") {
		t.Errorf("expected non finite vertex 3 error, got %v", err)
	}
	if _, _, err := flatten(nil, nil, surfaces.Mesh{}); err == nil {
		t.Error("expected error for empty mesh")
	}
}

func TestGLMode(t *testing.T) {
	mode, err := glMode(surfaces.TriangleStrip)
	if err != nil || mode != gl.TRIANGLE_STRIP {
		t.Errorf("got mode %d, err %v", mode, err)
	}
	if _, err := glMode(0); err == nil {
		t.Error("expected error for unknown topology")
	}
}

func TestGLError(t *testing.T) {
	var err error = &GLError{Op: "drawing", Code: gl.INVALID_OPERATION}
	if got := err.Error(); got != "gl drawing: invalid operation (0x502)" {
		t.Errorf("got %q", got)
	}
	var glErr *GLError
	if !errors.As(err, &glErr) || glErr.Code != gl.INVALID_OPERATION {
		t.Error("errors.As failed")
	}
}

func TestGLString(t *testing.T) {
	for _, test := range []struct {
		name string
		want string
		ok   bool
	}{
		{name: "uModel", want: "uModel\x00", ok: true},
		{name: "uColor\x00", want: "uColor\x00", ok: true},
		{name: ""},
		{name: "\x00"},
		{name: "u\x00Proj"},
	} {
		got, err := glString(test.name)
		if (err == nil) != test.ok {
			t.Errorf("%q: got error %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%q: got %q, want %q", test.name, got, test.want)
		}
	}
}
