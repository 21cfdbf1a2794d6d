// Package glrender uploads strip meshes to OpenGL buffers and issues
// their draw calls. All functions and methods must be called from the
// goroutine owning the current GL context, with the OS thread locked.
package glrender

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/all-core/gl"
	"github.com/soypat/surfaces"
	"gonum.org/v1/gonum/spatial/r3"
)

const sizeofFloat32 = 4

// Layout binds mesh vertex attributes to shader attribute locations.
type Layout struct {
	// Position is the location of the vec3 position attribute.
	Position uint32
	// Normal is the location of the vec3 normal attribute or -1 if the
	// shader has none.
	Normal int32
	// ConstantNormal is fed to the normal attribute of meshes uploaded
	// without per-vertex normals.
	ConstantNormal r3.Vec
}

// DefaultLayout is the layout of the bundled shaders: position at
// location 0 and normal at 1, with an up-facing constant normal.
func DefaultLayout() Layout {
	return Layout{Position: 0, Normal: 1, ConstantNormal: r3.Vec{Y: 1}}
}

type attrib struct {
	loc    uint32
	size   int32
	offset int // in bytes
}

// attribs returns the vertex attribute pointers for interleaved data
// with or without normals, and the vertex stride in bytes.
func (l Layout) attribs(hasNormals bool) (stride int32, a []attrib) {
	floats := 3
	a = append(a, attrib{loc: l.Position, size: 3, offset: 0})
	if hasNormals && l.Normal >= 0 {
		a = append(a, attrib{loc: uint32(l.Normal), size: 3, offset: 3 * sizeofFloat32})
	}
	if hasNormals {
		floats = 6
	}
	return int32(floats * sizeofFloat32), a
}

// Buffers is a vertex array object with its vertex and element buffers.
// A mesh uploaded to Buffers replaces the previous contents.
type Buffers struct {
	vao, vbo, ebo uint32
	layout        Layout
	hasNormals    bool
	plan          []surfaces.DrawCall
	// Scratch space reused across uploads.
	vertices []float32
	indices  []uint32
}

// NewBuffers generates a vertex array object and its two buffers.
func NewBuffers(layout Layout) (*Buffers, error) {
	b := &Buffers{layout: layout}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ebo)
	if err := checkError("generating buffers"); err != nil {
		return nil, err
	}
	return b, nil
}

// Upload copies m into the buffers, overwriting what was there,
// and sets up the vertex attribute pointers.
func (b *Buffers) Upload(m surfaces.Mesh) error {
	plan, err := m.Plan()
	if err != nil {
		return err
	}
	b.vertices, b.indices, err = flatten(b.vertices[:0], b.indices[:0], m)
	if err != nil {
		return err
	}
	gl.BindVertexArray(b.vao)
	defer gl.BindVertexArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.vertices)*sizeofFloat32, gl.Ptr(b.vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(b.indices)*surfaces.IndexSize, gl.Ptr(b.indices), gl.STATIC_DRAW)

	stride, attribs := b.layout.attribs(m.HasNormals)
	for _, a := range attribs {
		gl.VertexAttribPointer(a.loc, a.size, gl.FLOAT, false, stride, gl.PtrOffset(a.offset))
		gl.EnableVertexAttribArray(a.loc)
	}
	if !m.HasNormals && b.layout.Normal >= 0 {
		gl.DisableVertexAttribArray(uint32(b.layout.Normal))
	}
	if err := checkError("uploading mesh"); err != nil {
		return err
	}
	b.hasNormals = m.HasNormals
	b.plan = plan
	surfaces.Logger().Debug("uploaded mesh", slog.String("kind", m.Kind.String()),
		slog.Int("floats", len(b.vertices)), slog.Int("indices", len(b.indices)))
	return nil
}

// Plan returns the draw calls of the uploaded mesh.
func (b *Buffers) Plan() []surfaces.DrawCall { return b.plan }

// Draw issues every draw call of the uploaded mesh.
func (b *Buffers) Draw() error {
	return b.DrawCalls(b.plan)
}

// DrawCalls issues the given draw calls against the uploaded buffers.
// Use it with [surfaces.PlanPatches] to draw a subset of the mesh parts.
func (b *Buffers) DrawCalls(plan []surfaces.DrawCall) error {
	gl.BindVertexArray(b.vao)
	defer gl.BindVertexArray(0)
	if !b.hasNormals && b.layout.Normal >= 0 {
		n := b.layout.ConstantNormal
		gl.VertexAttrib3f(uint32(b.layout.Normal), float32(n.X), float32(n.Y), float32(n.Z))
	}
	for _, dc := range plan {
		mode, err := glMode(dc.Topology)
		if err != nil {
			return err
		}
		gl.DrawElements(mode, int32(dc.Count), gl.UNSIGNED_INT, gl.PtrOffset(dc.Offset))
	}
	return checkError("drawing")
}

// Delete releases the GL objects. b must not be used afterwards.
func (b *Buffers) Delete() {
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	*b = Buffers{}
}

// flatten appends the interleaved vertex floats and indices of m.
// Non finite float32 values are rejected.
func flatten(vdst []float32, idst []uint32, m surfaces.Mesh) ([]float32, []uint32, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return vdst, idst, errors.New("empty mesh")
	}
	start := len(vdst)
	vdst = m.AppendInterleaved(vdst)
	for i, f := range vdst[start:] {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return vdst, idst, fmt.Errorf("vertex %d has non finite component %v", i/m.Stride(), f)
		}
	}
	return vdst, m.AppendIndices(idst), nil
}

func glMode(t surfaces.Topology) (uint32, error) {
	switch t {
	case surfaces.TriangleStrip:
		return gl.TRIANGLE_STRIP, nil
	}
	return 0, fmt.Errorf("unsupported topology %v", t)
}

// GLError is an error code reported by gl.GetError.
type GLError struct {
	Op   string
	Code uint32
}

func (e *GLError) Error() string {
	return fmt.Sprintf("gl %s: %s (0x%x)", e.Op, errorName(e.Code), e.Code)
}

func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return &GLError{Op: op, Code: code}
	}
	return nil
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_VALUE:
		return "invalid value"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalid framebuffer operation"
	case gl.OUT_OF_MEMORY:
		return "out of memory"
	}
	return "unknown error"
}
