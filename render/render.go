// Package render decodes strip meshes into independent triangles and
// exports them as binary STL files or software rendered PNG previews.
package render

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams triangles. ReadTriangles fills t and returns the number of
// triangles written. It returns io.EOF once every triangle has been read.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a triangle in 3D space with counter-clockwise front face.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit face normal of the triangle. The result
// is NaN for degenerate triangles.
func (t Triangle3) Normal() r3.Vec {
	return r3.Unit(t.cross())
}

func (t Triangle3) cross() r3.Vec {
	return r3.Cross(r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0]))
}

// Degenerate returns true if the triangle's area is not larger than tol.
// Triangles with repeated vertices are always degenerate.
func (t Triangle3) Degenerate(tol float64) bool {
	return t.V[0] == t.V[1] || t.V[1] == t.V[2] || t.V[2] == t.V[0] ||
		r3.Norm(t.cross()) <= 2*tol
}

type multiRenderer struct {
	rs []Renderer
}

// MultiRenderer returns a Renderer that reads the triangles of each of rs in turn.
func MultiRenderer(rs ...Renderer) Renderer {
	return &multiRenderer{rs: append([]Renderer(nil), rs...)}
}

func (m *multiRenderer) ReadTriangles(t []Triangle3) (int, error) {
	for len(m.rs) > 0 {
		n, err := m.rs[0].ReadTriangles(t)
		if err == io.EOF {
			m.rs = m.rs[1:]
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
	return 0, io.EOF
}
