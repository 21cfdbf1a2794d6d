package render

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/soypat/surfaces"
	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateTol is the area below which decoded triangles are dropped.
const degenerateTol = 1e-12

// StripRenderer decodes the triangle strips of a mesh into independent
// triangles, one draw call at a time. Odd triangles of each strip have
// their first two vertices swapped so every triangle keeps the winding of
// the strip's first triangle. Degenerate triangles, such as those at the
// collapsed rows of a Bezier patch, are skipped.
type StripRenderer struct {
	mesh      surfaces.Mesh
	plan      []surfaces.DrawCall
	transform func(r3.Vec) r3.Vec
	call      int
	skipped   int
	buf       triangle3Buffer
}

// NewStripRenderer returns a Renderer over the strips of m named by plan.
func NewStripRenderer(m surfaces.Mesh, plan []surfaces.DrawCall) (*StripRenderer, error) {
	for i, dc := range plan {
		if dc.Topology != surfaces.TriangleStrip {
			return nil, fmt.Errorf("draw call %d: unsupported topology %v", i, dc.Topology)
		}
		if dc.Offset < 0 || dc.Offset%surfaces.IndexSize != 0 || dc.Count < 0 ||
			dc.First()+dc.Count > len(m.Indices) {
			return nil, fmt.Errorf("draw call %d: %+v out of index buffer range [0,%d)", i, dc, len(m.Indices))
		}
	}
	return &StripRenderer{mesh: m, plan: plan}, nil
}

// NewMeshRenderer returns a Renderer over all parts of m.
func NewMeshRenderer(m surfaces.Mesh) (*StripRenderer, error) {
	plan, err := m.Plan()
	if err != nil {
		return nil, err
	}
	return NewStripRenderer(m, plan)
}

// SetTransform sets a function applied to every vertex position before
// triangles are emitted, typically a model transform. It must be called
// before the first ReadTriangles.
func (r *StripRenderer) SetTransform(f func(r3.Vec) r3.Vec) {
	r.transform = f
}

// Skipped returns the number of degenerate triangles dropped so far.
func (r *StripRenderer) Skipped() int { return r.skipped }

// ReadTriangles implements Renderer.
func (r *StripRenderer) ReadTriangles(t []Triangle3) (int, error) {
	for r.buf.Len() < len(t) && r.call < len(r.plan) {
		r.decode(r.plan[r.call])
		r.call++
		if r.call == len(r.plan) && r.skipped > 0 {
			surfaces.Logger().Debug("skipped degenerate strip triangles", slog.Int("count", r.skipped))
		}
	}
	n := r.buf.Read(t)
	if n == 0 && r.call == len(r.plan) {
		return 0, io.EOF
	}
	return n, nil
}

func (r *StripRenderer) decode(dc surfaces.DrawCall) {
	strip := r.mesh.Indices[dc.First() : dc.First()+dc.Count]
	for k := 0; k+2 < len(strip); k++ {
		a, b, c := strip[k], strip[k+1], strip[k+2]
		if k%2 == 1 {
			a, b = b, a
		}
		tri := Triangle3{V: [3]r3.Vec{
			r.pos(a), r.pos(b), r.pos(c),
		}}
		if tri.Degenerate(degenerateTol) {
			r.skipped++
			continue
		}
		r.buf.Write(tri)
	}
}

func (r *StripRenderer) pos(idx uint32) r3.Vec {
	p := r.mesh.Vertices[idx].Pos
	if r.transform != nil {
		p = r.transform(p)
	}
	return p
}
