package surfaces

import (
	"errors"
	"fmt"

	"github.com/soypat/surfaces/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a single mesh vertex. Normal is the zero vector
// for meshes generated without per-vertex normals.
type Vertex struct {
	Pos    r3.Vec
	Normal r3.Vec
}

// MeshKind identifies the strip layout of a Mesh's index buffer.
type MeshKind uint8

const (
	_ MeshKind = iota
	// KindGrid meshes have one triangle strip per row pair.
	KindGrid
	// KindPolar meshes have one triangle strip per angular wedge,
	// each strip starting at the pole vertex.
	KindPolar
)

func (k MeshKind) String() string {
	switch k {
	case KindGrid:
		return "grid"
	case KindPolar:
		return "polar"
	}
	return fmt.Sprintf("MeshKind(%d)", uint8(k))
}

// Resolution is the tessellation resolution of a mesh.
// For grid meshes Rows and Cols are the number of cells along u and v.
// For polar meshes Rows is the number of radial steps (rings) and
// Cols is the number of angular steps (spokes).
type Resolution struct {
	Rows int
	Cols int
}

// Mesh is a vertex buffer with an index buffer organized as consecutive
// triangle strips. A Mesh is never patched after creation: a change of
// Resolution requires generating a new Mesh.
type Mesh struct {
	Kind MeshKind
	Res  Resolution
	// Parts is the number of equally sized sub-meshes laid out back to back
	// in the buffers. It is 1 for meshes returned by the meshers.
	Parts      int
	HasNormals bool
	Vertices   []Vertex
	Indices    []uint32
}

// Sizes returns the vertex and index count of a single mesh part
// of the given kind and resolution.
func Sizes(kind MeshKind, res Resolution) (nVtx, nIdx int) {
	switch kind {
	case KindGrid:
		return GridSize(res.Rows, res.Cols)
	case KindPolar:
		return PolarSize(res.Rows, res.Cols)
	}
	return 0, 0
}

// Validate checks the mesh buffers are consistent with its kind and resolution
// and that every index references an existing vertex.
func (m Mesh) Validate() error {
	if m.Parts < 1 {
		return errors.New("mesh has no parts")
	}
	nv, ni := Sizes(m.Kind, m.Res)
	if nv == 0 {
		return fmt.Errorf("invalid mesh kind %v", m.Kind)
	}
	if len(m.Vertices) != nv*m.Parts {
		return fmt.Errorf("%v mesh has %d vertices, expected %d", m.Kind, len(m.Vertices), nv*m.Parts)
	}
	if len(m.Indices) != ni*m.Parts {
		return fmt.Errorf("%v mesh has %d indices, expected %d", m.Kind, len(m.Indices), ni*m.Parts)
	}
	nvtx := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= nvtx {
			return fmt.Errorf("index %d at position %d out of range [0,%d)", idx, i, nvtx)
		}
	}
	return nil
}

// mustValidate panics if the mesh is inconsistent. Meshers call it on
// their output: a failure here is a bug in the index arithmetic, not bad input.
func (m Mesh) mustValidate() {
	if err := m.Validate(); err != nil {
		panic("bug: " + err.Error())
	}
}

// Plan returns the draw calls needed to render all parts of the mesh.
func (m Mesh) Plan() ([]DrawCall, error) {
	return PlanParts(m.Kind, m.Res, 0, m.Parts)
}

// Stride returns the number of float32 values per vertex in the
// interleaved layout produced by AppendInterleaved.
func (m Mesh) Stride() int {
	if m.HasNormals {
		return 6
	}
	return 3
}

// AppendInterleaved appends the vertex data to dst in the flat upload layout:
// x,y,z position followed by nx,ny,nz normal if the mesh has normals.
func (m Mesh) AppendInterleaved(dst []float32) []float32 {
	if cap(dst)-len(dst) < len(m.Vertices)*m.Stride() {
		grown := make([]float32, len(dst), len(dst)+len(m.Vertices)*m.Stride())
		copy(grown, dst)
		dst = grown
	}
	for _, v := range m.Vertices {
		dst = append(dst, float32(v.Pos.X), float32(v.Pos.Y), float32(v.Pos.Z))
		if m.HasNormals {
			dst = append(dst, float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z))
		}
	}
	return dst
}

// AppendIndices appends a copy of the index buffer to dst.
func (m Mesh) AppendIndices(dst []uint32) []uint32 {
	return append(dst, m.Indices...)
}

// Bounds returns the bounding box of the mesh vertices.
func (m Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	bb := d3.Box{Min: m.Vertices[0].Pos, Max: m.Vertices[0].Pos}
	for _, v := range m.Vertices[1:] {
		bb = bb.Include(v.Pos)
	}
	return r3.Box(bb)
}

// Merge lays out meshes of identical kind and resolution back to back
// in a single pair of buffers. Indices of each mesh are offset by the number
// of vertices preceding it so the result can be drawn with PlanParts.
// Every input mesh must pass Validate.
func Merge(meshes ...Mesh) (Mesh, error) {
	if len(meshes) == 0 {
		return Mesh{}, errors.New("no meshes to merge")
	}
	first := meshes[0]
	var nv, ni, parts int
	for i, m := range meshes {
		if err := m.Validate(); err != nil {
			return Mesh{}, fmt.Errorf("mesh %d: %w", i, err)
		}
		if m.Kind != first.Kind || m.Res != first.Res || m.HasNormals != first.HasNormals {
			return Mesh{}, fmt.Errorf("mesh %d layout (%v %+v normals=%t) differs from mesh 0 (%v %+v normals=%t)",
				i, m.Kind, m.Res, m.HasNormals, first.Kind, first.Res, first.HasNormals)
		}
		nv += len(m.Vertices)
		ni += len(m.Indices)
		parts += m.Parts
	}
	if uint64(nv) > maxVertices {
		return Mesh{}, fmt.Errorf("%w: merged vertex count %d exceeds index range", ErrBadResolution, nv)
	}
	merged := Mesh{
		Kind:       first.Kind,
		Res:        first.Res,
		Parts:      parts,
		HasNormals: first.HasNormals,
		Vertices:   make([]Vertex, 0, nv),
		Indices:    make([]uint32, 0, ni),
	}
	for _, m := range meshes {
		base := uint32(len(merged.Vertices))
		merged.Vertices = append(merged.Vertices, m.Vertices...)
		for _, idx := range m.Indices {
			merged.Indices = append(merged.Indices, base+idx)
		}
	}
	merged.mustValidate()
	return merged, nil
}
