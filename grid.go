package surfaces

import (
	"errors"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// FieldFunc maps a parameter pair (u,v) in [0,1]x[0,1] to a vector.
type FieldFunc func(u, v float64) r3.Vec

// GridSize returns the number of vertices and indices of a grid mesh
// with the given number of rows and columns of cells.
func GridSize(rows, cols int) (nVtx, nIdx int) {
	return (rows + 1) * (cols + 1), rows * 2 * (cols + 1)
}

func checkGrid(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return badResolution("grid needs at least 1 row and 1 column, got %dx%d", rows, cols)
	}
	if uint64(rows)+1 > maxVertices || uint64(cols)+1 > maxVertices ||
		(uint64(rows)+1)*(uint64(cols)+1) > maxVertices {
		return badResolution("grid %dx%d exceeds index range", rows, cols)
	}
	return nil
}

// MeshGrid tessellates the unit parameter square into rows x cols cells.
// Vertex i*(cols+1)+j is placed at pos(i/rows, j/cols). If normal is nil
// the mesh is generated without per-vertex normals.
//
// The index buffer holds one triangle strip per row of cells. Strip i
// alternates between vertex row i and row i+1:
//
//	i*(cols+1)+0, (i+1)*(cols+1)+0, i*(cols+1)+1, (i+1)*(cols+1)+1, ...
//
// Each strip has 2*(cols+1) indices. The first triangle of each strip is
// wound so its face normal points along dP/du x dP/dv.
func MeshGrid(rows, cols int, pos, normal FieldFunc) (Mesh, error) {
	if err := checkGrid(rows, cols); err != nil {
		return Mesh{}, err
	}
	if pos == nil {
		return Mesh{}, errors.New("nil position field")
	}
	nv, ni := GridSize(rows, cols)
	m := Mesh{
		Kind:       KindGrid,
		Res:        Resolution{Rows: rows, Cols: cols},
		Parts:      1,
		HasNormals: normal != nil,
		Vertices:   make([]Vertex, nv),
		Indices:    make([]uint32, 0, ni),
	}
	for i := 0; i <= rows; i++ {
		u := float64(i) / float64(rows)
		for j := 0; j <= cols; j++ {
			v := float64(j) / float64(cols)
			vtx := &m.Vertices[i*(cols+1)+j]
			vtx.Pos = pos(u, v)
			if normal != nil {
				vtx.Normal = normal(u, v)
			}
		}
	}
	m.Indices = appendGridStrips(m.Indices, rows, cols)
	m.mustValidate()
	Logger().Debug("grid remesh", slog.Int("rows", rows), slog.Int("cols", cols),
		slog.Int("vertices", nv), slog.Int("indices", ni))
	return m, nil
}

func appendGridStrips(dst []uint32, rows, cols int) []uint32 {
	stride := uint32(cols + 1)
	for i := uint32(0); i < uint32(rows); i++ {
		top := i * stride
		bottom := top + stride
		for j := uint32(0); j < stride; j++ {
			dst = append(dst, top+j, bottom+j)
		}
	}
	return dst
}

// Floor returns a flat square grid of res x res cells centered on the
// origin in the y=0 plane with sides of the given size. Rows advance
// along +z and columns along +x so triangles face +y. The mesh has no
// per-vertex normals: the (0,1,0) normal is uniform.
func Floor(res int, size float64) (Mesh, error) {
	if !(size > 0) || math.IsInf(size, 1) {
		return Mesh{}, errors.New("floor size must be positive and finite")
	}
	half := size / 2
	return MeshGrid(res, res, func(u, v float64) r3.Vec {
		return r3.Vec{X: -half + v*size, Z: -half + u*size}
	}, nil)
}
