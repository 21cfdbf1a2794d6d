package surfaces

import (
	"fmt"
)

// Topology is the primitive topology of a draw call.
type Topology uint8

const (
	_ Topology = iota
	// TriangleStrip draws a triangle for every index after the second,
	// formed with the two indices preceding it.
	TriangleStrip
)

func (t Topology) String() string {
	if t == TriangleStrip {
		return "triangle strip"
	}
	return fmt.Sprintf("Topology(%d)", uint8(t))
}

// IndexSize is the size in bytes of a single index in the uploaded index buffer.
const IndexSize = 4

// DrawCall describes a single indexed draw over an uploaded index buffer.
type DrawCall struct {
	Topology Topology
	// Count is the number of indices drawn.
	Count int
	// Offset is the byte offset of the first index in the index buffer.
	Offset int
}

// First returns the position of the first index of the call in the index buffer.
func (dc DrawCall) First() int { return dc.Offset / IndexSize }

// PlanGrid returns the draw calls for a grid mesh: one strip of
// 2*(cols+1) indices per row of cells.
func PlanGrid(res Resolution) ([]DrawCall, error) {
	return PlanParts(KindGrid, res, 0, 1)
}

// PlanPolar returns the draw calls for a polar mesh: one strip of
// 2*radialSteps+1 indices per angular step.
func PlanPolar(res Resolution) ([]DrawCall, error) {
	return PlanParts(KindPolar, res, 0, 1)
}

// Plan returns the draw calls for a single mesh of the given kind and resolution.
func Plan(kind MeshKind, res Resolution) ([]DrawCall, error) {
	return PlanParts(kind, res, 0, 1)
}

// PlanPatches returns the draw calls for n grid meshes starting at part first
// of a merged patch mesh.
func PlanPatches(res Resolution, first, n int) ([]DrawCall, error) {
	return PlanParts(KindGrid, res, first, n)
}

// PlanParts returns the draw calls for n consecutive parts of a merged mesh,
// starting at part first. The plan depends only on kind and resolution and
// slices the index buffer into strips without gaps or overlap.
func PlanParts(kind MeshKind, res Resolution, first, n int) ([]DrawCall, error) {
	var strips, stripLen int
	switch kind {
	case KindGrid:
		if err := checkGrid(res.Rows, res.Cols); err != nil {
			return nil, err
		}
		strips, stripLen = res.Rows, 2*(res.Cols+1)
	case KindPolar:
		if err := checkPolar(res.Rows, res.Cols); err != nil {
			return nil, err
		}
		strips, stripLen = res.Cols, 2*res.Rows+1
	default:
		return nil, fmt.Errorf("cannot plan draw calls for %v", kind)
	}
	if first < 0 || n < 0 {
		return nil, fmt.Errorf("negative part range [%d,+%d)", first, n)
	}
	partVtx, partIdx := Sizes(kind, res)
	maxParts := uint64(maxVertices) / uint64(partVtx)
	if uint64(first) > maxParts || uint64(n) > maxParts-uint64(first) {
		return nil, badResolution("part range [%d,+%d) exceeds index range of %d parts", first, n, maxParts)
	}
	plan := make([]DrawCall, 0, strips*n)
	for p := first; p < first+n; p++ {
		base := p * partIdx
		for s := 0; s < strips; s++ {
			plan = append(plan, DrawCall{
				Topology: TriangleStrip,
				Count:    stripLen,
				Offset:   (base + s*stripLen) * IndexSize,
			})
		}
	}
	return plan, nil
}
