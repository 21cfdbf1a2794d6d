// Package patch builds sets of bicubic Bezier patches from a few canonical
// patches and symmetry rules, and tessellates them into strip meshes.
package patch

import (
	"errors"
	"fmt"

	"github.com/soypat/surfaces/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Patch dimensions. Control points of a patch are stored row major:
// control point k lies on row k/4 (the u direction) and column k%4 (v).
const (
	Width  = 4
	Height = 4
	Dim    = 3
	// Size is the number of control points of a patch.
	Size = Width * Height
)

// ErrBadPatch is wrapped by errors describing malformed patch input.
var ErrBadPatch = errors.New("bad patch")

// Patch is a 4x4 bicubic Bezier control grid given as indices
// into a control point pool.
type Patch [Size]int

// Surface is an immutable set of patches and the control point pool
// they reference. It is safe for concurrent use.
type Surface struct {
	points  []r3.Vec
	patches []Patch
}

// NewSurface returns a Surface holding copies of points and patches.
// Every patch index must reference an existing point.
func NewSurface(points []r3.Vec, patches []Patch) (*Surface, error) {
	if err := checkPatches(patches, len(points)); err != nil {
		return nil, err
	}
	for i, p := range points {
		if !d3.IsFinite(p) {
			return nil, fmt.Errorf("%w: control point %d is not finite: %v", ErrBadPatch, i, p)
		}
	}
	return &Surface{
		points:  append([]r3.Vec(nil), points...),
		patches: append([]Patch(nil), patches...),
	}, nil
}

func checkPatches(patches []Patch, npoints int) error {
	if len(patches) == 0 {
		return fmt.Errorf("%w: no patches", ErrBadPatch)
	}
	for i, p := range patches {
		for k, idx := range p {
			if idx < 0 || idx >= npoints {
				return fmt.Errorf("%w: patch %d point %d references %d, pool has %d points", ErrBadPatch, i, k, idx, npoints)
			}
		}
	}
	return nil
}

// NumPatches returns the number of patches in the surface.
func (s *Surface) NumPatches() int { return len(s.patches) }

// NumPoints returns the size of the control point pool.
func (s *Surface) NumPoints() int { return len(s.points) }

// Point returns control point i of the pool.
func (s *Surface) Point(i int) r3.Vec { return s.points[i] }

// Patch returns the indices of patch i.
func (s *Surface) Patch(i int) Patch { return s.patches[i] }

// ControlGrid returns the control points of patch i.
func (s *Surface) ControlGrid(i int) (grid [Size]r3.Vec) {
	for k, idx := range s.patches[i] {
		grid[k] = s.points[idx]
	}
	return grid
}

// AppendFlat appends the control points of every patch, in patch order,
// as Dim coordinates each. This is the layout patch evaluators take along
// with Width, Height, Dim and NumPatches.
func (s *Surface) AppendFlat(dst []float64) []float64 {
	for i := range s.patches {
		grid := s.ControlGrid(i)
		for _, p := range grid {
			dst = append(dst, p.X, p.Y, p.Z)
		}
	}
	return dst
}
