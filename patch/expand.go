package patch

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Symmetry is the rule used to replicate a canonical patch.
type Symmetry uint8

const (
	_ Symmetry = iota
	// Rotate4 emits four copies rotated by 0, 90, 180 and 270 degrees
	// about the +Y axis.
	Rotate4
	// MirrorX emits the patch and its reflection across the x=0 plane.
	MirrorX
	// MirrorY emits the patch and its reflection across the y=0 plane.
	MirrorY
	// MirrorZ emits the patch and its reflection across the z=0 plane.
	MirrorZ
)

func (s Symmetry) String() string {
	switch s {
	case Rotate4:
		return "rotate4"
	case MirrorX:
		return "mirrorX"
	case MirrorY:
		return "mirrorY"
	case MirrorZ:
		return "mirrorZ"
	}
	return fmt.Sprintf("Symmetry(%d)", uint8(s))
}

// Copies returns the number of patches emitted per canonical patch.
func (s Symmetry) Copies() int {
	switch s {
	case Rotate4:
		return 4
	case MirrorX, MirrorY, MirrorZ:
		return 2
	}
	return 0
}

// Expand replicates each canonical patch according to its entry in plan
// and returns the resulting Surface. Every emitted patch gets its own block
// of 16 control points; no point is shared between patches. Copies of a
// canonical patch are emitted consecutively, in canonical patch order.
//
// Mirrored copies have the columns of each row reversed so that the
// reflected patch keeps the winding, and hence the facing, of the original.
func Expand(canonical []Patch, points []r3.Vec, plan []Symmetry) (*Surface, error) {
	if len(plan) != len(canonical) {
		return nil, fmt.Errorf("%w: %d symmetries for %d canonical patches", ErrBadPatch, len(plan), len(canonical))
	}
	if err := checkPatches(canonical, len(points)); err != nil {
		return nil, err
	}
	total := 0
	for i, sym := range plan {
		n := sym.Copies()
		if n == 0 {
			return nil, fmt.Errorf("%w: patch %d has invalid symmetry %v", ErrBadPatch, i, sym)
		}
		total += n
	}
	s := &Surface{
		points:  make([]r3.Vec, 0, total*Size),
		patches: make([]Patch, 0, total),
	}
	for i, cp := range canonical {
		switch sym := plan[i]; sym {
		case Rotate4:
			for step := 0; step < 4; step++ {
				s.emit(func(k int) r3.Vec { return RotateStep(points[cp[k]], step) })
			}
		default:
			s.emit(func(k int) r3.Vec { return points[cp[k]] })
			s.emit(func(k int) r3.Vec { return mirror(points[cp[MirrorIndex(k)]], sym) })
		}
	}
	return s, nil
}

// emit appends a fresh block of control points and a patch referencing them in order.
func (s *Surface) emit(point func(k int) r3.Vec) {
	base := len(s.points)
	var p Patch
	for k := range p {
		s.points = append(s.points, point(k))
		p[k] = base + k
	}
	s.patches = append(s.patches, p)
}

// RotateStep rotates p by step quarter turns about the +Y axis.
// A quarter turn maps (x,z) to (z,-x).
func RotateStep(p r3.Vec, step int) r3.Vec {
	if step&2 != 0 {
		p.X, p.Z = -p.X, -p.Z
	}
	if step&1 != 0 {
		p.X, p.Z = p.Z, -p.X
	}
	return p
}

// MirrorIndex maps control point k of a patch to the point at the
// opposite end of the same row. It is its own inverse.
func MirrorIndex(k int) int {
	return (k &^ 3) + (3 - (k & 3))
}

func mirror(p r3.Vec, sym Symmetry) r3.Vec {
	switch sym {
	case MirrorX:
		p.X = -p.X
	case MirrorY:
		p.Y = -p.Y
	case MirrorZ:
		p.Z = -p.Z
	default:
		panic("bug: mirror called with " + sym.String())
	}
	return p
}
