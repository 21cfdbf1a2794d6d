package patch

import (
	"fmt"
	"log/slog"

	"github.com/soypat/surfaces"
	"gonum.org/v1/gonum/spatial/r3"
)

// Derivatives whose cross product is smaller than degenerateRatio times the
// one at the patch centre are treated as parallel.
const (
	degenerateRatio = 0.05
	degenerateNudge = 1e-2
)

// Tessellate evaluates every patch of s on a uRes x vRes grid and merges the
// results into a single mesh with one part per patch, in patch order.
// Vertex normals point along dP/dv x dP/du, which for the teapot is outwards.
func Tessellate(s *Surface, uRes, vRes int) (surfaces.Mesh, error) {
	if s == nil || len(s.patches) == 0 {
		return surfaces.Mesh{}, fmt.Errorf("%w: empty surface", ErrBadPatch)
	}
	meshes := make([]surfaces.Mesh, len(s.patches))
	for i := range s.patches {
		grid := s.ControlGrid(i)
		m, err := TessellatePatch(&grid, uRes, vRes)
		if err != nil {
			return surfaces.Mesh{}, err
		}
		meshes[i] = m
	}
	surfaces.Logger().Debug("tessellated patches", slog.Int("patches", len(meshes)),
		slog.Int("u", uRes), slog.Int("v", vRes))
	return surfaces.Merge(meshes...)
}

// TessellatePart tessellates the patches of s in the range [first, first+n).
func TessellatePart(s *Surface, first, n, uRes, vRes int) (surfaces.Mesh, error) {
	if s == nil || first < 0 || n < 1 || first+n > len(s.patches) {
		return surfaces.Mesh{}, fmt.Errorf("%w: patch range [%d,%d) out of bounds", ErrBadPatch, first, first+n)
	}
	sub := &Surface{points: s.points, patches: s.patches[first : first+n]}
	return Tessellate(sub, uRes, vRes)
}

// TessellatePatch evaluates a single bicubic patch on a uRes x vRes grid.
// Mesh rows follow u and columns follow v in reverse, so that the strip
// triangles face the same way as Normal.
func TessellatePatch(grid *[Size]r3.Vec, uRes, vRes int) (surfaces.Mesh, error) {
	return surfaces.MeshGrid(uRes, vRes,
		func(u, v float64) r3.Vec {
			p, _, _ := Eval(grid, u, 1-v)
			return p
		},
		func(u, v float64) r3.Vec {
			return Normal(grid, u, 1-v)
		},
	)
}

// Eval returns the point of the patch at (u,v) and its partial derivatives.
func Eval(grid *[Size]r3.Vec, u, v float64) (p, du, dv r3.Vec) {
	bu, dbu := bernstein(u)
	bv, dbv := bernstein(v)
	for i := 0; i < Height; i++ {
		for j := 0; j < Width; j++ {
			c := grid[i*Width+j]
			p = r3.Add(p, r3.Scale(bu[i]*bv[j], c))
			du = r3.Add(du, r3.Scale(dbu[i]*bv[j], c))
			dv = r3.Add(dv, r3.Scale(bu[i]*dbv[j], c))
		}
	}
	return p, du, dv
}

// Normal returns the unit normal dP/dv x dP/du of the patch at (u,v).
// Where a row or column of control points collapses, or nearly collapses,
// to a single point the derivatives are close to parallel; the normal is
// then taken a small step into the patch interior.
func Normal(grid *[Size]r3.Vec, u, v float64) r3.Vec {
	_, du, dv := Eval(grid, u, v)
	n := r3.Cross(dv, du)
	if r3.Norm(n) < degenerateRatio*centreNorm(grid) {
		_, du, dv = Eval(grid, inward(u, degenerateNudge), inward(v, degenerateNudge))
		n = r3.Cross(dv, du)
	}
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

func centreNorm(grid *[Size]r3.Vec) float64 {
	_, du, dv := Eval(grid, 0.5, 0.5)
	return r3.Norm(r3.Cross(dv, du))
}

func inward(t, step float64) float64 {
	if t > 0.5 {
		return t - step
	}
	return t + step
}

// bernstein returns the cubic Bernstein basis and its derivative at t.
func bernstein(t float64) (b, db [4]float64) {
	s := 1 - t
	b = [4]float64{s * s * s, 3 * t * s * s, 3 * t * t * s, t * t * t}
	db = [4]float64{-3 * s * s, 3*s*s - 6*t*s, 6*t*s - 3*t*t, 3 * t * t}
	return b, db
}
