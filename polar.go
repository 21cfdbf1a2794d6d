package surfaces

import (
	"errors"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// RingFunc returns the vertex at a distance radius from the polar axis
// and angle radians about it.
type RingFunc func(radius, angle float64) Vertex

// PolarSize returns the number of vertices and indices of a polar mesh.
func PolarSize(radialSteps, angularSteps int) (nVtx, nIdx int) {
	return 1 + radialSteps*angularSteps, angularSteps * (2*radialSteps + 1)
}

func checkPolar(radialSteps, angularSteps int) error {
	if radialSteps < 1 {
		return badResolution("polar mesh needs at least 1 radial step, got %d", radialSteps)
	}
	if angularSteps < 3 {
		return badResolution("polar mesh needs at least 3 angular steps, got %d", angularSteps)
	}
	if uint64(radialSteps) > maxVertices || uint64(angularSteps) > maxVertices ||
		uint64(radialSteps)*uint64(angularSteps)+1 > maxVertices {
		return badResolution("polar mesh %dx%d exceeds index range", radialSteps, angularSteps)
	}
	return nil
}

// polarIndex returns the vertex index of ring i on spoke j.
// Vertices of a spoke are contiguous, ordered outward from the pole.
func polarIndex(radialSteps, i, j int) uint32 {
	return uint32(1 + j*radialSteps + i)
}

// MeshPolar tessellates a disc-like surface around a pole.
// Vertex 0 is the pole. Ring i (0 <= i < radialSteps) lies at radius
// maxRadius*(i+1)/radialSteps and spoke j at angle 2*pi*j/angularSteps.
// The pole vertex is used verbatim: ring is never evaluated at radius 0.
//
// The index buffer holds one triangle strip per angular wedge. Strip j starts
// at the pole and alternates outward between spokes j and j+1, the last
// strip reusing spoke 0's vertices to close the seam. Each strip has
// 2*radialSteps+1 indices.
func MeshPolar(radialSteps, angularSteps int, maxRadius float64, pole Vertex, ring RingFunc) (Mesh, error) {
	if err := checkPolar(radialSteps, angularSteps); err != nil {
		return Mesh{}, err
	}
	if !(maxRadius > 0) || math.IsInf(maxRadius, 1) {
		return Mesh{}, errors.New("polar mesh radius must be positive and finite")
	}
	if ring == nil {
		return Mesh{}, errors.New("nil ring function")
	}
	nv, ni := PolarSize(radialSteps, angularSteps)
	m := Mesh{
		Kind:       KindPolar,
		Res:        Resolution{Rows: radialSteps, Cols: angularSteps},
		Parts:      1,
		HasNormals: true,
		Vertices:   make([]Vertex, nv),
		Indices:    make([]uint32, 0, ni),
	}
	m.Vertices[0] = pole
	for j := 0; j < angularSteps; j++ {
		angle := tau * float64(j) / float64(angularSteps)
		for i := 0; i < radialSteps; i++ {
			radius := maxRadius * float64(i+1) / float64(radialSteps)
			m.Vertices[polarIndex(radialSteps, i, j)] = ring(radius, angle)
		}
	}
	m.Indices = appendPolarStrips(m.Indices, radialSteps, angularSteps)
	m.mustValidate()
	Logger().Debug("polar remesh", slog.Int("radial", radialSteps), slog.Int("angular", angularSteps),
		slog.Int("vertices", nv), slog.Int("indices", ni))
	return m, nil
}

func appendPolarStrips(dst []uint32, radialSteps, angularSteps int) []uint32 {
	for j := 0; j < angularSteps; j++ {
		next := (j + 1) % angularSteps
		dst = append(dst, 0)
		for i := 0; i < radialSteps; i++ {
			dst = append(dst, polarIndex(radialSteps, i, j), polarIndex(radialSteps, i, next))
		}
	}
	return dst
}

// Revolution is a surface of revolution about the +Y axis whose height
// is a function of the distance to the axis.
type Revolution struct {
	// Height returns the surface height at radius r.
	Height func(r float64) float64
	// Slope returns dHeight/dr. If nil the derivative of Height
	// is approximated with finite differences.
	Slope func(r float64) float64
	// PoleNormal is the normal at r=0. The zero value means +Y.
	PoleNormal r3.Vec
}

// Pole returns the vertex on the axis of revolution.
func (rv Revolution) Pole() Vertex {
	n := rv.PoleNormal
	if n == (r3.Vec{}) {
		n = r3.Vec{Y: 1}
	}
	return Vertex{
		Pos:    r3.Vec{Y: rv.Height(0)},
		Normal: r3.Unit(n),
	}
}

// At evaluates the surface at the given radius and angle. The normal is
// computed in the profile plane as the perpendicular to the tangent (1, slope),
// then rotated with the position about +Y by angle.
// Rotating +X by a positive angle takes it towards -Z.
func (rv Revolution) At(radius, angle float64) Vertex {
	profile := r2.Vec{X: radius, Y: rv.Height(radius)}
	n2 := r2.Unit(r2.Vec{X: -rv.slope(radius), Y: 1})
	rot := r3.NewRotation(angle, r3.Vec{Y: 1})
	return Vertex{
		Pos:    rot.Rotate(r3.Vec{X: profile.X, Y: profile.Y}),
		Normal: r3.Unit(rot.Rotate(r3.Vec{X: n2.X, Y: n2.Y})),
	}
}

func (rv Revolution) slope(r float64) float64 {
	if rv.Slope != nil {
		return rv.Slope(r)
	}
	settings := fd.Settings{Formula: fd.Central}
	if r < 1e-4 {
		// Stay on the r >= 0 side of the axis.
		settings.Formula = fd.Forward
	}
	return fd.Derivative(rv.Height, r, &settings)
}

// MeshRevolution tessellates rv out to maxRadius with MeshPolar.
func MeshRevolution(radialSteps, angularSteps int, maxRadius float64, rv Revolution) (Mesh, error) {
	if rv.Height == nil {
		return Mesh{}, errors.New("nil revolution height")
	}
	if err := checkPolar(radialSteps, angularSteps); err != nil {
		return Mesh{}, err
	}
	return MeshPolar(radialSteps, angularSteps, maxRadius, rv.Pole(), rv.At)
}

// CircularSurface returns the rippled surface y = r*sin(r)/(1+r).
func CircularSurface() Revolution {
	return Revolution{
		Height: func(r float64) float64 {
			return r * math.Sin(r) / (1 + r)
		},
		Slope: func(r float64) float64 {
			sin, cos := math.Sincos(r)
			return (sin + (r*r+r)*cos) / ((1 + r) * (1 + r))
		},
	}
}
