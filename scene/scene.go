// Package scene assembles the demo scene: a square floor, a circular surface
// of revolution and the Utah teapot, each with its model transform.
package scene

import (
	"fmt"
	"log/slog"

	"github.com/soypat/surfaces"
	"github.com/soypat/surfaces/internal/d3"
	"github.com/soypat/surfaces/patch"
	"github.com/soypat/surfaces/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// Object is a mesh placed in the scene.
type Object struct {
	Name  string
	Mesh  surfaces.Mesh
	Model d3.Transform
	// Color is the flat RGB color the object is drawn with.
	Color [3]float32
}

// Plan returns the draw calls covering the whole object mesh.
func (o *Object) Plan() ([]surfaces.DrawCall, error) {
	return o.Mesh.Plan()
}

// ModelMatrix returns the object's model transform in column-major order.
func (o *Object) ModelMatrix() [16]float32 {
	return o.Model.ColumnMajor32()
}

// Bounds returns the world space bounding box of the object.
func (o *Object) Bounds() d3.Box {
	bb := d3.Box(o.Mesh.Bounds())
	if o.Model == (d3.Transform{}) {
		return bb
	}
	var world d3.Box
	for i := 0; i < 8; i++ {
		c := bb.Min
		if i&1 != 0 {
			c.X = bb.Max.X
		}
		if i&2 != 0 {
			c.Y = bb.Max.Y
		}
		if i&4 != 0 {
			c.Z = bb.Max.Z
		}
		c = o.Model.Transform(c)
		if i == 0 {
			world = d3.Box{Min: c, Max: c}
		} else {
			world = world.Include(c)
		}
	}
	return world
}

// Renderer returns a triangle Renderer over the object in world coordinates.
func (o *Object) Renderer() (*render.StripRenderer, error) {
	r, err := render.NewMeshRenderer(o.Mesh)
	if err != nil {
		return nil, err
	}
	if o.Model != (d3.Transform{}) {
		r.SetTransform(o.Model.Transform)
	}
	return r, nil
}

// Scene holds the objects of the demo. The floor and circular surface are
// regenerated by Remesh; the teapot only changes with SetTeapotRes.
type Scene struct {
	cfg      Config
	surface  *patch.Surface
	Floor    Object
	Circular Object
	Teapot   Object
}

// PartColor returns the color teapot part p is drawn with.
func PartColor(p patch.Part) [3]float32 {
	switch p {
	case patch.Lid:
		return [3]float32{0.4, 0.5, 0.8}
	case patch.Handle, patch.Spout:
		return [3]float32{0.8, 0.6, 0.4}
	}
	return [3]float32{0.6, 0.7, 0.9}
}

// Build meshes every object of the scene described by cfg.
func Build(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{
		cfg:     cfg,
		surface: patch.Teapot(),
		Floor: Object{
			Name:  "floor",
			Color: [3]float32{1, 0.4, 0.4},
		},
		Circular: Object{
			Name: "circular",
			// Centre in the front right quadrant, raised and shrunk to fit the floor.
			Model: d3.Translation(r3.Vec{X: 2.5, Y: 1, Z: 2.5}).Mul(d3.Scaling(r3.Vec{X: 1. / 5, Y: 1, Z: 1. / 5})),
			Color: [3]float32{1, 0.8, 0.4},
		},
		Teapot: Object{
			Name:  "teapot",
			Model: d3.Translation(r3.Vec{X: -2, Z: -2}).Mul(d3.Scaling(d3.Elem(0.6))),
			Color: PartColor(patch.Body),
		},
	}
	if err := s.Remesh(cfg.MeshRes); err != nil {
		return nil, err
	}
	if err := s.SetTeapotRes(cfg.TeapotURes, cfg.TeapotVRes); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the configuration the scene currently reflects.
func (s *Scene) Config() Config { return s.cfg }

// Remesh regenerates the floor and circular surface at resolution meshRes.
// On error the scene is left unchanged.
func (s *Scene) Remesh(meshRes int) error {
	if meshRes < MinMeshRes {
		return fmt.Errorf("%w: mesh resolution must be at least %d, got %d", surfaces.ErrBadResolution, MinMeshRes, meshRes)
	}
	floor, err := surfaces.Floor(meshRes, s.cfg.FloorSize)
	if err != nil {
		return err
	}
	circ, err := surfaces.MeshRevolution(meshRes, meshRes, s.cfg.CircularRadius, surfaces.CircularSurface())
	if err != nil {
		return err
	}
	s.Floor.Mesh = floor
	s.Circular.Mesh = circ
	s.cfg.MeshRes = meshRes
	surfaces.Logger().Info("remeshed scene", slog.Int("mesh_res", meshRes))
	return nil
}

// SetTeapotRes tessellates the teapot at uRes x vRes per patch.
// On error the scene is left unchanged.
func (s *Scene) SetTeapotRes(uRes, vRes int) error {
	m, err := patch.Tessellate(s.surface, uRes, vRes)
	if err != nil {
		return err
	}
	s.Teapot.Mesh = m
	s.cfg.TeapotURes, s.cfg.TeapotVRes = uRes, vRes
	return nil
}

// PartPlan returns the draw calls of one teapot part.
func (s *Scene) PartPlan(p patch.Part) ([]surfaces.DrawCall, error) {
	first, n := p.Range()
	return surfaces.PlanPatches(s.Teapot.Mesh.Res, first, n)
}

// Objects returns the scene objects in drawing order.
func (s *Scene) Objects() []*Object {
	return []*Object{&s.Floor, &s.Circular, &s.Teapot}
}

// Bounds returns the world space bounding box enclosing every object.
func (s *Scene) Bounds() d3.Box {
	objs := s.Objects()
	bb := objs[0].Bounds()
	for _, o := range objs[1:] {
		bb = bb.Extend(o.Bounds())
	}
	return bb
}

// Renderer returns a Renderer over every triangle of the scene in world coordinates.
func (s *Scene) Renderer() (render.Renderer, error) {
	var rs []render.Renderer
	for _, o := range s.Objects() {
		r, err := o.Renderer()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.Name, err)
		}
		rs = append(rs, r)
	}
	return render.MultiRenderer(rs...), nil
}
