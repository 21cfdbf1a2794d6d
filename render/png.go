package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures a software rendered preview.
type View struct {
	// LookAt is the point the camera looks at.
	LookAt r3.Vec
	// Up is the camera's up direction.
	Up r3.Vec
	// Eye is the camera position.
	Eye r3.Vec
	// Near and Far are the clipping plane distances.
	Near, Far float64
	// Fovy is the vertical field of view in degrees.
	Fovy float64
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersampling factor. Values below 1 are treated as 1.
	Scale int
	// Light is the direction towards the light source.
	Light r3.Vec
	// Object and Background colors as hex strings.
	Color, Background string
}

// DefaultView returns a view of the scene from above and in front of the origin.
func DefaultView() View {
	return View{
		Up:         r3.Vec{Y: 1},
		Eye:        r3.Vec{X: 3, Y: 4, Z: 6},
		Near:       0.1,
		Far:        50,
		Fovy:       45,
		Width:      640,
		Height:     480,
		Scale:      2,
		Light:      r3.Vec{X: -0.75, Y: 1, Z: 0.25},
		Color:      "#468966",
		Background: "#FFF8E3",
	}
}

// RenderImage rasterizes model with a Phong shader as seen from view.
// Back faces are culled, so triangles must be wound counter-clockwise
// when seen from outside.
func RenderImage(model []Triangle3, view View) (image.Image, error) {
	if len(model) == 0 {
		return nil, errors.New("empty triangle slice")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return nil, errors.New("view needs positive image size")
	}
	scale := max(view.Scale, 1)
	tris := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		tris[i] = fauxgl.NewTriangleForPoints(fauxVec(t.V[0]), fauxVec(t.V[1]), fauxVec(t.V[2]))
	}
	mesh := fauxgl.NewTriangleMesh(tris)

	var (
		eye    = fauxVec(view.Eye)
		center = fauxVec(view.LookAt)
		up     = fauxVec(view.Up)
		light  = fauxVec(view.Light).Normalize()
	)
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.Cull = fauxgl.CullBack
	context.ClearColorBufferWith(fauxgl.HexColor(view.Background))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(view.Fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(view.Color)
	context.Shader = shader
	context.DrawMesh(mesh)

	img := context.Image()
	if scale > 1 {
		// Downsample for antialiasing.
		img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	}
	return img, nil
}

// CreatePNG renders model as seen from view into a PNG file at path.
func CreatePNG(path string, model []Triangle3, view View) error {
	img, err := RenderImage(model, view)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}

func fauxVec(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}
