package scene

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/surfaces"
)

// MinMeshRes is the smallest mesh resolution accepted for the floor and
// circular surface. The circular surface needs three angular steps.
const MinMeshRes = 3

// Config holds the tunable parameters of the scene.
type Config struct {
	// MeshRes is the resolution of the floor (cells per side) and of the
	// circular surface (radial and angular steps).
	MeshRes int `toml:"mesh_res"`
	// Teapot patch tessellation resolution.
	TeapotURes int `toml:"teapot_u_res"`
	TeapotVRes int `toml:"teapot_v_res"`
	// FloorSize is the side length of the square floor.
	FloorSize float64 `toml:"floor_size"`
	// CircularRadius is the radius of the circular surface before scaling.
	CircularRadius float64      `toml:"circular_radius"`
	Window         WindowConfig `toml:"window"`
}

// WindowConfig configures the viewer window.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// DefaultConfig returns the configuration used for fields absent from a config file.
func DefaultConfig() Config {
	return Config{
		MeshRes:        8,
		TeapotURes:     8,
		TeapotVRes:     8,
		FloorSize:      10,
		CircularRadius: 2.7 * 2 * math.Pi,
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "surfaces",
		},
	}
}

// Validate checks the configuration describes a scene that can be meshed.
func (c Config) Validate() error {
	if c.MeshRes < MinMeshRes {
		return fmt.Errorf("%w: mesh_res must be at least %d, got %d", surfaces.ErrBadResolution, MinMeshRes, c.MeshRes)
	}
	if c.TeapotURes < 1 || c.TeapotVRes < 1 {
		return fmt.Errorf("%w: teapot resolution must be positive, got %dx%d", surfaces.ErrBadResolution, c.TeapotURes, c.TeapotVRes)
	}
	if !(c.FloorSize > 0) || math.IsInf(c.FloorSize, 0) {
		return fmt.Errorf("floor_size must be positive and finite, got %g", c.FloorSize)
	}
	if !(c.CircularRadius > 0) || math.IsInf(c.CircularRadius, 0) {
		return fmt.Errorf("circular_radius must be positive and finite, got %g", c.CircularRadius)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// ParseConfig decodes a TOML document on top of DefaultConfig.
// Unknown keys are an error.
func ParseConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the TOML file at path.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(b)
}

// TOML encodes the configuration as a TOML document.
func (c Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
