package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	errorsmod "cosmossdk.io/errors"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// File is the YAML form of a scene description
type File struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Background  []float64      `yaml:"background"`
	Ambient     *ambientSpec   `yaml:"ambient"`
	Camera      *cameraSpec    `yaml:"camera"`
	Image       imageSpec      `yaml:"image"`
	Geometries  []geometrySpec `yaml:"geometries"`
	Lights      []lightSpec    `yaml:"lights"`
}

type ambientSpec struct {
	Color []float64 `yaml:"color"`
	KA    factor    `yaml:"ka"`
}

type cameraSpec struct {
	Position        []float64 `yaml:"position"`
	Forward         []float64 `yaml:"forward"`
	Up              []float64 `yaml:"up"`
	Width           float64   `yaml:"width"`
	Height          float64   `yaml:"height"`
	Distance        float64   `yaml:"distance"`
	AntiAliasing    int       `yaml:"aa"`
	Aperture        float64   `yaml:"aperture"`
	FocalDistance   float64   `yaml:"focal"`
	ApertureSamples int       `yaml:"aperture_samples"`
}

type imageSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type materialSpec struct {
	KD        factor `yaml:"kd"`
	KS        factor `yaml:"ks"`
	KR        factor `yaml:"kr"`
	KT        factor `yaml:"kt"`
	Shininess int    `yaml:"shininess"`
}

type geometrySpec struct {
	Type     string       `yaml:"type"`
	Emission []float64    `yaml:"emission"`
	Material materialSpec `yaml:"material"`

	// plane
	Point  []float64 `yaml:"point"`
	Normal []float64 `yaml:"normal"`
	// sphere
	Center []float64 `yaml:"center"`
	Radius float64   `yaml:"radius"`
	// triangle
	Vertices [][]float64 `yaml:"vertices"`
	// tube, cylinder
	Origin    []float64 `yaml:"origin"`
	Direction []float64 `yaml:"direction"`
	Height    float64   `yaml:"height"`
	Boundary  string    `yaml:"boundary"`
	// mesh
	File      string    `yaml:"file"`
	Scale     []float64 `yaml:"scale"`
	Translate []float64 `yaml:"translate"`
}

type lightSpec struct {
	Type       string    `yaml:"type"`
	Color      []float64 `yaml:"color"`
	Position   []float64 `yaml:"position"`
	Direction  []float64 `yaml:"direction"`
	KC         *float64  `yaml:"kc"`
	KL         float64   `yaml:"kl"`
	KQ         float64   `yaml:"kq"`
	NarrowBeam float64   `yaml:"narrow_beam"`
}

// factor accepts either a single number or a list of three channel values
type factor struct {
	core.Factor
}

func (f *factor) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		f.Factor = core.NewFactor(v)
		return nil
	}
	var channels []float64
	if err := node.Decode(&channels); err != nil {
		return err
	}
	if len(channels) != 3 {
		return errorsmod.Wrapf(core.ErrInvalidScene, "line %d: coefficient needs 1 or 3 values, got %d", node.Line, len(channels))
	}
	f.Factor = core.NewFactor3(channels[0], channels[1], channels[2])
	return nil
}

// LoadFile reads a YAML scene file; mesh paths are resolved relative to the file
func LoadFile(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errorsmod.Wrapf(core.ErrInvalidScene, "read %s: %v", path, err)
	}
	setup, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, errorsmod.Wrapf(err, "scene file %s", path)
	}
	return setup, nil
}

// Parse builds a scene from YAML; baseDir anchors relative mesh paths
func Parse(data []byte, baseDir string) (*Setup, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errorsmod.Wrapf(core.ErrInvalidScene, "yaml: %v", err)
	}

	s := New(f.Name)
	s.Description = f.Description
	if f.Background != nil {
		bg, err := toColor(f.Background)
		if err != nil {
			return nil, invalid(err, "background")
		}
		s.Background = bg
	}
	if f.Ambient != nil {
		c, err := toColor(f.Ambient.Color)
		if err != nil {
			return nil, invalid(err, "ambient")
		}
		s.Ambient = lights.NewAmbientLight(c, f.Ambient.KA.Factor)
	}

	for i, spec := range f.Geometries {
		g, err := spec.build(baseDir)
		if err != nil {
			return nil, invalid(err, "geometry %d (%s)", i, spec.Type)
		}
		s.Add(g)
	}
	for i, spec := range f.Lights {
		l, err := spec.build()
		if err != nil {
			return nil, invalid(err, "light %d (%s)", i, spec.Type)
		}
		s.AddLight(l)
	}

	camera, err := f.Camera.build()
	if err != nil {
		return nil, invalid(err, "camera")
	}

	setup := &Setup{Scene: s, Camera: camera, Width: f.Image.Width, Height: f.Image.Height}
	if setup.Width == 0 {
		setup.Width = DefaultWidth
	}
	if setup.Height == 0 {
		setup.Height = DefaultHeight
	}
	if setup.Width < 0 || setup.Height < 0 {
		return nil, errorsmod.Wrapf(core.ErrInvalidScene, "image size %dx%d", setup.Width, setup.Height)
	}
	return setup, nil
}

func (c *cameraSpec) build() (renderer.CameraConfig, error) {
	config := renderer.DefaultCameraConfig()
	if c == nil {
		return config, nil
	}

	var err error
	if c.Position != nil {
		if config.Position, err = toPoint(c.Position); err != nil {
			return config, errorsmod.Wrap(err, "position")
		}
	}
	if c.Forward != nil {
		if config.Forward, err = toVec(c.Forward); err != nil {
			return config, errorsmod.Wrap(err, "forward")
		}
	}
	if c.Up != nil {
		if config.Up, err = toVec(c.Up); err != nil {
			return config, errorsmod.Wrap(err, "up")
		}
	}
	if c.Width != 0 {
		config.ViewPlaneWidth = c.Width
	}
	if c.Height != 0 {
		config.ViewPlaneHeight = c.Height
	}
	if c.Distance != 0 {
		config.Distance = c.Distance
	}
	config.AntiAliasing = renderer.AntiAliasing{GridSize: c.AntiAliasing}
	config.DepthOfField = renderer.DepthOfField{
		ApertureSize:    c.Aperture,
		FocalDistance:   c.FocalDistance,
		ApertureSamples: c.ApertureSamples,
	}

	// Validate now so a bad camera is reported against the file
	if _, err := renderer.NewCamera(config); err != nil {
		return config, err
	}
	return config, nil
}

func (g geometrySpec) surface() (geometry.Surface, error) {
	s := geometry.Surface{
		Material: material.Material{
			KD:        g.Material.KD.Factor,
			KS:        g.Material.KS.Factor,
			KR:        g.Material.KR.Factor,
			KT:        g.Material.KT.Factor,
			Shininess: g.Material.Shininess,
		},
	}
	if g.Emission != nil {
		c, err := toColor(g.Emission)
		if err != nil {
			return s, errorsmod.Wrap(err, "emission")
		}
		s.Emission = c
	}
	return s, nil
}

func (g geometrySpec) build(baseDir string) (geometry.Intersectable, error) {
	s, err := g.surface()
	if err != nil {
		return nil, err
	}

	switch g.Type {
	case "plane":
		point, err := toPoint(g.Point)
		if err != nil {
			return nil, errorsmod.Wrap(err, "point")
		}
		normal, err := toVec(g.Normal)
		if err != nil {
			return nil, errorsmod.Wrap(err, "normal")
		}
		return geometry.NewPlane(point, normal, s)

	case "sphere":
		center, err := toPoint(g.Center)
		if err != nil {
			return nil, errorsmod.Wrap(err, "center")
		}
		return geometry.NewSphere(center, g.Radius, s)

	case "triangle":
		if len(g.Vertices) != 3 {
			return nil, errorsmod.Wrapf(core.ErrInvalidScene, "triangle needs 3 vertices, got %d", len(g.Vertices))
		}
		var v [3]core.Point3
		for i, raw := range g.Vertices {
			if v[i], err = toPoint(raw); err != nil {
				return nil, errorsmod.Wrapf(err, "vertex %d", i)
			}
		}
		return geometry.NewTriangle(v[0], v[1], v[2], s)

	case "tube", "cylinder":
		axis, err := g.axis()
		if err != nil {
			return nil, err
		}
		if g.Type == "tube" {
			return geometry.NewTube(axis, g.Radius, s)
		}
		cylinder, err := geometry.NewCylinder(axis, g.Radius, g.Height, s)
		if err != nil {
			return nil, err
		}
		switch g.Boundary {
		case "", geometry.CapBoundary.String():
		case geometry.LateralBoundary.String():
			return cylinder.WithBoundary(geometry.LateralBoundary), nil
		default:
			return nil, errorsmod.Wrapf(core.ErrInvalidScene, "unknown cylinder boundary %q", g.Boundary)
		}
		return cylinder, nil

	case "mesh":
		return g.mesh(baseDir, s)

	default:
		return nil, errorsmod.Wrapf(core.ErrInvalidScene, "unknown geometry type %q", g.Type)
	}
}

func (g geometrySpec) axis() (core.Ray, error) {
	origin, err := toPoint(g.Origin)
	if err != nil {
		return core.Ray{}, errorsmod.Wrap(err, "origin")
	}
	direction, err := toVec(g.Direction)
	if err != nil {
		return core.Ray{}, errorsmod.Wrap(err, "direction")
	}
	return core.NewRay(origin, direction)
}

func (l lightSpec) build() (lights.LightSource, error) {
	intensity, err := toColor(l.Color)
	if err != nil {
		return nil, errorsmod.Wrap(err, "color")
	}
	kC := 1.0
	if l.KC != nil {
		kC = *l.KC
	}

	switch l.Type {
	case "directional":
		direction, err := toVec(l.Direction)
		if err != nil {
			return nil, errorsmod.Wrap(err, "direction")
		}
		return lights.NewDirectionalLight(intensity, direction)

	case "point":
		position, err := toPoint(l.Position)
		if err != nil {
			return nil, errorsmod.Wrap(err, "position")
		}
		return lights.NewPointLight(intensity, position).WithAttenuation(kC, l.KL, l.KQ)

	case "spot":
		position, err := toPoint(l.Position)
		if err != nil {
			return nil, errorsmod.Wrap(err, "position")
		}
		direction, err := toVec(l.Direction)
		if err != nil {
			return nil, errorsmod.Wrap(err, "direction")
		}
		spot, err := lights.NewSpotLight(intensity, position, direction)
		if err != nil {
			return nil, err
		}
		if spot, err = spot.WithAttenuation(kC, l.KL, l.KQ); err != nil {
			return nil, err
		}
		if l.NarrowBeam != 0 {
			return spot.WithNarrowBeam(l.NarrowBeam)
		}
		return spot, nil

	default:
		return nil, errorsmod.Wrapf(core.ErrInvalidScene, "unknown light type %q", l.Type)
	}
}

// invalid attaches context to err and makes sure it is reported as ErrInvalidScene
func invalid(err error, format string, args ...interface{}) error {
	if errors.Is(err, core.ErrInvalidScene) {
		return errorsmod.Wrapf(err, format, args...)
	}
	return errorsmod.Wrapf(core.ErrInvalidScene, "%s: %v", fmt.Sprintf(format, args...), err)
}

func triple(values []float64) (x, y, z float64, err error) {
	if len(values) != 3 {
		return 0, 0, 0, errorsmod.Wrapf(core.ErrInvalidScene, "expected 3 values, got %d", len(values))
	}
	return values[0], values[1], values[2], nil
}

func toPoint(values []float64) (core.Point3, error) {
	x, y, z, err := triple(values)
	return core.NewPoint3(x, y, z), err
}

func toVec(values []float64) (core.Vec3, error) {
	x, y, z, err := triple(values)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(x, y, z)
}

func toColor(values []float64) (core.Color, error) {
	r, g, b, err := triple(values)
	return core.NewColor(r, g, b), err
}
