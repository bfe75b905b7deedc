package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Background  core.Color
	Ambient     lights.AmbientLight
	Geometries  *geometry.Geometries
	Lights      []lights.LightSource
}

// New creates an empty scene with a black background and no ambient light
func New(name string) *Scene {
	return &Scene{
		Name:       name,
		Background: core.Black,
		Ambient:    lights.NoAmbient,
		Geometries: geometry.NewGeometries(),
	}
}

// Add appends geometries to the scene
func (s *Scene) Add(geometries ...geometry.Intersectable) *Scene {
	s.Geometries.Add(geometries...)
	return s
}

// AddLight appends light sources to the scene
func (s *Scene) AddLight(sources ...lights.LightSource) *Scene {
	s.Lights = append(s.Lights, sources...)
	return s
}

// GetGeometries returns the root of the geometry tree
func (s *Scene) GetGeometries() geometry.Intersectable { return s.Geometries }

// GetLights returns the light sources
func (s *Scene) GetLights() []lights.LightSource { return s.Lights }

// GetAmbient returns the ambient light
func (s *Scene) GetAmbient() lights.AmbientLight { return s.Ambient }

// GetBackground returns the color of rays that hit nothing
func (s *Scene) GetBackground() core.Color { return s.Background }

// Setup bundles a scene with the camera and resolution it is meant to be rendered with
type Setup struct {
	Scene  *Scene
	Camera renderer.CameraConfig
	Width  int
	Height int
}

// DefaultWidth and DefaultHeight are used when a scene does not choose a resolution
const (
	DefaultWidth  = 500
	DefaultHeight = 500
)
