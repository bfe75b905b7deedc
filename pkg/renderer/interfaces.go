package renderer

import (
	"context"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetGeometries() geometry.Intersectable
	GetLights() []lights.LightSource
	GetAmbient() lights.AmbientLight
	GetBackground() core.Color
}

// ImageSink receives one color per pixel of an Nx × Ny raster.
// WritePixel is called concurrently for distinct pixels and never twice for the same pixel.
type ImageSink interface {
	Nx() int
	Ny() int
	WritePixel(x, y int, color core.Color)
	WriteToImage(ctx context.Context) error
}

// RayTracer computes the color seen along a ray
type RayTracer interface {
	TraceRay(ray core.Ray) core.Color
}
