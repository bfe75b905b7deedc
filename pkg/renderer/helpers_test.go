package renderer

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// testScene is a minimal Scene for renderer tests
type testScene struct {
	root       geometry.Intersectable
	lights     []lights.LightSource
	ambient    lights.AmbientLight
	background core.Color
}

func (s *testScene) GetGeometries() geometry.Intersectable { return s.root }
func (s *testScene) GetLights() []lights.LightSource       { return s.lights }
func (s *testScene) GetAmbient() lights.AmbientLight       { return s.ambient }
func (s *testScene) GetBackground() core.Color             { return s.background }

// countingIntersectable counts intersection queries made against the wrapped geometry
type countingIntersectable struct {
	inner geometry.Intersectable
	calls int
}

func (c *countingIntersectable) Intersect(ray core.Ray) []geometry.GeoPoint {
	c.calls++
	return c.inner.Intersect(ray)
}

// memorySink records pixels and how many times each was written
type memorySink struct {
	nx, ny  int
	pixels  []core.Color
	writes  []int
	flushed int
}

func newMemorySink(nx, ny int) *memorySink {
	return &memorySink{nx: nx, ny: ny, pixels: make([]core.Color, nx*ny), writes: make([]int, nx*ny)}
}

func (m *memorySink) Nx() int { return m.nx }
func (m *memorySink) Ny() int { return m.ny }

func (m *memorySink) WritePixel(x, y int, color core.Color) {
	m.pixels[y*m.nx+x] = color
	m.writes[y*m.nx+x]++
}

func (m *memorySink) WriteToImage(context.Context) error {
	m.flushed++
	return nil
}

func (m *memorySink) at(x, y int) core.Color {
	return m.pixels[y*m.nx+x]
}

// funcTracer adapts a function to RayTracer and counts calls
type funcTracer struct {
	fn    func(core.Ray) core.Color
	calls atomic.Int64
}

func (f *funcTracer) TraceRay(ray core.Ray) core.Color {
	f.calls.Add(1)
	return f.fn(ray)
}

// recordingTracer keeps every ray it is asked to trace
type recordingTracer struct {
	mu   sync.Mutex
	rays []core.Ray
}

func (r *recordingTracer) TraceRay(ray core.Ray) core.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rays = append(r.rays, ray)
	return core.Black
}

func constantTracer(c core.Color) *funcTracer {
	return &funcTracer{fn: func(core.Ray) core.Color { return c }}
}

func colorsClose(a, b core.Color) bool {
	const tolerance = 1e-9
	return math.Abs(a.R-b.R) < tolerance && math.Abs(a.G-b.G) < tolerance && math.Abs(a.B-b.B) < tolerance
}

func mustRay(t *testing.T, origin core.Point3, direction core.Vec3) core.Ray {
	t.Helper()
	ray, err := core.NewRay(origin, direction)
	if err != nil {
		t.Fatalf("Failed to create ray: %v", err)
	}
	return ray
}

func mustCamera(t *testing.T, config CameraConfig) *Camera {
	t.Helper()
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}
	return camera
}

// unitCamera sits at the origin looking down -Z at a 1×1 view plane one unit away
func unitCamera() CameraConfig {
	return CameraConfig{
		Position:        core.Origin,
		Forward:         core.MustVec3(0, 0, -1),
		Up:              core.MustVec3(0, 1, 0),
		ViewPlaneWidth:  1,
		ViewPlaneHeight: 1,
		Distance:        1,
	}
}
