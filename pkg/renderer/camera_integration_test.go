package renderer

import (
	"context"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// countIntersections casts one ray per pixel of a 3×3 view plane and counts the points found
func countIntersections(t *testing.T, camera *Camera, g geometry.Intersectable) int {
	t.Helper()
	count := 0
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			count += len(g.Intersect(camera.ConstructRay(3, 3, col, row)))
		}
	}
	return count
}

func integrationCamera(t *testing.T, position core.Point3) *Camera {
	return mustCamera(t, CameraConfig{
		Position:        position,
		Forward:         core.MustVec3(0, 0, -1),
		Up:              core.MustVec3(0, 1, 0),
		ViewPlaneWidth:  3,
		ViewPlaneHeight: 3,
		Distance:        1,
	})
}

func TestCameraIntegration_Sphere(t *testing.T) {
	tests := []struct {
		name     string
		position core.Point3
		center   core.Point3
		radius   float64
		expected int
	}{
		{"small sphere ahead, camera at origin", core.Origin, core.NewPoint3(0, 0, -3), 1, 2},
		{"small sphere ahead", core.NewPoint3(0, 0, 0.5), core.NewPoint3(0, 0, -3), 1, 2},
		{"sphere filling the view", core.NewPoint3(0, 0, 0.5), core.NewPoint3(0, 0, -2.5), 2.5, 18},
		{"sphere missing the corners", core.NewPoint3(0, 0, 0.5), core.NewPoint3(0, 0, -2), 2, 10},
		{"camera inside the sphere", core.NewPoint3(0, 0, 0.5), core.NewPoint3(0, 0, -1), 4, 9},
		{"sphere behind the camera", core.NewPoint3(0, 0, 0.5), core.NewPoint3(0, 0, 1), 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := mustSphere(t, tt.center, tt.radius, geometry.Surface{})
			if got := countIntersections(t, integrationCamera(t, tt.position), sphere); got != tt.expected {
				t.Errorf("Expected %d intersections, got %d", tt.expected, got)
			}
		})
	}
}

func TestCameraIntegration_Plane(t *testing.T) {
	camera := integrationCamera(t, core.NewPoint3(0, 0, 0.5))

	tests := []struct {
		name     string
		point    core.Point3
		normal   core.Vec3
		expected int
	}{
		{"plane facing the camera", core.NewPoint3(0, 0, -2), core.MustVec3(0, 0, 1), 9},
		{"slightly tilted plane", core.NewPoint3(0, 0, -1.5), core.MustVec3(0, -0.5, 1), 9},
		{"plane parallel to the bottom row", core.NewPoint3(0, 0, -3), core.MustVec3(0, -1, 1), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plane := mustPlane(t, tt.point, tt.normal, geometry.Surface{})
			if got := countIntersections(t, camera, plane); got != tt.expected {
				t.Errorf("Expected %d intersections, got %d", tt.expected, got)
			}
		})
	}
}

func TestCameraIntegration_Triangle(t *testing.T) {
	camera := integrationCamera(t, core.NewPoint3(0, 0, 0.5))

	tests := []struct {
		name     string
		top      core.Point3
		expected int
	}{
		{"small triangle", core.NewPoint3(0, 1, -2), 1},
		{"tall triangle", core.NewPoint3(0, 20, -2), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triangle, err := geometry.NewTriangle(tt.top, core.NewPoint3(1, -1, -2), core.NewPoint3(-1, -1, -2), geometry.Surface{})
			if err != nil {
				t.Fatal(err)
			}
			if got := countIntersections(t, camera, triangle); got != tt.expected {
				t.Errorf("Expected %d intersections, got %d", tt.expected, got)
			}
		})
	}
}

func TestCameraIntegration_RenderSphere(t *testing.T) {
	background := core.NewColor(0, 0, 50)
	sphere := mustSphere(t, core.NewPoint3(0, 0, -3), 1, geometry.Surface{Emission: core.NewColor(200, 0, 0)})
	scene := &testScene{root: geometry.NewGeometries(sphere), background: background}

	sink := newMemorySink(3, 3)
	camera := integrationCamera(t, core.Origin).
		SetImageSink(sink).
		SetRayTracer(NewBasicRayTracer(scene, DefaultTracerConfig())).
		SetRenderConfig(RenderConfig{Workers: 2, TileSize: 1})

	if _, err := camera.RenderImage(context.Background()); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			expected := background
			if x == 1 && y == 1 {
				expected = core.NewColor(200, 0, 0)
			}
			if got := sink.at(x, y); !colorsClose(got, expected) {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, expected, got)
			}
		}
	}
}
