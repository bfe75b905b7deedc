package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewCamera_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"forward and up not orthogonal", func(c *CameraConfig) { c.Up = core.MustVec3(0, 1, 1) }},
		{"zero forward", func(c *CameraConfig) { c.Forward = core.Vec3{} }},
		{"zero up", func(c *CameraConfig) { c.Up = core.Vec3{} }},
		{"zero view plane width", func(c *CameraConfig) { c.ViewPlaneWidth = 0 }},
		{"negative view plane height", func(c *CameraConfig) { c.ViewPlaneHeight = -1 }},
		{"zero distance", func(c *CameraConfig) { c.Distance = 0 }},
		{"negative anti-aliasing grid", func(c *CameraConfig) { c.AntiAliasing.GridSize = -2 }},
		{"negative aperture", func(c *CameraConfig) { c.DepthOfField.ApertureSize = -1 }},
		{"aperture without focal distance", func(c *CameraConfig) { c.DepthOfField.ApertureSize = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := unitCamera()
			tt.modify(&config)
			camera, err := NewCamera(config)
			if !errors.Is(err, core.ErrInvalidCamera) {
				t.Errorf("Expected ErrInvalidCamera, got %v", err)
			}
			if camera != nil {
				t.Error("Expected no camera on error")
			}
			if !core.IsConstructionError(err) {
				t.Error("Expected a construction error")
			}
		})
	}
}

func TestCamera_Basis(t *testing.T) {
	camera := mustCamera(t, unitCamera())
	if !camera.Right().Equal(core.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("Expected right = forward × up = (1,0,0), got %v", camera.Right())
	}

	// Vectors need not be unit length on input
	config := unitCamera()
	config.Forward = core.MustVec3(0, 0, -7)
	config.Up = core.MustVec3(0, 3, 0)
	if _, err := NewCamera(config); err != nil {
		t.Errorf("Unexpected error for non-unit basis: %v", err)
	}
}

func TestCamera_ConstructRay(t *testing.T) {
	config := CameraConfig{
		Position: core.Origin,
		Forward:  core.MustVec3(0, 0, -1),
		Up:       core.MustVec3(0, -1, 0),
		Distance: 10,
	}

	tests := []struct {
		name      string
		vpSize    float64
		n         int
		col, row  int
		direction core.Vec3
	}{
		{"4x4 inside", 8, 4, 1, 1, core.MustVec3(1, -1, -10)},
		{"4x4 corner", 8, 4, 0, 0, core.MustVec3(3, -3, -10)},
		{"4x4 side", 8, 4, 0, 1, core.MustVec3(3, -1, -10)},
		{"3x3 center", 6, 3, 1, 1, core.MustVec3(0, 0, -10)},
		{"3x3 upper side", 6, 3, 1, 0, core.MustVec3(0, -2, -10)},
		{"3x3 left side", 6, 3, 0, 1, core.MustVec3(2, 0, -10)},
		{"3x3 corner", 6, 3, 0, 0, core.MustVec3(2, -2, -10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config
			c.ViewPlaneWidth, c.ViewPlaneHeight = tt.vpSize, tt.vpSize
			camera := mustCamera(t, c)

			ray := camera.ConstructRay(tt.n, tt.n, tt.col, tt.row)
			expected, _ := tt.direction.Normalize()
			if ray.Origin != core.Origin {
				t.Errorf("Expected origin at the camera, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
			}
		})
	}
}

func TestCamera_MissingResources(t *testing.T) {
	tracer := constantTracer(core.Black)
	ctx := context.Background()

	noSink := mustCamera(t, unitCamera()).SetRayTracer(tracer)
	if _, err := noSink.RenderImage(ctx); !errors.Is(err, core.ErrMissingResource) {
		t.Errorf("RenderImage without sink: expected ErrMissingResource, got %v", err)
	}
	if err := noSink.PrintGrid(10, core.Black); !errors.Is(err, core.ErrMissingResource) {
		t.Errorf("PrintGrid without sink: expected ErrMissingResource, got %v", err)
	}
	if err := noSink.WriteToImage(ctx); !errors.Is(err, core.ErrMissingResource) {
		t.Errorf("WriteToImage without sink: expected ErrMissingResource, got %v", err)
	}

	sink := newMemorySink(2, 2)
	noTracer := mustCamera(t, unitCamera()).SetImageSink(sink)
	_, err := noTracer.RenderImage(ctx)
	if !errors.Is(err, core.ErrMissingResource) {
		t.Errorf("RenderImage without tracer: expected ErrMissingResource, got %v", err)
	}
	if core.IsConstructionError(err) {
		t.Error("Missing resources must not be reported as construction errors")
	}

	if tracer.calls.Load() != 0 {
		t.Errorf("Expected no rays before failing, got %d", tracer.calls.Load())
	}
	for i, w := range sink.writes {
		if w != 0 {
			t.Errorf("Pixel %d written before failing", i)
		}
	}
}

func TestCamera_RenderImage(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("%d workers", workers), func(t *testing.T) {
			sink := newMemorySink(5, 3)
			tracer := constantTracer(core.NewColor(7, 8, 9))
			camera := mustCamera(t, unitCamera()).
				SetImageSink(sink).
				SetRayTracer(tracer).
				SetRenderConfig(RenderConfig{Workers: workers, TileSize: 2})

			stats, err := camera.RenderImage(context.Background())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			for i, w := range sink.writes {
				if w != 1 {
					t.Errorf("Pixel %d written %d times", i, w)
				}
				if !colorsClose(sink.pixels[i], core.NewColor(7, 8, 9)) {
					t.Errorf("Pixel %d has color %v", i, sink.pixels[i])
				}
			}
			if stats.Pixels != 15 || stats.PrimaryRays != 15 || stats.Tiles != 6 {
				t.Errorf("Unexpected stats %+v", stats)
			}
			if tracer.calls.Load() != 15 {
				t.Errorf("Expected 15 traced rays, got %d", tracer.calls.Load())
			}

			if err := camera.WriteToImage(context.Background()); err != nil || sink.flushed != 1 {
				t.Errorf("Expected one flush, got %d (err %v)", sink.flushed, err)
			}
		})
	}
}

func TestCamera_RenderImage_Cancelled(t *testing.T) {
	for _, workers := range []int{1, 4} {
		sink := newMemorySink(8, 8)
		tracer := constantTracer(core.Black)
		camera := mustCamera(t, unitCamera()).
			SetImageSink(sink).
			SetRayTracer(tracer).
			SetRenderConfig(RenderConfig{Workers: workers, TileSize: 2})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := camera.RenderImage(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Workers %d: expected context.Canceled, got %v", workers, err)
		}
		if tracer.calls.Load() != 0 {
			t.Errorf("Workers %d: expected no rays after cancellation, got %d", workers, tracer.calls.Load())
		}
	}
}

func TestCamera_PrintGrid(t *testing.T) {
	sink := newMemorySink(5, 5)
	white := core.NewColor(255, 255, 255)
	camera := mustCamera(t, unitCamera()).SetImageSink(sink)

	if err := camera.PrintGrid(2, white); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			onGrid := x%2 == 0 || y%2 == 0
			if got := sink.at(x, y); colorsClose(got, white) != onGrid {
				t.Errorf("Pixel (%d,%d): on grid %v, color %v", x, y, onGrid, got)
			}
		}
	}
}

func TestCamera_AntiAliasing(t *testing.T) {
	red := core.NewColor(255, 0, 0)
	blue := core.NewColor(0, 0, 255)

	tests := []struct {
		name         string
		tracer       func(core.Ray) core.Color
		expected     core.Color
		expectedRays int
		subdivided   int
	}{
		{
			name:         "uniform pixel takes the cheap path",
			tracer:       func(core.Ray) core.Color { return red },
			expected:     red,
			expectedRays: 5, // four corners and the center
		},
		{
			name: "edge through the pixel is averaged",
			tracer: func(r core.Ray) core.Color {
				if r.Direction.X < 0 {
					return red
				}
				return blue
			},
			expected:     core.NewColor(127.5, 0, 127.5),
			expectedRays: 16, // corner results are reused
			subdivided:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := unitCamera()
			config.AntiAliasing.GridSize = 4
			sink := newMemorySink(1, 1)
			tracer := &funcTracer{fn: tt.tracer}
			camera := mustCamera(t, config).SetImageSink(sink).SetRayTracer(tracer).SetRenderConfig(RenderConfig{Workers: 1})

			stats, err := camera.RenderImage(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if !colorsClose(sink.at(0, 0), tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, sink.at(0, 0))
			}
			if int(tracer.calls.Load()) != tt.expectedRays || stats.PrimaryRays != tt.expectedRays {
				t.Errorf("Expected %d rays, traced %d (stats %d)", tt.expectedRays, tracer.calls.Load(), stats.PrimaryRays)
			}
			if stats.SubdividedPixels != tt.subdivided {
				t.Errorf("Expected %d subdivided pixels, got %d", tt.subdivided, stats.SubdividedPixels)
			}
		})
	}
}

func TestCamera_DepthOfField(t *testing.T) {
	config := unitCamera()
	config.DepthOfField = DepthOfField{ApertureSize: 0.5, FocalDistance: 10, ApertureSamples: 100}
	tracer := &recordingTracer{}
	camera := mustCamera(t, config).SetImageSink(newMemorySink(1, 1)).SetRayTracer(tracer).SetRenderConfig(RenderConfig{Workers: 1})

	if _, err := camera.RenderImage(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(tracer.rays) != 100 {
		t.Fatalf("Expected 100 aperture rays, got %d", len(tracer.rays))
	}

	focalPoint := core.NewPoint3(0, 0, -10)
	origins := map[core.Point3]bool{}
	for _, ray := range tracer.rays {
		origins[ray.Origin] = true
		if ray.Origin.Distance(core.Origin) > 0.5+1e-9 || !core.IsZero(ray.Origin.Z) {
			t.Errorf("Ray origin %v outside the aperture", ray.Origin)
		}
		// Every ray converges on the focal point
		tFocal := 10 / -ray.Direction.Z
		if p := ray.At(tFocal); p.Distance(focalPoint) > 1e-9 {
			t.Errorf("Ray %v misses the focal point, passes %v", ray, p)
		}
	}
	if len(origins) < 50 {
		t.Errorf("Expected rays spread over the aperture, got %d distinct origins", len(origins))
	}
}

func TestCamera_DepthOfField_DefaultSamples(t *testing.T) {
	config := unitCamera()
	config.DepthOfField = DepthOfField{ApertureSize: 0.1, FocalDistance: 5}
	camera := mustCamera(t, config)
	if got := len(camera.apertureOffset); got != 100 {
		t.Errorf("Expected 100 aperture samples by default, got %d", got)
	}
	if math.Abs(camera.focalPlane.Point.Z+5) > 1e-12 {
		t.Errorf("Expected focal plane at z=-5, got %v", camera.focalPlane.Point)
	}
}
