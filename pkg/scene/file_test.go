package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

const fullScene = `
name: Everything
description: One of each
background: [1, 2, 3]
ambient:
  color: [255, 255, 255]
  ka: 0.1
camera:
  position: [0, 0, 100]
  forward: [0, 0, -1]
  up: [0, 1, 0]
  width: 50
  height: 40
  distance: 100
  aa: 3
image:
  width: 64
  height: 32
geometries:
  - type: plane
    point: [0, -10, 0]
    normal: [0, 1, 0]
    material: {kd: 0.5, ks: 0.5, shininess: 10, kr: [0.1, 0.2, 0.3]}
  - type: sphere
    center: [0, 0, -20]
    radius: 5
    emission: [0, 0, 100]
    material: {kt: 0.5}
  - type: triangle
    vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
  - type: tube
    origin: [10, 0, 0]
    direction: [0, 1, 0]
    radius: 1
  - type: cylinder
    origin: [-10, 0, 0]
    direction: [0, 1, 0]
    radius: 1
    height: 4
    boundary: lateral
lights:
  - type: directional
    color: [50, 50, 50]
    direction: [0, -1, 0]
  - type: point
    color: [100, 100, 100]
    position: [0, 10, 0]
    kl: 0.01
  - type: spot
    color: [100, 0, 0]
    position: [0, 10, 10]
    direction: [0, -1, -1]
    narrow_beam: 4
`

func TestParse_FullScene(t *testing.T) {
	setup, err := Parse([]byte(fullScene), ".")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	s := setup.Scene
	if s.Name != "Everything" || s.Description != "One of each" {
		t.Errorf("Unexpected metadata %q / %q", s.Name, s.Description)
	}
	if !s.Background.Equal(core.NewColor(1, 2, 3)) {
		t.Errorf("Unexpected background %v", s.Background)
	}
	if !s.Ambient.Intensity().Equal(core.NewColor(25.5, 25.5, 25.5)) {
		t.Errorf("Unexpected ambient %v", s.Ambient.Intensity())
	}
	if s.Geometries.Len() != 5 {
		t.Errorf("Expected 5 geometries, got %d", s.Geometries.Len())
	}

	expectedTypes := []lights.LightType{lights.LightTypeDirectional, lights.LightTypePoint, lights.LightTypeSpot}
	if len(s.Lights) != len(expectedTypes) {
		t.Fatalf("Expected %d lights, got %d", len(expectedTypes), len(s.Lights))
	}
	for i, l := range s.Lights {
		if l.Type() != expectedTypes[i] {
			t.Errorf("Light %d: expected %s, got %s", i, expectedTypes[i], l.Type())
		}
	}

	if setup.Width != 64 || setup.Height != 32 {
		t.Errorf("Expected 64x32, got %dx%d", setup.Width, setup.Height)
	}
	if setup.Camera.ViewPlaneWidth != 50 || setup.Camera.ViewPlaneHeight != 40 || setup.Camera.AntiAliasing.GridSize != 3 {
		t.Errorf("Unexpected camera %+v", setup.Camera)
	}

	// The sphere is straight ahead of the camera
	ray, err := core.NewRay(core.NewPoint3(0, 0, 100), core.MustVec3(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}
	gp, ok := geometry.FindClosestGeoPoint(ray, s.Geometries.Intersect(ray))
	if !ok {
		t.Fatal("Expected the sphere to be hit")
	}
	if math.Abs(gp.Point.Z-(-15)) > 1e-9 {
		t.Errorf("Expected hit at z=-15, got %v", gp.Point)
	}
	if mat := gp.Geometry.Surface().Material; mat.KT != core.NewFactor(0.5) {
		t.Errorf("Expected kT 0.5, got %v", mat.KT)
	}
}

func TestParse_Defaults(t *testing.T) {
	setup, err := Parse([]byte("name: empty\n"), ".")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if setup.Width != DefaultWidth || setup.Height != DefaultHeight {
		t.Errorf("Expected default resolution, got %dx%d", setup.Width, setup.Height)
	}
	if !setup.Scene.GetBackground().Equal(core.Black) || !setup.Scene.GetAmbient().Intensity().Equal(core.Black) {
		t.Error("Expected black background and no ambient light")
	}
	if setup.Scene.Geometries.Len() != 0 {
		t.Errorf("Expected no geometries, got %d", setup.Scene.Geometries.Len())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{"bad yaml", "geometries: [", "yaml"},
		{"unknown geometry", "geometries:\n  - type: torus\n", "geometry 0"},
		{"short vector", "geometries:\n  - type: sphere\n    center: [0, 0]\n    radius: 1\n", "center"},
		{"negative radius", "geometries:\n  - type: sphere\n    center: [0, 0, 0]\n    radius: -1\n", "geometry 0"},
		{"degenerate triangle", "geometries:\n  - type: triangle\n    vertices: [[0, 0, 0], [1, 1, 1], [2, 2, 2]]\n", "geometry 0"},
		{"material out of range", "geometries:\n  - type: sphere\n    center: [0, 0, 0]\n    radius: 1\n    material: {kd: 2}\n", "geometry 0"},
		{"factor with two channels", "geometries:\n  - type: sphere\n    center: [0, 0, 0]\n    radius: 1\n    material: {kd: [0.1, 0.2]}\n", "coefficient"},
		{"unknown boundary", "geometries:\n  - type: cylinder\n    origin: [0, 0, 0]\n    direction: [0, 1, 0]\n    radius: 1\n    height: 1\n    boundary: rim\n", "boundary"},
		{"unknown light", "lights:\n  - type: area\n    color: [1, 1, 1]\n", "light 0"},
		{"zero light direction", "lights:\n  - type: directional\n    color: [1, 1, 1]\n    direction: [0, 0, 0]\n", "light 0"},
		{"camera up not orthogonal", "camera:\n  forward: [0, 0, -1]\n  up: [0, 1, 1]\n", "camera"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), ".")
			if !errors.Is(err, core.ErrInvalidScene) {
				t.Fatalf("Expected ErrInvalidScene, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error mentioning %q, got %v", tt.contains, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(fullScene), 0644); err != nil {
		t.Fatal(err)
	}
	setup, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if setup.Scene.Name != "Everything" {
		t.Errorf("Unexpected scene name %q", setup.Scene.Name)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, core.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene for a missing file, got %v", err)
	}
}
