package scene

import (
	"sort"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

type builtin struct {
	description string
	create      func() (*Setup, error)
}

var builtins = map[string]builtin{
	"default":            {"Sphere, tube and cylinder on a glossy floor under three lights", NewDefaultScene},
	"two-spheres":        {"Red sphere inside a transparent blue sphere", NewTwoSpheresScene},
	"mirrors":            {"Two nested spheres reflected by two mirror triangles", NewMirrorsScene},
	"transparent-shadow": {"Triangles partially shadowed by a transparent sphere", NewTransparentShadowScene},
}

// Names returns the built-in scene names in alphabetical order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the one-line description of a built-in scene
func Describe(name string) string {
	return builtins[name].description
}

// Create builds the built-in scene called name
func Create(name string) (*Setup, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, errorsmod.Wrapf(core.ErrUnknownScene, "%q (available: %v)", name, Names())
	}
	setup, err := b.create()
	if err != nil {
		return nil, err
	}
	setup.Scene.Description = b.description
	return setup, nil
}

// frontCamera looks down -Z from (0, 0, distance) through a size × size view plane at the origin
func frontCamera(distance, size float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		Position:        core.NewPoint3(0, 0, distance),
		Forward:         core.MustVec3(0, 0, -1),
		Up:              core.MustVec3(0, 1, 0),
		ViewPlaneWidth:  size,
		ViewPlaneHeight: size,
		Distance:        distance,
	}
}

var (
	white = core.NewColor(255, 255, 255)
	red   = core.NewColor(255, 0, 0)
	blue  = core.NewColor(0, 0, 255)
)

// NewDefaultScene shows every primitive type lit by every light type
func NewDefaultScene() (*Setup, error) {
	b := newBuilder("default")
	b.scene.Background = core.NewColor(10, 10, 30)
	b.scene.Ambient = lights.NewAmbientLight(white, core.NewFactor(0.1))

	floor := phong(0.5, 0.2, 20).WithReflection(core.NewFactor(0.2))
	b.plane(core.NewPoint3(0, -60, 0), core.MustVec3(0, 1, 0), surface(core.NewColor(20, 20, 20), floor))
	b.sphere(core.NewPoint3(-50, -20, -50), 40, surface(core.NewColor(60, 0, 0), phong(0.5, 0.5, 60)))
	b.tube(core.NewPoint3(80, -60, -200), core.MustVec3(0, 1, 0), 12, surface(core.NewColor(0, 40, 0), phong(0.4, 0.3, 30)))
	b.cylinder(core.NewPoint3(30, -60, -10), core.MustVec3(0, 1, 0), 20, 50,
		surface(core.NewColor(0, 0, 80), phong(0.3, 0.4, 40).WithTransparency(core.NewFactor(0.3))))

	b.spot(core.NewColor(800, 500, 0), core.NewPoint3(-100, 100, 200), core.MustVec3(1, -1, -2), 0.0004, 0.0000006)
	point, err := lights.NewPointLight(core.NewColor(300, 300, 300), core.NewPoint3(100, 150, 100)).WithAttenuation(1, 0.00001, 0.00001)
	b.light(point, err)
	b.light(lights.NewDirectionalLight(core.NewColor(80, 80, 80), core.MustVec3(0, -1, -1)))

	s, err := b.build()
	if err != nil {
		return nil, err
	}
	camera := frontCamera(1000, 200)
	camera.AntiAliasing = renderer.AntiAliasing{GridSize: 3}
	return &Setup{Scene: s, Camera: camera, Width: DefaultWidth, Height: DefaultHeight}, nil
}

// NewTwoSpheresScene places a red sphere inside a transparent blue one
func NewTwoSpheresScene() (*Setup, error) {
	b := newBuilder("two-spheres")

	outer := phong(0.4, 0.3, 100).WithTransparency(core.NewFactor(0.3))
	b.sphere(core.NewPoint3(0, 0, -50), 50, surface(blue, outer))
	b.sphere(core.NewPoint3(0, 0, -50), 25, surface(red, phong(0.5, 0.5, 100)))
	b.spot(core.NewColor(1000, 600, 0), core.NewPoint3(-100, -100, 500), core.MustVec3(-1, -1, -2), 0.0004, 0.0000006)

	s, err := b.build()
	if err != nil {
		return nil, err
	}
	return &Setup{Scene: s, Camera: frontCamera(1000, 150), Width: DefaultWidth, Height: DefaultHeight}, nil
}

// NewMirrorsScene reflects two nested spheres in a full mirror and a half mirror
func NewMirrorsScene() (*Setup, error) {
	b := newBuilder("mirrors")
	b.scene.Ambient = lights.NewAmbientLight(white, core.NewFactor(0.1))

	shell := phong(0.25, 0.25, 20).WithTransparency(core.NewFactor(0.5))
	b.sphere(core.NewPoint3(-950, -900, -1000), 400, surface(core.NewColor(0, 0, 100), shell))
	b.sphere(core.NewPoint3(-950, -900, -1000), 200, surface(core.NewColor(100, 20, 20), phong(0.25, 0.25, 20)))

	mirror := core.NewColor(20, 20, 20)
	b.triangle(core.NewPoint3(1500, -1500, -1500), core.NewPoint3(-1500, 1500, -1500), core.NewPoint3(670, 670, 3000),
		surface(mirror, phong(0, 0, 0).WithReflection(core.FactorOne)))
	b.triangle(core.NewPoint3(1500, -1500, -1500), core.NewPoint3(-1500, 1500, -1500), core.NewPoint3(-1500, -1500, -2000),
		surface(mirror, phong(0, 0, 0).WithReflection(core.NewFactor(0.5))))

	b.spot(core.NewColor(1020, 400, 400), core.NewPoint3(-750, -750, -150), core.MustVec3(-1, -1, -4), 0.00001, 0.000005)

	s, err := b.build()
	if err != nil {
		return nil, err
	}
	return &Setup{Scene: s, Camera: frontCamera(10000, 2500), Width: DefaultWidth, Height: DefaultHeight}, nil
}

// NewTransparentShadowScene casts the shadow of a transparent sphere onto two triangles
func NewTransparentShadowScene() (*Setup, error) {
	b := newBuilder("transparent-shadow")
	b.scene.Ambient = lights.NewAmbientLight(white, core.NewFactor(0.15))

	matte := phong(0.5, 0.5, 60)
	b.triangle(core.NewPoint3(-150, -150, -115), core.NewPoint3(150, -150, -135), core.NewPoint3(75, 75, -150), surface(core.Black, matte))
	b.triangle(core.NewPoint3(-150, -150, -115), core.NewPoint3(-70, 70, -140), core.NewPoint3(75, 75, -150), surface(core.Black, matte))
	b.sphere(core.NewPoint3(60, 50, -50), 30, surface(blue, phong(0.2, 0.2, 30).WithTransparency(core.NewFactor(0.6))))

	b.spot(core.NewColor(700, 400, 400), core.NewPoint3(60, 50, 0), core.MustVec3(0, 0, -1), 4e-5, 2e-7)

	s, err := b.build()
	if err != nil {
		return nil, err
	}
	return &Setup{Scene: s, Camera: frontCamera(1000, 200), Width: 600, Height: 600}, nil
}
