package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// builder adds objects to a scene and keeps the first construction error,
// so scene definitions read as a flat list of calls.
type builder struct {
	scene *Scene
	err   error
}

func newBuilder(name string) *builder {
	return &builder{scene: New(name)}
}

func (b *builder) add(g geometry.Intersectable, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	b.scene.Add(g)
}

func (b *builder) light(l lights.LightSource, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	b.scene.AddLight(l)
}

func (b *builder) sphere(center core.Point3, radius float64, s geometry.Surface) {
	sphere, err := geometry.NewSphere(center, radius, s)
	b.add(sphere, err)
}

func (b *builder) plane(point core.Point3, normal core.Vec3, s geometry.Surface) {
	plane, err := geometry.NewPlane(point, normal, s)
	b.add(plane, err)
}

func (b *builder) triangle(v0, v1, v2 core.Point3, s geometry.Surface) {
	triangle, err := geometry.NewTriangle(v0, v1, v2, s)
	b.add(triangle, err)
}

func (b *builder) tube(origin core.Point3, direction core.Vec3, radius float64, s geometry.Surface) {
	axis, err := core.NewRay(origin, direction)
	if err != nil {
		b.add(nil, err)
		return
	}
	tube, err := geometry.NewTube(axis, radius, s)
	b.add(tube, err)
}

func (b *builder) cylinder(origin core.Point3, direction core.Vec3, radius, height float64, s geometry.Surface) {
	axis, err := core.NewRay(origin, direction)
	if err != nil {
		b.add(nil, err)
		return
	}
	cylinder, err := geometry.NewCylinder(axis, radius, height, s)
	b.add(cylinder, err)
}

// spot adds a spot light with linear and quadratic attenuation
func (b *builder) spot(intensity core.Color, position core.Point3, direction core.Vec3, kL, kQ float64) {
	spot, err := lights.NewSpotLight(intensity, position, direction)
	if err == nil {
		spot, err = spot.WithAttenuation(1, kL, kQ)
	}
	b.light(spot, err)
}

func (b *builder) build() (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.scene, nil
}

// surface is shorthand for an emissive Phong surface
func surface(emission core.Color, mat material.Material) geometry.Surface {
	return geometry.Surface{Emission: emission, Material: mat}
}

func phong(kD, kS float64, shininess int) material.Material {
	return material.NewPhong(core.NewFactor(kD), core.NewFactor(kS), shininess)
}
