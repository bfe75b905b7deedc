package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TracerConfig bounds the recursion of reflected and refracted rays
type TracerConfig struct {
	MaxLevel int     // Maximum number of surfaces a ray path may visit
	MinK     float64 // Contributions attenuated below this are dropped
}

// DefaultTracerConfig returns sensible default values
func DefaultTracerConfig() TracerConfig {
	return TracerConfig{
		MaxLevel: 10,
		MinK:     0.001,
	}
}

// BasicRayTracer is a Whitted-style tracer: emission, Phong local lighting with
// transparent shadows, and recursive reflection and refraction
type BasicRayTracer struct {
	scene  Scene
	config TracerConfig
}

// NewBasicRayTracer creates a tracer over scene. Zero config fields take their defaults.
func NewBasicRayTracer(scene Scene, config TracerConfig) *BasicRayTracer {
	defaults := DefaultTracerConfig()
	if config.MaxLevel < 1 {
		config.MaxLevel = defaults.MaxLevel
	}
	if config.MinK <= 0 {
		config.MinK = defaults.MinK
	}
	return &BasicRayTracer{scene: scene, config: config}
}

// Config returns the effective configuration
func (rt *BasicRayTracer) Config() TracerConfig {
	return rt.config
}

// TraceRay returns the background for a miss. A hit is shaded recursively and the
// ambient light is added once, here.
func (rt *BasicRayTracer) TraceRay(ray core.Ray) core.Color {
	gp, ok := rt.findClosestIntersection(ray)
	if !ok {
		return rt.scene.GetBackground()
	}
	return rt.calcColor(gp, ray, rt.config.MaxLevel, core.FactorOne).Add(rt.scene.GetAmbient().Intensity())
}

func (rt *BasicRayTracer) findClosestIntersection(ray core.Ray) (geometry.GeoPoint, bool) {
	return geometry.FindClosestGeoPoint(ray, rt.scene.GetGeometries().Intersect(ray))
}

// calcColor shades gp; level counts down to 1 and k only shrinks, so recursion always ends
func (rt *BasicRayTracer) calcColor(gp geometry.GeoPoint, ray core.Ray, level int, k core.Factor) core.Color {
	color := rt.calcLocalEffects(gp, ray, k)
	if level == 1 {
		return color
	}
	return color.Add(rt.calcGlobalEffects(gp, ray, level, k))
}

func (rt *BasicRayTracer) calcLocalEffects(gp geometry.GeoPoint, ray core.Ray, k core.Factor) core.Color {
	surface := gp.Geometry.Surface()
	color := surface.Emission

	n, err := gp.Geometry.Normal(gp.Point)
	if err != nil {
		return color
	}
	v := ray.Direction
	nv := core.AlignZero(n.Dot(v))
	if nv == 0 {
		return color
	}

	mat := surface.Material
	for _, light := range rt.scene.GetLights() {
		l := light.Direction(gp.Point)
		nl := core.AlignZero(n.Dot(l))
		// Light and viewer must be on the same side of the surface
		if !core.SameSign(nl, nv) {
			continue
		}
		ktr := rt.transparency(gp, light, l, n)
		if ktr.Product(k).LowerThan(rt.config.MinK) {
			continue
		}
		iL := light.Intensity(gp.Point).Scale(ktr)
		color = color.Add(
			iL.Scale(calcDiffusive(mat, nl)),
			iL.Scale(calcSpecular(mat, n, l, nl, v)),
		)
	}
	return color
}

func calcDiffusive(mat material.Material, nl float64) core.Factor {
	return mat.KD.ScaleBy(math.Abs(nl))
}

func calcSpecular(mat material.Material, n, l core.Vec3, nl float64, v core.Vec3) core.Factor {
	r := l.Subtract(n.Scale(2 * nl))
	minusVR := -core.AlignZero(r.Dot(v))
	if minusVR <= 0 {
		return core.FactorZero
	}
	return mat.KS.ScaleBy(math.Pow(minusVR, float64(mat.Shininess)))
}

// transparency returns the product of kT over every surface between gp and the light
func (rt *BasicRayTracer) transparency(gp geometry.GeoPoint, light lights.LightSource, l, n core.Vec3) core.Factor {
	lightRay, err := core.NewOffsetRay(gp.Point, l.Negate(), n)
	if err != nil {
		return core.FactorZero
	}

	ktr := core.FactorOne
	for _, hit := range geometry.IntersectWithin(rt.scene.GetGeometries(), lightRay, light.Distance(gp.Point)) {
		ktr = ktr.Product(hit.Geometry.Surface().Material.KT)
		if ktr.LowerThan(rt.config.MinK) {
			return core.FactorZero
		}
	}
	return ktr
}

func (rt *BasicRayTracer) calcGlobalEffects(gp geometry.GeoPoint, ray core.Ray, level int, k core.Factor) core.Color {
	n, err := gp.Geometry.Normal(gp.Point)
	if err != nil {
		return core.Black
	}
	mat := gp.Geometry.Surface().Material
	v := ray.Direction

	color := core.Black
	if kkr := k.Product(mat.KR); !kkr.LowerThan(rt.config.MinK) {
		r := v.Subtract(n.Scale(2 * v.Dot(n)))
		if reflected, err := core.NewOffsetRay(gp.Point, r, n); err == nil {
			color = color.Add(rt.calcGlobalEffect(reflected, level, mat.KR, kkr))
		}
	}
	if kkt := k.Product(mat.KT); !kkt.LowerThan(rt.config.MinK) {
		if refracted, err := core.NewOffsetRay(gp.Point, v, n); err == nil {
			color = color.Add(rt.calcGlobalEffect(refracted, level, mat.KT, kkt))
		}
	}
	return color
}

func (rt *BasicRayTracer) calcGlobalEffect(ray core.Ray, level int, kx, kkx core.Factor) core.Color {
	gp, ok := rt.findClosestIntersection(ray)
	if !ok {
		return rt.scene.GetBackground().Scale(kx)
	}
	return rt.calcColor(gp, ray, level-1, kkx).Scale(kx)
}
