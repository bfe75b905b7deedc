package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Intersectable is anything a ray can be tested against.
// Intersect returns nil when nothing is hit, never an empty slice.
type Intersectable interface {
	Intersect(ray core.Ray) []GeoPoint
}

// Geometry is a single primitive that can be shaded
type Geometry interface {
	Intersectable
	// Normal returns the unit surface normal at a point on the surface
	Normal(point core.Point3) (core.Vec3, error)
	Surface() Surface
}

// Surface is the fixed appearance of a geometry, set once at construction
type Surface struct {
	Emission core.Color
	Material material.Material
}

// GeoPoint associates an intersection point with the geometry it lies on
type GeoPoint struct {
	Geometry Geometry
	Point    core.Point3
}

// FindClosestGeoPoint returns the hit nearest to the ray origin, or false when there is none
func FindClosestGeoPoint(ray core.Ray, points []GeoPoint) (GeoPoint, bool) {
	return core.FindClosest(ray, points, func(gp GeoPoint) core.Point3 { return gp.Point })
}

// IntersectWithin returns the hits strictly closer than maxDistance to the ray origin
func IntersectWithin(g Intersectable, ray core.Ray, maxDistance float64) []GeoPoint {
	var within []GeoPoint
	for _, gp := range g.Intersect(ray) {
		if core.AlignZero(gp.Point.Distance(ray.Origin)-maxDistance) < 0 {
			within = append(within, gp)
		}
	}
	return within
}

func validateSurface(s Surface) error {
	return s.Material.Validate()
}
