package core

import (
	"fmt"
	"math"
)

// RayDelta is how far secondary rays start off the surface they leave
const RayDelta = 0.1

// Ray represents a ray with an origin and a unit-length direction
type Ray struct {
	Origin    Point3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin Point3, direction Vec3) (Ray, error) {
	dir, err := direction.Normalize()
	if err != nil {
		return Ray{}, err
	}
	return Ray{Origin: origin, Direction: dir}, nil
}

// NewOffsetRay creates a secondary ray leaving a surface point. The origin is pushed RayDelta
// along the normal, on the side the ray travels toward, so the ray does not re-hit its own surface.
func NewOffsetRay(point Point3, direction, normal Vec3) (Ray, error) {
	nd := AlignZero(direction.Dot(normal))
	origin := point
	if nd > 0 {
		origin = point.Add(normal.Scale(RayDelta))
	} else if nd < 0 {
		origin = point.Add(normal.Scale(-RayDelta))
	}
	return NewRay(origin, direction)
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point3 {
	if IsZero(t) {
		return r.Origin
	}
	return r.Origin.Add(r.Direction.Scale(t))
}

// FindClosestPoint returns the point nearest to the ray origin, or false for an empty list
func (r Ray) FindClosestPoint(points []Point3) (Point3, bool) {
	return FindClosest(r, points, func(p Point3) Point3 { return p })
}

// FindClosest scans items linearly and returns the one whose position is nearest to the ray origin
func FindClosest[T any](r Ray, items []T, position func(T) Point3) (T, bool) {
	var closest T
	found := false
	minDistance := math.Inf(1)
	for _, item := range items {
		if d := position(item).DistanceSquared(r.Origin); d < minDistance {
			minDistance = d
			closest = item
			found = true
		}
	}
	return closest, found
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray{origin=%v, dir=%v}", r.Origin, r.Direction)
}
