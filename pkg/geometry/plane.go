package geometry

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point   core.Point3 // A point on the plane
	normal  core.Vec3   // Unit normal
	surface Surface
}

// NewPlane creates a new plane, normalizing the normal
func NewPlane(point core.Point3, normal core.Vec3, surface Surface) (*Plane, error) {
	n, err := normal.Normalize()
	if err != nil {
		return nil, errorsmod.Wrap(err, "plane normal")
	}
	if err := validateSurface(surface); err != nil {
		return nil, err
	}
	return &Plane{Point: point, normal: n, surface: surface}, nil
}

// NewPlaneFromPoints creates the plane through three non-collinear points
func NewPlaneFromPoints(p1, p2, p3 core.Point3, surface Surface) (*Plane, error) {
	n, err := p2.Subtract(p1).Cross(p3.Subtract(p1)).Normalize()
	if err != nil {
		return nil, errorsmod.Wrapf(core.ErrInvalidGeometry, "points %v, %v, %v do not span a plane", p1, p2, p3)
	}
	if err := validateSurface(surface); err != nil {
		return nil, err
	}
	return &Plane{Point: p1, normal: n, surface: surface}, nil
}

// Intersect solves t = n·(q0-p0) / n·v. Parallel rays, rays starting on the plane
// and hits behind the origin report no intersection.
func (p *Plane) Intersect(ray core.Ray) []GeoPoint {
	nv := core.AlignZero(p.normal.Dot(ray.Direction))
	if nv == 0 {
		return nil
	}
	if p.Point.Equal(ray.Origin) {
		return nil
	}

	t := core.AlignZero(p.normal.Dot(p.Point.Subtract(ray.Origin)) / nv)
	if t <= 0 {
		return nil
	}
	return []GeoPoint{{Geometry: p, Point: ray.At(t)}}
}

// Normal returns the fixed plane normal
func (p *Plane) Normal(core.Point3) (core.Vec3, error) {
	return p.normal, nil
}

// Surface returns the plane's appearance
func (p *Plane) Surface() Surface {
	return p.surface
}
