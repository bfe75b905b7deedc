package geometry

import (
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center  core.Point3
	Radius  float64
	surface Surface
}

// NewSphere creates a new sphere
func NewSphere(center core.Point3, radius float64, surface Surface) (*Sphere, error) {
	if radius <= 0 {
		return nil, errorsmod.Wrapf(core.ErrInvalidGeometry, "sphere radius %g must be positive", radius)
	}
	if err := validateSurface(surface); err != nil {
		return nil, err
	}
	return &Sphere{Center: center, Radius: radius, surface: surface}, nil
}

// Intersect returns the points where the ray enters and leaves the sphere ahead of its origin
func (s *Sphere) Intersect(ray core.Ray) []GeoPoint {
	// Ray starting at the center leaves through exactly one point
	if s.Center.Equal(ray.Origin) {
		return []GeoPoint{{Geometry: s, Point: ray.At(s.Radius)}}
	}

	u := s.Center.Subtract(ray.Origin)
	tm := core.AlignZero(ray.Direction.Dot(u))
	dSquared := u.LengthSquared() - tm*tm
	thSquared := core.AlignZero(s.Radius*s.Radius - dSquared)
	if thSquared <= 0 {
		return nil
	}

	th := math.Sqrt(thSquared)
	t1 := core.AlignZero(tm - th)
	t2 := core.AlignZero(tm + th)

	switch {
	case t1 > 0 && t2 > 0:
		return []GeoPoint{{Geometry: s, Point: ray.At(t1)}, {Geometry: s, Point: ray.At(t2)}}
	case t1 > 0:
		return []GeoPoint{{Geometry: s, Point: ray.At(t1)}}
	case t2 > 0:
		return []GeoPoint{{Geometry: s, Point: ray.At(t2)}}
	default:
		return nil
	}
}

// Normal returns the outward normal, undefined at the center
func (s *Sphere) Normal(point core.Point3) (core.Vec3, error) {
	n, err := point.Subtract(s.Center).Normalize()
	if err != nil {
		return core.Vec3{}, errorsmod.Wrapf(core.ErrInvalidGeometry, "sphere normal undefined at center %v", s.Center)
	}
	return n, nil
}

// Surface returns the sphere's appearance
func (s *Sphere) Surface() Surface {
	return s.surface
}
