package geometry

import (
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tube represents an infinite cylinder around an axis ray
type Tube struct {
	Axis    core.Ray
	Radius  float64
	surface Surface
}

// NewTube creates a new tube
func NewTube(axis core.Ray, radius float64, surface Surface) (*Tube, error) {
	if radius <= 0 {
		return nil, errorsmod.Wrapf(core.ErrInvalidGeometry, "tube radius %g must be positive", radius)
	}
	if err := validateSurface(surface); err != nil {
		return nil, err
	}
	return &Tube{Axis: axis, Radius: radius, surface: surface}, nil
}

// Intersect returns the lateral surface hits ahead of the ray origin
func (tb *Tube) Intersect(ray core.Ray) []GeoPoint {
	var hits []GeoPoint
	for _, p := range tb.lateralHits(ray) {
		hits = append(hits, GeoPoint{Geometry: tb, Point: p})
	}
	return hits
}

// lateralHits solves |A·t + B|² = r², where A and B are the ray direction and the
// origin offset projected onto the plane perpendicular to the axis
func (tb *Tube) lateralHits(ray core.Ray) []core.Point3 {
	va := tb.Axis.Direction
	v := ray.Direction
	dp := ray.Origin.Subtract(tb.Axis.Origin)

	a := v.Subtract(va.Scale(core.AlignZero(v.Dot(va))))
	b := dp.Subtract(va.Scale(core.AlignZero(dp.Dot(va))))

	// Ray parallel to the axis never meets the lateral surface
	qa := core.AlignZero(a.Dot(a))
	if qa == 0 {
		return nil
	}
	qb := 2 * a.Dot(b)
	qc := b.Dot(b) - tb.Radius*tb.Radius

	discriminant := core.AlignZero(qb*qb - 4*qa*qc)
	if discriminant <= 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := core.AlignZero((-qb - sqrtD) / (2 * qa))
	t2 := core.AlignZero((-qb + sqrtD) / (2 * qa))

	switch {
	case t1 > 0 && t2 > 0:
		return []core.Point3{ray.At(t1), ray.At(t2)}
	case t1 > 0:
		return []core.Point3{ray.At(t1)}
	case t2 > 0:
		return []core.Point3{ray.At(t2)}
	default:
		return nil
	}
}

// axialOffset returns the signed distance along the axis from the axis origin to the foot of point
func (tb *Tube) axialOffset(point core.Point3) float64 {
	return core.AlignZero(tb.Axis.Direction.Dot(point.Subtract(tb.Axis.Origin)))
}

// Normal projects the point onto the axis and points away from the foot.
// A point on the axis itself reports the axis direction.
func (tb *Tube) Normal(point core.Point3) (core.Vec3, error) {
	foot := tb.Axis.At(tb.axialOffset(point))
	n, err := point.Subtract(foot).Normalize()
	if err != nil {
		return tb.Axis.Direction, nil
	}
	return n, nil
}

// Surface returns the tube's appearance
func (tb *Tube) Surface() Surface {
	return tb.surface
}
