package geometry

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Point3 // The three vertices
	plane      *Plane      // Supporting plane
	surface    Surface
}

// NewTriangle creates a new triangle from three distinct, non-collinear vertices
func NewTriangle(v0, v1, v2 core.Point3, surface Surface) (*Triangle, error) {
	if v0.Equal(v1) || v1.Equal(v2) || v0.Equal(v2) {
		return nil, errorsmod.Wrapf(core.ErrInvalidGeometry, "triangle has duplicate vertices %v, %v, %v", v0, v1, v2)
	}
	plane, err := NewPlaneFromPoints(v0, v1, v2, surface)
	if err != nil {
		return nil, errorsmod.Wrap(err, "triangle vertices are collinear")
	}
	return &Triangle{V0: v0, V1: v1, V2: v2, plane: plane, surface: surface}, nil
}

// Intersect finds the hit on the supporting plane and keeps it only when it lies strictly
// inside all three edges. Hits on an edge, a vertex or an edge's extension are misses.
func (t *Triangle) Intersect(ray core.Ray) []GeoPoint {
	hits := t.plane.Intersect(ray)
	if hits == nil {
		return nil
	}

	v1 := t.V0.Subtract(ray.Origin)
	v2 := t.V1.Subtract(ray.Origin)
	v3 := t.V2.Subtract(ray.Origin)

	s1, ok := edgeSide(v1, v2, ray.Direction)
	if !ok {
		return nil
	}
	s2, ok := edgeSide(v2, v3, ray.Direction)
	if !ok || !core.SameSign(s1, s2) {
		return nil
	}
	s3, ok := edgeSide(v3, v1, ray.Direction)
	if !ok || !core.SameSign(s1, s3) {
		return nil
	}

	return []GeoPoint{{Geometry: t, Point: hits[0].Point}}
}

// edgeSide returns which side of the edge (a, b) the direction passes, or false when it grazes it
func edgeSide(a, b, direction core.Vec3) (float64, bool) {
	n, err := a.Cross(b).Normalize()
	if err != nil {
		return 0, false
	}
	s := core.AlignZero(direction.Dot(n))
	return s, s != 0
}

// Normal returns the normal of the supporting plane
func (t *Triangle) Normal(point core.Point3) (core.Vec3, error) {
	return t.plane.Normal(point)
}

// Surface returns the triangle's appearance
func (t *Triangle) Surface() Surface {
	return t.surface
}
