package geometry

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Boundary selects which normal a cylinder reports on the rim where a cap meets the side
type Boundary int

const (
	// CapBoundary reports the cap normal for every point at exactly t=0 or t=height
	CapBoundary Boundary = iota
	// LateralBoundary reports the lateral normal for rim points, the cap normal elsewhere on a cap
	LateralBoundary
)

func (b Boundary) String() string {
	switch b {
	case CapBoundary:
		return "cap"
	case LateralBoundary:
		return "lateral"
	default:
		return "unknown"
	}
}

// Cylinder represents a finite, closed cylinder: a tube clipped to [0, height] along its
// axis plus the two cap discs
type Cylinder struct {
	Height   float64
	Boundary Boundary

	tube    *Tube
	bottom  *Plane
	top     *Plane
	surface Surface
}

// NewCylinder creates a cylinder whose bottom cap is centered at the axis origin
func NewCylinder(axis core.Ray, radius, height float64, surface Surface) (*Cylinder, error) {
	if height <= 0 {
		return nil, errorsmod.Wrapf(core.ErrInvalidGeometry, "cylinder height %g must be positive", height)
	}
	tube, err := NewTube(axis, radius, surface)
	if err != nil {
		return nil, err
	}
	bottom, err := NewPlane(axis.Origin, axis.Direction, surface)
	if err != nil {
		return nil, err
	}
	top, err := NewPlane(axis.At(height), axis.Direction, surface)
	if err != nil {
		return nil, err
	}
	return &Cylinder{
		Height:   height,
		Boundary: CapBoundary,
		tube:     tube,
		bottom:   bottom,
		top:      top,
		surface:  surface,
	}, nil
}

// WithBoundary returns a copy of the cylinder using the given rim normal policy
func (c *Cylinder) WithBoundary(b Boundary) *Cylinder {
	copied := *c
	copied.Boundary = b
	return &copied
}

// Axis returns the cylinder axis, starting at the bottom cap center
func (c *Cylinder) Axis() core.Ray {
	return c.tube.Axis
}

// Radius returns the cylinder radius
func (c *Cylinder) Radius() float64 {
	return c.tube.Radius
}

// Intersect returns lateral hits strictly between the caps and cap hits within the radius
func (c *Cylinder) Intersect(ray core.Ray) []GeoPoint {
	var hits []GeoPoint
	for _, p := range c.tube.lateralHits(ray) {
		t := c.tube.axialOffset(p)
		if t > 0 && core.AlignZero(t-c.Height) < 0 {
			hits = append(hits, GeoPoint{Geometry: c, Point: p})
		}
	}

	rr := c.Radius() * c.Radius()
	for _, disc := range []*Plane{c.bottom, c.top} {
		for _, gp := range disc.Intersect(ray) {
			if core.AlignZero(gp.Point.DistanceSquared(disc.Point)-rr) <= 0 {
				hits = append(hits, GeoPoint{Geometry: c, Point: gp.Point})
			}
		}
	}
	return hits
}

// Normal returns -axis on the bottom cap, +axis on the top cap and the lateral normal
// between them. Rim points follow the Boundary policy.
func (c *Cylinder) Normal(point core.Point3) (core.Vec3, error) {
	dir := c.tube.Axis.Direction
	t := c.tube.axialOffset(point)

	onBottom := core.IsZero(t)
	onTop := core.IsZero(t - c.Height)
	if !onBottom && !onTop {
		return c.tube.Normal(point)
	}

	if c.Boundary == LateralBoundary {
		radial := point.Subtract(c.tube.Axis.At(t)).Length()
		if core.IsZero(radial - c.Radius()) {
			return c.tube.Normal(point)
		}
	}

	if onBottom {
		return dir.Negate(), nil
	}
	return dir, nil
}

// Surface returns the cylinder's appearance
func (c *Cylinder) Surface() Surface {
	return c.surface
}
