package core

import (
	"fmt"
	"math"

	errorsmod "cosmossdk.io/errors"
)

// Point3 represents a location in 3D space
type Point3 struct {
	X, Y, Z float64
}

// Origin is the point (0, 0, 0)
var Origin = Point3{}

// NewPoint3 creates a new Point3
func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Add returns the point moved by a vector
func (p Point3) Add(v Vec3) Point3 {
	return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Subtract returns the vector from other to p
func (p Point3) Subtract(other Point3) Vec3 {
	return Vec3{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// DistanceSquared returns the squared distance between two points
func (p Point3) DistanceSquared(other Point3) float64 {
	dx, dy, dz := p.X-other.X, p.Y-other.Y, p.Z-other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the distance between two points
func (p Point3) Distance(other Point3) float64 {
	return math.Sqrt(p.DistanceSquared(other))
}

// Equal reports whether two points coincide within Epsilon on every axis
func (p Point3) Equal(other Point3) bool {
	return IsZero(p.X-other.X) && IsZero(p.Y-other.Y) && IsZero(p.Z-other.Z)
}

func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Vec3 represents a 3D direction. Vectors built with NewVec3 are never zero; results of
// arithmetic are not re-checked, use IsZero where a degenerate result is possible.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3, failing on the zero vector
func NewVec3(x, y, z float64) (Vec3, error) {
	v := Vec3{X: x, Y: y, Z: z}
	if v.IsZero() {
		return Vec3{}, errorsmod.Wrapf(ErrInvalidVector, "(%g, %g, %g)", x, y, z)
	}
	return v, nil
}

// MustVec3 is like NewVec3 but panics on the zero vector. Intended for literals.
func MustVec3(x, y, z float64) Vec3 {
	v, err := NewVec3(x, y, z)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether every component is within Epsilon of zero
func (v Vec3) IsZero() bool {
	return IsZero(v.X) && IsZero(v.Y) && IsZero(v.Z)
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns the vector scaled by a scalar
func (v Vec3) Scale(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Negate returns the opposite vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalize returns a unit vector in the same direction
func (v Vec3) Normalize() (Vec3, error) {
	length := v.Length()
	if IsZero(length) {
		return Vec3{}, errorsmod.Wrap(ErrInvalidVector, "cannot normalize a zero-length vector")
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}, nil
}

// Equal reports whether two vectors match within Epsilon on every axis
func (v Vec3) Equal(other Vec3) bool {
	return IsZero(v.X-other.X) && IsZero(v.Y-other.Y) && IsZero(v.Z-other.Z)
}

func (v Vec3) String() string {
	return fmt.Sprintf("<%g, %g, %g>", v.X, v.Y, v.Z)
}
