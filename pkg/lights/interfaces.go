package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
	LightTypeSpot        LightType = "spot"
)

// LightSource is a light that illuminates surface points directly
type LightSource interface {
	Type() LightType

	// Intensity returns the light arriving at point, after attenuation
	Intensity(point core.Point3) core.Color

	// Direction returns the unit direction FROM the light TO point.
	// A point at the light's own position yields the zero vector.
	Direction(point core.Point3) core.Vec3

	// Distance returns how far the light is from point; +Inf for lights at infinity
	Distance(point core.Point3) float64
}

// AmbientLight is the constant fill light added once per primary ray
type AmbientLight struct {
	intensity core.Color
}

// NoAmbient contributes nothing
var NoAmbient = AmbientLight{}

// NewAmbientLight creates an ambient light of intensity iA scaled by kA
func NewAmbientLight(iA core.Color, kA core.Factor) AmbientLight {
	return AmbientLight{intensity: iA.Scale(kA)}
}

// Intensity returns the ambient contribution
func (a AmbientLight) Intensity() core.Color {
	return a.intensity
}
