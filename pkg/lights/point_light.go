package lights

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight radiates in all directions from a position, fading with distance as
// I0 / (kC + kL·d + kQ·d²)
type PointLight struct {
	Position  core.Point3
	intensity core.Color
	kC        float64
	kL        float64
	kQ        float64
}

// NewPointLight creates a point light without distance falloff
func NewPointLight(intensity core.Color, position core.Point3) *PointLight {
	return &PointLight{Position: position, intensity: intensity, kC: 1}
}

// WithAttenuation returns a copy of the light using the given falloff coefficients
func (pl *PointLight) WithAttenuation(kC, kL, kQ float64) (*PointLight, error) {
	if err := validateAttenuation(kC, kL, kQ); err != nil {
		return nil, err
	}
	copied := *pl
	copied.kC, copied.kL, copied.kQ = kC, kL, kQ
	return &copied, nil
}

func validateAttenuation(kC, kL, kQ float64) error {
	if kC < 0 || kL < 0 || kQ < 0 {
		return errorsmod.Wrapf(core.ErrInvalidLight, "negative attenuation kC=%g kL=%g kQ=%g", kC, kL, kQ)
	}
	if kC+kL+kQ == 0 {
		return errorsmod.Wrap(core.ErrInvalidLight, "attenuation coefficients are all zero")
	}
	return nil
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Intensity returns the attenuated intensity at point
func (pl *PointLight) Intensity(point core.Point3) core.Color {
	d := pl.Position.Distance(point)
	return pl.intensity.Reduce(pl.kC + pl.kL*d + pl.kQ*d*d)
}

// Direction returns the unit vector from the light to point
func (pl *PointLight) Direction(point core.Point3) core.Vec3 {
	l, err := point.Subtract(pl.Position).Normalize()
	if err != nil {
		return core.Vec3{}
	}
	return l
}

// Distance returns the distance between the light and point
func (pl *PointLight) Distance(point core.Point3) float64 {
	return pl.Position.Distance(point)
}
