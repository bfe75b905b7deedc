package lights

import (
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SpotLight is a point light aimed along a direction. Intensity falls off as
// max(0, dir·l)^narrowBeam away from the beam axis.
type SpotLight struct {
	*PointLight
	direction  core.Vec3
	narrowBeam float64
}

// NewSpotLight creates a spot light with a narrow-beam exponent of 1
func NewSpotLight(intensity core.Color, position core.Point3, direction core.Vec3) (*SpotLight, error) {
	dir, err := direction.Normalize()
	if err != nil {
		return nil, errorsmod.Wrap(core.ErrInvalidLight, "spot light needs a non-zero direction")
	}
	return &SpotLight{PointLight: NewPointLight(intensity, position), direction: dir, narrowBeam: 1}, nil
}

// WithNarrowBeam returns a copy of the light with a tighter (larger) or wider beam exponent
func (s *SpotLight) WithNarrowBeam(exponent float64) (*SpotLight, error) {
	if exponent < 1 {
		return nil, errorsmod.Wrapf(core.ErrInvalidLight, "narrow beam exponent %g must be at least 1", exponent)
	}
	copied := *s
	copied.narrowBeam = exponent
	return &copied, nil
}

// WithAttenuation returns a copy of the light using the given falloff coefficients
func (s *SpotLight) WithAttenuation(kC, kL, kQ float64) (*SpotLight, error) {
	pl, err := s.PointLight.WithAttenuation(kC, kL, kQ)
	if err != nil {
		return nil, err
	}
	copied := *s
	copied.PointLight = pl
	return &copied, nil
}

func (s *SpotLight) Type() LightType {
	return LightTypeSpot
}

// Intensity returns the attenuated intensity inside the beam, black behind the light
func (s *SpotLight) Intensity(point core.Point3) core.Color {
	dirL := s.direction.Dot(s.PointLight.Direction(point))
	if dirL <= 0 {
		return core.Black
	}
	return s.PointLight.Intensity(point).ScaleBy(math.Pow(dirL, s.narrowBeam))
}
