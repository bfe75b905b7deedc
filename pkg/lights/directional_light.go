package lights

import (
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is a light at infinity shining along a fixed direction
type DirectionalLight struct {
	intensity core.Color
	direction core.Vec3
}

// NewDirectionalLight creates a directional light shining along direction
func NewDirectionalLight(intensity core.Color, direction core.Vec3) (*DirectionalLight, error) {
	dir, err := direction.Normalize()
	if err != nil {
		return nil, errorsmod.Wrap(core.ErrInvalidLight, "directional light needs a non-zero direction")
	}
	return &DirectionalLight{intensity: intensity, direction: dir}, nil
}

func (d *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Intensity is the same everywhere
func (d *DirectionalLight) Intensity(core.Point3) core.Color {
	return d.intensity
}

// Direction is the same everywhere
func (d *DirectionalLight) Direction(core.Point3) core.Vec3 {
	return d.direction
}

// Distance is always infinite, so every occluder counts
func (d *DirectionalLight) Distance(core.Point3) float64 {
	return math.Inf(1)
}
