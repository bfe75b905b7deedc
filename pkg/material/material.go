package material

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material holds the Phong-style coefficients of a surface.
// KD and KS drive the local model, KR and KT the recursive reflection and refraction.
type Material struct {
	KD        core.Factor // diffuse
	KS        core.Factor // specular
	KR        core.Factor // reflection
	KT        core.Factor // transparency
	Shininess int
}

// Black is the zero material: it neither reflects nor transmits light
var Black = Material{}

// NewPhong creates a material with diffuse and specular coefficients only
func NewPhong(kD, kS core.Factor, shininess int) Material {
	return Material{KD: kD, KS: kS, Shininess: shininess}
}

// NewMirror creates a purely reflective material
func NewMirror(kR core.Factor) Material {
	return Material{KR: kR}
}

// NewGlass creates a purely transparent material
func NewGlass(kT core.Factor) Material {
	return Material{KT: kT}
}

// WithReflection returns a copy of the material with the given reflection coefficient
func (m Material) WithReflection(kR core.Factor) Material {
	m.KR = kR
	return m
}

// WithTransparency returns a copy of the material with the given transparency coefficient
func (m Material) WithTransparency(kT core.Factor) Material {
	m.KT = kT
	return m
}

// Validate checks every coefficient lies in [0,1] and the shininess is non-negative
func (m Material) Validate() error {
	coefficients := []struct {
		name  string
		value core.Factor
	}{
		{"kD", m.KD},
		{"kS", m.KS},
		{"kR", m.KR},
		{"kT", m.KT},
	}
	for _, c := range coefficients {
		if !c.value.InUnitRange() {
			return errorsmod.Wrapf(core.ErrInvalidMaterial, "%s %v outside [0,1]", c.name, c.value)
		}
	}
	if m.Shininess < 0 {
		return errorsmod.Wrapf(core.ErrInvalidMaterial, "negative shininess %d", m.Shininess)
	}
	return nil
}

// IsReflective reports whether reflected rays can carry any light
func (m Material) IsReflective() bool {
	return !m.KR.IsZero()
}

// IsTransparent reports whether refracted and shadow rays can pass through
func (m Material) IsTransparent() bool {
	return !m.KT.IsZero()
}
