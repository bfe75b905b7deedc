package core

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an RGB intensity on a 0-255 scale per channel. Values above 255 are legal while
// accumulating light and are clamped only when converted to a pixel.
type Color struct {
	R, G, B float64
}

// Black is the zero color
var Black = Color{}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// FromRGBA converts a standard library color into a Color
func FromRGBA(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: float64(r >> 8), G: float64(g >> 8), B: float64(b >> 8)}
}

// Add returns the sum of the colors
func (c Color) Add(others ...Color) Color {
	for _, o := range others {
		c.R += o.R
		c.G += o.G
		c.B += o.B
	}
	return c
}

// Scale multiplies each channel by the matching coefficient channel
func (c Color) Scale(k Factor) Color {
	return Color{c.R * k.R, c.G * k.G, c.B * k.B}
}

// ScaleBy multiplies every channel by a scalar
func (c Color) ScaleBy(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Reduce divides every channel by n
func (c Color) Reduce(n float64) Color {
	return Color{c.R / n, c.G / n, c.B / n}
}

// Equal reports whether two colors match within Epsilon per channel
func (c Color) Equal(other Color) bool {
	return IsZero(c.R-other.R) && IsZero(c.G-other.G) && IsZero(c.B-other.B)
}

// RGBA converts the color to an 8-bit pixel, clamping to [0, 255]
func (c Color) RGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Max(0, math.Min(255, v)))
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: 255}
}

// Luminance returns the perceptual luminance of the color
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}

// Factor is a per-channel coefficient, used for material coefficients and for the
// attenuation carried through recursive bounces
type Factor struct {
	R, G, B float64
}

var (
	// FactorZero blocks all light
	FactorZero = Factor{}
	// FactorOne passes all light
	FactorOne = Factor{1, 1, 1}
)

// NewFactor creates a coefficient with the same value on every channel
func NewFactor(v float64) Factor {
	return Factor{v, v, v}
}

// NewFactor3 creates a coefficient from three channel values
func NewFactor3(r, g, b float64) Factor {
	return Factor{r, g, b}
}

// Product returns the channel-wise product
func (f Factor) Product(other Factor) Factor {
	return Factor{f.R * other.R, f.G * other.G, f.B * other.B}
}

// Add returns the channel-wise sum
func (f Factor) Add(other Factor) Factor {
	return Factor{f.R + other.R, f.G + other.G, f.B + other.B}
}

// ScaleBy multiplies every channel by a scalar
func (f Factor) ScaleBy(s float64) Factor {
	return Factor{f.R * s, f.G * s, f.B * s}
}

// LowerThan reports whether every channel is below x
func (f Factor) LowerThan(x float64) bool {
	return f.R < x && f.G < x && f.B < x
}

// IsZero reports whether every channel is numerically zero
func (f Factor) IsZero() bool {
	return IsZero(f.R) && IsZero(f.G) && IsZero(f.B)
}

// InUnitRange reports whether every channel lies in [0, 1]
func (f Factor) InUnitRange() bool {
	in := func(v float64) bool { return v >= 0 && v <= 1 }
	return in(f.R) && in(f.G) && in(f.B)
}

func (f Factor) String() string {
	return fmt.Sprintf("[%g, %g, %g]", f.R, f.G, f.B)
}
