package texture

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/potplant/pkg/sample"
)

// RGB is a color with channels in [0, 255].
type RGB struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

// RGBA is an RGB color with an alpha channel in [0, 255].
type RGBA struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
	A float64 `json:"a" yaml:"a"`
}

// FromColor converts a colorful.Color, clamping it into gamut.
func FromColor(c colorful.Color) RGB {
	c = c.Clamped()
	return RGB{R: c.R * 255, G: c.G * 255, B: c.B * 255}
}

// Color returns c as a colorful.Color.
func (c RGB) Color() colorful.Color {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}
}

// Opaque returns c with full alpha.
func (c RGB) Opaque() RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns c as #rrggbb.
func (c RGB) Hex() string { return c.Color().Clamped().Hex() }

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%.0f, %.0f, %.0f)", c.R, c.G, c.B)
}

// RGB drops the alpha channel.
func (c RGBA) RGB() RGB { return RGB{R: c.R, G: c.G, B: c.B} }

// Hex returns the color part of c as #rrggbb.
func (c RGBA) Hex() string { return c.RGB().Hex() }

// hsb builds a color from hue in degrees and saturation and brightness in
// percent. Out of range components are clamped.
func hsb(h, s, b float64) colorful.Color {
	return colorful.Hsv(clamp(h, 0, 360), clamp(s, 0, 100)/100, clamp(b, 0, 100)/100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// RandomGreen draws a foliage green.
func RandomGreen(r sample.Source) RGB {
	return FromColor(hsb(
		sample.Range(r, 90, 150),
		sample.Range(r, 60, 100),
		sample.Range(r, 35, 70),
	))
}

// RandomBrown draws a terracotta brown.
func RandomBrown(r sample.Source) RGB {
	return FromColor(hsb(
		sample.Range(r, 25, 42),
		sample.Range(r, 55, 100),
		sample.Range(r, 40, 75),
	))
}
