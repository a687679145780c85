package texture

import "github.com/matzehuels/potplant/pkg/sample"

// LeafColors is the palette shared by every leaf of a plant.
type LeafColors struct {
	BaseColor     RGBA `json:"baseColor" yaml:"baseColor"`
	GradientColor RGBA `json:"gradientColor" yaml:"gradientColor"`
	VeinColor     RGBA `json:"veinColor" yaml:"veinColor"`
}

// NewLeafColors derives a leaf palette from base. The gradient color is a
// lighter, more saturated neighbour of base; the vein color is near-white
// with a similar hue.
func NewLeafColors(base RGB, r sample.Source) LeafColors {
	h, s, v := base.Color().Hsv()
	s, v = s*100, v*100

	gradient := hsb(
		h+sample.Range(r, -20, 10),
		s+sample.Range(r, 0, 40),
		v+sample.Range(r, 10, 30),
	)
	vein := hsb(
		h+sample.Range(r, -30, 10),
		s+sample.Range(r, 10, 50),
		sample.Range(r, 80, 100),
	)
	return LeafColors{
		BaseColor:     base.Opaque(),
		GradientColor: FromColor(gradient).Opaque(),
		VeinColor:     FromColor(vein).Opaque(),
	}
}

// LeafParams control how a leaf texture is painted.
type LeafParams struct {
	GradientFactor    float64 `json:"gradientFactor" yaml:"gradientFactor"`       // strength of the secondary color
	VerticalVeinWidth float64 `json:"verticalVeinWidth" yaml:"verticalVeinWidth"` // half width of the midrib, pixels
	VeinCount         int     `json:"veinCount" yaml:"veinCount"`
	VeinSlope         float64 `json:"veinSlope" yaml:"veinSlope"` // 0 horizontal
	VeinThickness     float64 `json:"veinThickness" yaml:"veinThickness"`
}

// DefaultLeafParams returns the reference leaf texture.
func DefaultLeafParams() LeafParams {
	return LeafParams{
		GradientFactor:    1,
		VerticalVeinWidth: 6,
		VeinCount:         4,
		VeinSlope:         0.5,
		VeinThickness:     4,
	}
}

// RandomLeafParams draws leaf texture parameters. Four side veins are the
// most likely outcome.
func RandomLeafParams(r sample.Source) LeafParams {
	return LeafParams{
		GradientFactor:    sample.Range(r, 1, 1.6),
		VerticalVeinWidth: sample.Range(r, 3, 10),
		VeinCount:         sample.Pick(r, 0, 3, 3, 4, 4, 4, 4, 4, 5, 5, 6),
		VeinSlope:         sample.Range(r, 0.3, 1.1),
		VeinThickness:     sample.Range(r, 2, 10),
	}
}

// LeafTexture describes the texture applied to every leaf.
type LeafTexture struct {
	Colors LeafColors `json:"colors" yaml:"colors"`
	Params LeafParams `json:"params" yaml:"params"`
}

// RandomLeafTexture draws a leaf texture around the base green.
func RandomLeafTexture(baseGreen RGB, r sample.Source) LeafTexture {
	params := RandomLeafParams(r)
	return LeafTexture{Colors: NewLeafColors(baseGreen, r), Params: params}
}

// PotTexture describes the texture applied to the pot.
type PotTexture struct {
	BaseColor          RGB     `json:"baseColor" yaml:"baseColor"`
	ShadowIntensity    float64 `json:"shadowIntensity" yaml:"shadowIntensity"`       // 0.3-0.6
	HighlightIntensity float64 `json:"highlightIntensity" yaml:"highlightIntensity"` // 0.5-0.8
}

// DefaultPotTexture returns the reference pot texture.
func DefaultPotTexture() PotTexture {
	return PotTexture{
		BaseColor:          RGB{R: 165, G: 42, B: 42},
		ShadowIntensity:    0.5,
		HighlightIntensity: 0.66,
	}
}

// RandomPotTexture draws pot texture intensities over baseBrown.
func RandomPotTexture(baseBrown RGB, r sample.Source) PotTexture {
	return PotTexture{
		BaseColor:          baseBrown,
		ShadowIntensity:    sample.Range(r, 0.3, 0.6),
		HighlightIntensity: sample.Range(r, 0.5, 0.8),
	}
}
