package mesh

import (
	"fmt"

	"github.com/matzehuels/potplant/pkg/sample"
)

// Kind identifies an entity kind.
type Kind int

const (
	KindStalk Kind = iota
	KindLeaf
	KindPot
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindStalk:
		return "stalk"
	case KindLeaf:
		return "leaf"
	case KindPot:
		return "pot"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MaxResolution caps the resolution of any entity. Generators clamp to it
// and the genotype decoder rejects anything larger.
const MaxResolution = 4096

// Params is implemented by StalkParams, LeafParams and PotParams.
type Params interface {
	Kind() Kind
}

// =============================================================================
// Stalk
// =============================================================================

// StalkParams shape a stalk.
type StalkParams struct {
	Length     float64 `json:"length" yaml:"length"`         // total arc length, > 0
	Resolution int     `json:"resolution" yaml:"resolution"` // vertex count, 1-6
	Curvature  float64 `json:"curvature" yaml:"curvature"`   // bend per segment, 0-0.4
	Thickness  float64 `json:"thickness" yaml:"thickness"`   // stroke weight, render hint
}

func (StalkParams) Kind() Kind { return KindStalk }

// DefaultStalkParams returns the reference stalk.
func DefaultStalkParams() StalkParams {
	return StalkParams{Length: 80, Resolution: 3, Curvature: 0.33, Thickness: 3}
}

// RandomStalkParams draws a stalk from the documented ranges.
func RandomStalkParams(r sample.Source) StalkParams {
	return StalkParams{
		Length:     50 + sample.Range(r, 0, 50),
		Resolution: 3,
		Curvature:  sample.Range(r, 0.1, 0.4),
		Thickness:  float64(sample.Pick(r, 2, 3, 4, 5)),
	}
}

// WiggleStalkParams derives a sibling of base.
func WiggleStalkParams(base StalkParams, r sample.Source) StalkParams {
	return StalkParams{
		Length:     base.Length * sample.Range(r, 0.66, 2),
		Resolution: base.Resolution,
		Curvature:  base.Curvature * sample.Range(r, 0.2, 1.2),
		Thickness:  base.Thickness,
	}
}

// =============================================================================
// Leaf
// =============================================================================

// LeafParams shape a leaf.
type LeafParams struct {
	Length     float64 `json:"length" yaml:"length"`
	Width      float64 `json:"width" yaml:"width"`
	Resolution int     `json:"resolution" yaml:"resolution"` // half the outline size, 4-8
	Skew       float64 `json:"skew" yaml:"skew"`             // tip sharpness, 0.2-1.5
	Thickness  float64 `json:"thickness" yaml:"thickness"`   // base roundness exponent, 0.1-2
	Curvature  float64 `json:"curvature" yaml:"curvature"`   // midrib arch, 0-1.5
	Outline    *string `json:"outline" yaml:"outline"`       // optional color tag
}

func (LeafParams) Kind() Kind { return KindLeaf }

// DefaultLeafParams returns the reference leaf.
func DefaultLeafParams() LeafParams {
	outline := "green"
	return LeafParams{
		Length:     100,
		Width:      60,
		Resolution: 4,
		Skew:       0.6,
		Thickness:  1,
		Curvature:  0.8,
		Outline:    &outline,
	}
}

// RandomLeafParams draws a leaf from the documented ranges. Long leaves
// get a larger resolution budget.
func RandomLeafParams(r sample.Source) LeafParams {
	length := 60 + sample.Range(r, 0, 80)
	var res int
	if length > 120 {
		res = sample.Pick(r, 4, 5, 6, 7)
	} else {
		res = sample.Pick(r, 4, 5, 6)
	}
	return LeafParams{
		Length:     length,
		Width:      length * sample.Range(r, 0.2, 0.8),
		Resolution: res,
		Skew:       sample.Range(r, 0.3, 1.4),
		Thickness:  sample.Range(r, 0.2, 1.9),
		Curvature:  sample.Range(r, 0.3, 1.5),
	}
}

// WiggleLeafParams derives a sibling of base. Leaves longer than 100 units
// get a wider curvature spread.
func WiggleLeafParams(base LeafParams, r sample.Source) LeafParams {
	lo, hi := 0.1, 1.8
	if base.Length > 100 {
		lo, hi = 0.5, 1.5
	}
	return LeafParams{
		Length:     base.Length * sample.Range(r, 0.7, 1.3),
		Width:      base.Width * sample.Range(r, 0.8, 1.2),
		Resolution: base.Resolution,
		Skew:       base.Skew * sample.Range(r, 0.8, 1.2),
		Thickness:  base.Thickness * sample.Range(r, 0.8, 1.2),
		Curvature:  base.Curvature * sample.Range(r, lo, hi),
		Outline:    base.Outline,
	}
}

// =============================================================================
// Pot
// =============================================================================

// PotParams shape a pot.
type PotParams struct {
	Height         float64 `json:"height" yaml:"height"`
	BottomRadius   float64 `json:"bottomRadius" yaml:"bottomRadius"`
	Slant          float64 `json:"slant" yaml:"slant"`                   // taper factor
	ExtrusionWidth float64 `json:"extrusionWidth" yaml:"extrusionWidth"` // lip overhang
	ExtrusionLevel float64 `json:"extrusionLevel" yaml:"extrusionLevel"` // lip start as a fraction of height
	Resolution     int     `json:"resolution" yaml:"resolution"`         // ring vertex count, 4-8
}

func (PotParams) Kind() Kind { return KindPot }

// DefaultPotParams returns the reference pot.
func DefaultPotParams() PotParams {
	return PotParams{
		Height:         80,
		BottomRadius:   40,
		Slant:          0.4,
		ExtrusionWidth: 10,
		ExtrusionLevel: 0.7,
		Resolution:     8,
	}
}

// RandomPotParams draws a pot from the documented ranges. The lip width
// scales with the bottom radius.
func RandomPotParams(r sample.Source) PotParams {
	bottom := 20 + sample.Range(r, 0, 40)
	return PotParams{
		Height:         50 + sample.Range(r, 0, 60),
		BottomRadius:   bottom,
		Slant:          sample.Range(r, 0.1, 0.8),
		ExtrusionWidth: sample.Range(r, 5, bottom*0.4),
		ExtrusionLevel: sample.Range(r, 0.5, 0.9),
		Resolution:     sample.Pick(r, 4, 5, 6, 7, 8),
	}
}

// WigglePotParams derives a pot close to base.
func WigglePotParams(base PotParams, r sample.Source) PotParams {
	return PotParams{
		Height:         base.Height * sample.Range(r, 0.9, 1.1),
		BottomRadius:   base.BottomRadius * sample.Range(r, 0.9, 1.1),
		Slant:          base.Slant * sample.Range(r, 0.9, 1.1),
		ExtrusionWidth: base.ExtrusionWidth * sample.Range(r, 0.9, 1.1),
		ExtrusionLevel: base.ExtrusionLevel * sample.Range(r, 0.9, 1.1),
		Resolution:     base.Resolution,
	}
}

// TopRadius is the radius of the pot's rim.
func (p PotParams) TopRadius() float64 { return p.BottomRadius * (1 + p.Slant) }

// ExtrusionBottomRadius is the radius where the lip starts.
func (p PotParams) ExtrusionBottomRadius() float64 {
	return p.BottomRadius*(1+p.Slant*p.ExtrusionLevel) + p.ExtrusionWidth
}

// ExtrusionTopRadius is the outer radius of the lip at the rim.
func (p PotParams) ExtrusionTopRadius() float64 {
	return p.BottomRadius*(1+p.Slant) + p.ExtrusionWidth
}

// GroundRadius is the radius of the soil disc stalks grow from.
func (p PotParams) GroundRadius() float64 { return p.BottomRadius * (1 + p.Slant*0.9) }

// GroundHeight is the height of the soil disc.
func (p PotParams) GroundHeight() float64 { return 0.9 * p.Height }

// ExtrusionHeight is the height where the lip starts.
func (p PotParams) ExtrusionHeight() float64 { return p.Height * p.ExtrusionLevel }

// =============================================================================
// Dispatch
// =============================================================================

// RandomParams draws a random parameter set for kind.
func RandomParams(kind Kind, r sample.Source) (Params, error) {
	switch kind {
	case KindStalk:
		return RandomStalkParams(r), nil
	case KindLeaf:
		return RandomLeafParams(r), nil
	case KindPot:
		return RandomPotParams(r), nil
	}
	return nil, fmt.Errorf("unknown mesh kind %v", kind)
}

// WiggleParams derives a correlated variant of base.
func WiggleParams(base Params, r sample.Source) (Params, error) {
	switch p := base.(type) {
	case StalkParams:
		return WiggleStalkParams(p, r), nil
	case LeafParams:
		return WiggleLeafParams(p, r), nil
	case PotParams:
		return WigglePotParams(p, r), nil
	}
	return nil, fmt.Errorf("unsupported params type %T", base)
}
