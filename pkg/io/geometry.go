package io

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/matzehuels/potplant/pkg/geom"
	"github.com/matzehuels/potplant/pkg/mesh"
	"github.com/matzehuels/potplant/pkg/plant"
)

// groundColor fills the soil disc, gray 51.
const groundColor = "#333333"

// Point is an x, y, z triple.
type Point [3]float64

// Geometry is a render-ready description of a plant.
type Geometry struct {
	Pot    PotGeometry     `json:"pot"`
	Stalks []StalkGeometry `json:"stalks"`
	Leaves []LeafGeometry  `json:"leaves"`
	Bounds Bounds          `json:"bounds"`
}

// PotGeometry holds the pot's rings from bottom to soil.
type PotGeometry struct {
	Color           string  `json:"color"`
	GroundColor     string  `json:"groundColor"`
	Shadow          float64 `json:"shadow"`
	Highlight       float64 `json:"highlight"`
	Bottom          []Point `json:"bottom"`
	Top             []Point `json:"top"`
	ExtrusionBottom []Point `json:"extrusionBottom"`
	ExtrusionTop    []Point `json:"extrusionTop"`
	Ground          []Point `json:"ground"`
}

type StalkGeometry struct {
	Color     string  `json:"color"`
	Thickness float64 `json:"thickness"`
	Vertices  []Point `json:"vertices"`
}

type LeafGeometry struct {
	Color         string  `json:"color"`
	GradientColor string  `json:"gradientColor"`
	VeinColor     string  `json:"veinColor"`
	Outline       string  `json:"outline,omitempty"`
	Vertices      []Point `json:"vertices"`
}

// Bounds is the axis-aligned box around every vertex. It is zero for a
// plant without vertices.
type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// NewGeometry collects the world-space vertices of p.
func NewGeometry(p *plant.Plant) Geometry {
	g := Geometry{
		Stalks: make([]StalkGeometry, 0, len(p.Stalks)),
		Leaves: make([]LeafGeometry, 0, len(p.Leaves)),
	}
	var b boundsBuilder

	if p.Pot != nil {
		ring := func(i int) []Point { return b.points(p.Pot.Ring(i)) }
		g.Pot = PotGeometry{
			Color:           p.PotTexture.BaseColor.Hex(),
			GroundColor:     groundColor,
			Shadow:          p.PotTexture.ShadowIntensity,
			Highlight:       p.PotTexture.HighlightIntensity,
			Bottom:          ring(mesh.RingBottom),
			Top:             ring(mesh.RingTop),
			ExtrusionBottom: ring(mesh.RingExtrusionBottom),
			ExtrusionTop:    ring(mesh.RingExtrusionTop),
			Ground:          ring(mesh.RingGround),
		}
	}

	stalkColor := p.BaseGreen.Hex()
	for _, s := range p.Stalks {
		g.Stalks = append(g.Stalks, StalkGeometry{
			Color:     stalkColor,
			Thickness: s.Params().Thickness,
			Vertices:  b.points(s.Vertices()),
		})
	}

	colors := p.LeafTexture.Colors
	for _, l := range p.Leaves {
		lg := LeafGeometry{
			Color:         colors.BaseColor.Hex(),
			GradientColor: colors.GradientColor.Hex(),
			VeinColor:     colors.VeinColor.Hex(),
			Vertices:      b.points(l.Vertices()),
		}
		if o := l.Params().Outline; o != nil {
			lg.Outline = *o
		}
		g.Leaves = append(g.Leaves, lg)
	}

	g.Bounds = b.bounds()
	return g
}

// VertexCount returns the number of points in g.
func (g Geometry) VertexCount() int {
	n := len(g.Pot.Bottom) + len(g.Pot.Top) + len(g.Pot.ExtrusionBottom) +
		len(g.Pot.ExtrusionTop) + len(g.Pot.Ground)
	for _, s := range g.Stalks {
		n += len(s.Vertices)
	}
	for _, l := range g.Leaves {
		n += len(l.Vertices)
	}
	return n
}

type boundsBuilder struct {
	min, max Point
	seen     bool
}

func (b *boundsBuilder) points(vs []geom.Vec3) []Point {
	out := make([]Point, len(vs))
	for i, v := range vs {
		p := Point{v.X(), v.Y(), v.Z()}
		out[i] = p
		if !b.seen {
			b.min, b.max, b.seen = p, p, true
			continue
		}
		for k := range p {
			b.min[k] = math.Min(b.min[k], p[k])
			b.max[k] = math.Max(b.max[k], p[k])
		}
	}
	return out
}

func (b *boundsBuilder) bounds() Bounds { return Bounds{Min: b.min, Max: b.max} }

// WriteGeometry encodes g as JSON. Indented output is meant for files,
// compact output for the wire.
func WriteGeometry(w io.Writer, g Geometry, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode geometry: %w", err)
	}
	return nil
}
