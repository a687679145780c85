package mesh

import (
	"fmt"
	"math"

	"github.com/matzehuels/potplant/pkg/geom"
)

// Ring indices into the slice returned by PotRings.
const (
	RingBottom = iota
	RingTop
	RingExtrusionBottom
	RingExtrusionTop
	RingGround
	ringCount
)

// VertexRing places res points evenly around a circle of the given radius
// at height h. The first point lies on the +z axis. res is clamped to
// MaxResolution.
func VertexRing(radius, h float64, res int) []geom.Vec3 {
	res = min(res, MaxResolution)
	if res <= 0 {
		return nil
	}
	vs := make([]geom.Vec3, res)
	for i := range vs {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(res))
		vs[i] = geom.V(sin*radius, h, cos*radius)
	}
	return vs
}

// PotRings returns the five pot rings in local space, ordered bottom, top,
// extrusion bottom, extrusion top, ground.
func PotRings(p PotParams) [][]geom.Vec3 {
	rings := make([][]geom.Vec3, ringCount)
	rings[RingBottom] = VertexRing(p.BottomRadius, 0, p.Resolution)
	rings[RingTop] = VertexRing(p.TopRadius(), p.Height, p.Resolution)
	rings[RingExtrusionBottom] = VertexRing(p.ExtrusionBottomRadius(), p.ExtrusionHeight(), p.Resolution)
	rings[RingExtrusionTop] = VertexRing(p.ExtrusionTopRadius(), p.Height, p.Resolution)
	rings[RingGround] = VertexRing(p.GroundRadius(), p.GroundHeight(), p.Resolution)
	return rings
}

// Pot is a placed pot.
type Pot struct {
	position geom.Vec3
	rotation geom.Vec3
	params   PotParams
	rings    [][]geom.Vec3
}

// NewPot generates a pot and places it at pos with rotation rot.
func NewPot(pos, rot geom.Vec3, p PotParams) *Pot {
	pot := &Pot{position: pos, rotation: rot}
	pot.SetParams(p)
	return pot
}

// SetParams replaces the pot's parameters and regenerates its rings.
func (p *Pot) SetParams(params PotParams) {
	p.params = params
	p.rings = PotRings(params)
	geom.PlaceRings(p.rings, p.rotation, p.position)
}

func (p *Pot) Position() geom.Vec3 { return p.position }
func (p *Pot) Rotation() geom.Vec3 { return p.rotation }
func (p *Pot) Params() PotParams   { return p.params }

// Rings returns a copy of the placed rings.
func (p *Pot) Rings() [][]geom.Vec3 {
	out := make([][]geom.Vec3, len(p.rings))
	for i, r := range p.rings {
		out[i] = geom.Clone(r)
	}
	return out
}

// Ring returns a copy of one placed ring, see RingBottom and friends. It
// returns nil for an index outside [RingBottom, RingGround].
func (p *Pot) Ring(i int) []geom.Vec3 {
	if i < 0 || i >= len(p.rings) {
		return nil
	}
	return geom.Clone(p.rings[i])
}

// VertexCount is the total number of ring vertices.
func (p *Pot) VertexCount() int {
	n := 0
	for _, r := range p.rings {
		n += len(r)
	}
	return n
}

func (p PotParams) String() string {
	return fmt.Sprintf("height=%.2f bottomRadius=%.2f slant=%.2f extrusionWidth=%.2f extrusionLevel=%.2f resolution=%d",
		p.Height, p.BottomRadius, p.Slant, p.ExtrusionWidth, p.ExtrusionLevel, p.Resolution)
}
