package plant

import (
	"math"

	"github.com/matzehuels/potplant/pkg/geom"
	"github.com/matzehuels/potplant/pkg/mesh"
	"github.com/matzehuels/potplant/pkg/sample"
	"github.com/matzehuels/potplant/pkg/texture"
)

// narrowPotRadius is the ground radius below which a pot holds fewer stalks.
const narrowPotRadius = 30

// Plant is a pot with stalks and leaves.
type Plant struct {
	BaseGreen   texture.RGB
	BaseBrown   texture.RGB
	PotTexture  texture.PotTexture
	LeafTexture texture.LeafTexture

	StalkCount  int
	StalkSpread float64

	Pot    *mesh.Pot
	Stalks []*mesh.Stalk
	Leaves []*mesh.Leaf
}

// New grows a random plant from r.
func New(r sample.Source) *Plant {
	p := &Plant{
		BaseGreen: texture.RandomGreen(r),
		BaseBrown: texture.RandomBrown(r),
	}
	p.PotTexture = texture.RandomPotTexture(p.BaseBrown, r)
	p.LeafTexture = texture.RandomLeafTexture(p.BaseGreen, r)
	p.Pot = mesh.NewPot(geom.Vec3{}, geom.Vec3{}, mesh.RandomPotParams(r))

	ground := p.Pot.Params().GroundRadius()
	if ground < narrowPotRadius {
		p.StalkCount = sample.Pick(r, 2, 3)
	} else {
		p.StalkCount = sample.Pick(r, 3, 4, 5)
	}
	p.StalkSpread = ground * sample.Range(r, 0.1, 0.25)

	p.growStalks(r)
	p.growLeaves(r)
	return p
}

// growStalks places StalkCount stalks on a circle of radius StalkSpread on
// the pot's ground plane. Crowded plants get less rotation jitter.
func (p *Plant) growStalks(r sample.Source) {
	base := mesh.RandomStalkParams(r)
	step := 2 * math.Pi / float64(p.StalkCount)
	height := p.Pot.Params().GroundHeight()

	p.Stalks = make([]*mesh.Stalk, 0, p.StalkCount)
	for i := 0; i < p.StalkCount; i++ {
		angle := step * float64(i)
		x := math.Cos(angle) * p.StalkSpread * sample.Range(r, 0.8, 1.2)
		z := math.Sin(angle) * p.StalkSpread * sample.Range(r, 0.8, 1.2)

		var wiggle float64
		if p.StalkCount > 4 {
			wiggle = sample.Range(r, 0.9, 1.1)
		} else {
			wiggle = sample.Range(r, 0.8, 1.2)
		}
		rot := geom.V(0, 2*math.Pi-angle*wiggle, 0)

		p.Stalks = append(p.Stalks, mesh.NewStalk(geom.V(x, height, z), rot, mesh.WiggleStalkParams(base, r)))
	}
}

// growLeaves attaches one leaf to every stalk tip. Sparse plants get more
// yaw jitter.
func (p *Plant) growLeaves(r sample.Source) {
	base := mesh.RandomLeafParams(r)

	p.Leaves = make([]*mesh.Leaf, 0, len(p.Stalks))
	for _, s := range p.Stalks {
		xMod := sample.Range(r, -0.1, 0.1)
		zMod := sample.Range(r, -0.1, 0.1)
		var yMod float64
		if len(p.Stalks) > 3 {
			yMod = sample.Range(r, -0.2, 0.2)
		} else {
			yMod = sample.Range(r, -0.4, 0.4)
		}
		params := mesh.WiggleLeafParams(base, r)
		tip, _ := s.Tip()
		rot := s.Rotation().Add(geom.V(xMod, yMod, zMod))

		p.Leaves = append(p.Leaves, mesh.NewLeaf(tip, rot, params))
	}
}

// FromData rebuilds the plant described by d. Nothing is derived or
// checked.
func FromData(d Data) *Plant {
	p := &Plant{
		BaseGreen:   d.BaseGreen,
		BaseBrown:   d.BaseBrown,
		PotTexture:  d.PotTextureData,
		LeafTexture: d.LeafTextureData,
		StalkCount:  d.StalkCount,
		StalkSpread: d.StalkSpread,
		Pot:         mesh.NewPot(d.PotData.Position.Vec3(), d.PotData.Rotation.Vec3(), d.PotData.MeshParams),
		Stalks:      make([]*mesh.Stalk, 0, len(d.StalkData)),
		Leaves:      make([]*mesh.Leaf, 0, len(d.LeafData)),
	}
	for _, e := range d.StalkData {
		p.Stalks = append(p.Stalks, mesh.NewStalk(e.Position.Vec3(), e.Rotation.Vec3(), e.MeshParams))
	}
	for _, e := range d.LeafData {
		p.Leaves = append(p.Leaves, mesh.NewLeaf(e.Position.Vec3(), e.Rotation.Vec3(), e.MeshParams))
	}
	return p
}

// Data returns the plant's parameter tree.
func (p *Plant) Data() Data {
	d := Data{
		StalkCount:      p.StalkCount,
		StalkSpread:     p.StalkSpread,
		BaseBrown:       p.BaseBrown,
		BaseGreen:       p.BaseGreen,
		LeafTextureData: p.LeafTexture,
		PotTextureData:  p.PotTexture,
		PotData: Entity[mesh.PotParams]{
			Position:   VectorOf(p.Pot.Position()),
			Rotation:   VectorOf(p.Pot.Rotation()),
			MeshParams: p.Pot.Params(),
		},
		StalkData: make([]Entity[mesh.StalkParams], 0, len(p.Stalks)),
		LeafData:  make([]Entity[mesh.LeafParams], 0, len(p.Leaves)),
	}
	for _, s := range p.Stalks {
		d.StalkData = append(d.StalkData, Entity[mesh.StalkParams]{
			Position:   VectorOf(s.Position()),
			Rotation:   VectorOf(s.Rotation()),
			MeshParams: s.Params(),
		})
	}
	for _, l := range p.Leaves {
		d.LeafData = append(d.LeafData, Entity[mesh.LeafParams]{
			Position:   VectorOf(l.Position()),
			Rotation:   VectorOf(l.Rotation()),
			MeshParams: l.Params(),
		})
	}
	return d
}

// Stats summarizes a plant's size.
type Stats struct {
	Stalks   int
	Leaves   int
	Vertices int
}

// Stats counts the plant's entities and generated vertices.
func (p *Plant) Stats() Stats {
	st := Stats{Stalks: len(p.Stalks), Leaves: len(p.Leaves)}
	if p.Pot != nil {
		st.Vertices += p.Pot.VertexCount()
	}
	for _, s := range p.Stalks {
		st.Vertices += len(s.Vertices())
	}
	for _, l := range p.Leaves {
		st.Vertices += len(l.Vertices())
	}
	return st
}
