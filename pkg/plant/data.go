package plant

import (
	"github.com/matzehuels/potplant/pkg/geom"
	"github.com/matzehuels/potplant/pkg/mesh"
	"github.com/matzehuels/potplant/pkg/texture"
)

// Vector is the serialized form of a geom.Vec3.
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// VectorOf converts v.
func VectorOf(v geom.Vec3) Vector { return Vector{X: v.X(), Y: v.Y(), Z: v.Z()} }

// Vec3 converts v.
func (v Vector) Vec3() geom.Vec3 { return geom.V(v.X, v.Y, v.Z) }

// Entity is the serialized form of a placed mesh.
type Entity[P any] struct {
	Position   Vector `json:"position" yaml:"position"`
	Rotation   Vector `json:"rotation" yaml:"rotation"`
	MeshParams P      `json:"meshParams" yaml:"meshParams"`
}

// Data is the full parameter tree of a plant. Derived vertices are not
// part of it.
type Data struct {
	StalkCount      int                        `json:"stalkCount" yaml:"stalkCount"`
	StalkSpread     float64                    `json:"stalkSpread" yaml:"stalkSpread"`
	BaseBrown       texture.RGB                `json:"baseBrown" yaml:"baseBrown"`
	BaseGreen       texture.RGB                `json:"baseGreen" yaml:"baseGreen"`
	LeafTextureData texture.LeafTexture        `json:"leafTextureData" yaml:"leafTextureData"`
	PotTextureData  texture.PotTexture         `json:"potTextureData" yaml:"potTextureData"`
	PotData         Entity[mesh.PotParams]     `json:"potData" yaml:"potData"`
	StalkData       []Entity[mesh.StalkParams] `json:"stalkData" yaml:"stalkData"`
	LeafData        []Entity[mesh.LeafParams]  `json:"leafData" yaml:"leafData"`
}
