package mesh

import (
	"fmt"
	"math"

	"github.com/matzehuels/potplant/pkg/geom"
)

// tipNudge separates the two outline rows at the leaf base.
const tipNudge = 2

// LeafVertices returns the closed leaf outline in its local frame:
// Resolution points from base to tip, then Resolution points back with z
// mirrored.
//
// For step i with t = i/(Resolution-1):
//
//	x = t·Length
//	y = sin(tπ)·50·Curvature
//	z = sin(tπ)^Thickness · (1 - Skew·i/Resolution) · Width
//
// The first vertex is pushed out by +2 in z and the last by -2. Resolution
// is clamped to MaxResolution.
func LeafVertices(p LeafParams) []geom.Vec3 {
	n := min(p.Resolution, MaxResolution)
	if n <= 0 {
		return nil
	}
	res := float64(n)
	lengthStep := p.Length / res
	widthStep := p.Width / res

	point := func(i int) geom.Vec3 {
		var t float64
		if n > 1 {
			t = float64(i) / (res - 1)
		}
		arch := math.Sin(t * math.Pi)
		return geom.V(
			t*res*lengthStep,
			arch*50*p.Curvature,
			math.Pow(arch, p.Thickness)*(1-p.Skew*float64(i)/res)*res*widthStep,
		)
	}

	vs := make([]geom.Vec3, 0, 2*n)
	for i := 0; i < n; i++ {
		vs = append(vs, point(i))
	}
	for i := n - 1; i >= 0; i-- {
		v := point(i)
		v[2] = -v[2]
		vs = append(vs, v)
	}

	vs[0][2] += tipNudge
	vs[len(vs)-1][2] -= tipNudge
	return vs
}

// Leaf is a placed leaf.
type Leaf struct {
	position geom.Vec3
	rotation geom.Vec3
	params   LeafParams
	vertices []geom.Vec3
}

// NewLeaf generates a leaf and places it at pos with rotation rot.
func NewLeaf(pos, rot geom.Vec3, p LeafParams) *Leaf {
	l := &Leaf{position: pos, rotation: rot}
	l.SetParams(p)
	return l
}

// SetParams replaces the leaf's parameters and regenerates its vertices.
func (l *Leaf) SetParams(p LeafParams) {
	l.params = p
	l.vertices = LeafVertices(p)
	geom.Place(l.vertices, l.rotation, l.position)
}

func (l *Leaf) Position() geom.Vec3   { return l.position }
func (l *Leaf) Rotation() geom.Vec3   { return l.rotation }
func (l *Leaf) Params() LeafParams    { return l.params }
func (l *Leaf) Vertices() []geom.Vec3 { return geom.Clone(l.vertices) }

func (p LeafParams) String() string {
	outline := "none"
	if p.Outline != nil {
		outline = *p.Outline
	}
	return fmt.Sprintf("length=%.2f width=%.2f resolution=%d skew=%.2f thickness=%.2f curvature=%.2f outline=%s",
		p.Length, p.Width, p.Resolution, p.Skew, p.Thickness, p.Curvature, outline)
}
