package mesh

import (
	"fmt"
	"math"

	"github.com/matzehuels/potplant/pkg/geom"
)

// StalkVertices returns the stalk polyline in its local frame.
//
// A cursor starts at the origin. Each step emits a vertex at the cursor,
// moves it up by Length/Resolution and rotates it about the origin by
// -1.2π·Curvature/Resolution, so total curl grows with Curvature while
// Resolution only trades smoothness for vertex count. Resolution is
// clamped to MaxResolution.
func StalkVertices(p StalkParams) []geom.Vec3 {
	n := min(p.Resolution, MaxResolution)
	if n <= 0 {
		return nil
	}
	res := float64(n)
	step := p.Length / res
	sin, cos := math.Sincos(-math.Pi * 1.2 * p.Curvature / res)

	vs := make([]geom.Vec3, 0, n)
	var x, y float64
	for range n {
		vs = append(vs, geom.V(x, y, 0))
		y += step
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	return vs
}

// Stalk is a placed stalk.
type Stalk struct {
	position geom.Vec3
	rotation geom.Vec3
	params   StalkParams
	vertices []geom.Vec3
}

// NewStalk generates a stalk and places it at pos with rotation rot.
func NewStalk(pos, rot geom.Vec3, p StalkParams) *Stalk {
	s := &Stalk{position: pos, rotation: rot}
	s.SetParams(p)
	return s
}

// SetParams replaces the stalk's parameters and regenerates its vertices.
func (s *Stalk) SetParams(p StalkParams) {
	s.params = p
	s.vertices = StalkVertices(p)
	geom.Place(s.vertices, s.rotation, s.position)
}

func (s *Stalk) Position() geom.Vec3   { return s.position }
func (s *Stalk) Rotation() geom.Vec3   { return s.rotation }
func (s *Stalk) Params() StalkParams   { return s.params }
func (s *Stalk) Vertices() []geom.Vec3 { return geom.Clone(s.vertices) }

// Tip returns the last vertex, where a leaf is attached. ok is false for
// a stalk without vertices.
func (s *Stalk) Tip() (tip geom.Vec3, ok bool) {
	if len(s.vertices) == 0 {
		return s.position, false
	}
	return s.vertices[len(s.vertices)-1], true
}

func (p StalkParams) String() string {
	return fmt.Sprintf("length=%.2f resolution=%d curvature=%.2f thickness=%.2f",
		p.Length, p.Resolution, p.Curvature, p.Thickness)
}
