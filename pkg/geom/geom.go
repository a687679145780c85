package geom

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a point or direction in plant space.
type Vec3 = mgl64.Vec3

// V is shorthand for constructing a Vec3.
func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Matrix returns the combined rotation matrix for the Euler angles in rot.
func Matrix(rot Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DZ(rot.Z()).Mul3(mgl64.Rotate3DY(rot.Y())).Mul3(mgl64.Rotate3DX(rot.X()))
}

// Rotate rotates every vertex in vs by rot, in place.
func Rotate(vs []Vec3, rot Vec3) {
	if rot == (Vec3{}) {
		return
	}
	m := Matrix(rot)
	for i, v := range vs {
		vs[i] = m.Mul3x1(v)
	}
}

// Translate adds offset to every vertex in vs, in place.
func Translate(vs []Vec3, offset Vec3) {
	for i, v := range vs {
		vs[i] = v.Add(offset)
	}
}

// Place rotates vs by rot and then moves it to pos.
func Place(vs []Vec3, rot, pos Vec3) {
	Rotate(vs, rot)
	Translate(vs, pos)
}

// RotateRings applies [Rotate] to each ring.
func RotateRings(rings [][]Vec3, rot Vec3) {
	if rot == (Vec3{}) {
		return
	}
	m := Matrix(rot)
	for _, ring := range rings {
		for i, v := range ring {
			ring[i] = m.Mul3x1(v)
		}
	}
}

// TranslateRings applies [Translate] to each ring.
func TranslateRings(rings [][]Vec3, offset Vec3) {
	for _, ring := range rings {
		Translate(ring, offset)
	}
}

// PlaceRings is the ring-aware form of [Place].
func PlaceRings(rings [][]Vec3, rot, pos Vec3) {
	RotateRings(rings, rot)
	TranslateRings(rings, pos)
}

// Clone returns a copy of vs.
func Clone(vs []Vec3) []Vec3 {
	if vs == nil {
		return nil
	}
	out := make([]Vec3, len(vs))
	copy(out, vs)
	return out
}
