package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b Vec3) bool {
	return a.ApproxEqualThreshold(b, eps)
}

func TestRotateAxes(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		rot  Vec3
		want Vec3
	}{
		{"identity", V(1, 2, 3), V(0, 0, 0), V(1, 2, 3)},
		{"quarter turn about z", V(1, 0, 0), V(0, 0, math.Pi/2), V(0, 1, 0)},
		{"quarter turn about y", V(1, 0, 0), V(0, math.Pi/2, 0), V(0, 0, -1)},
		{"quarter turn about x", V(0, 1, 0), V(math.Pi/2, 0, 0), V(0, 0, 1)},
		{"half turn about y", V(0, 5, 1), V(0, math.Pi, 0), V(0, 5, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := []Vec3{tt.in}
			Rotate(vs, tt.rot)
			if !near(vs[0], tt.want) {
				t.Errorf("Rotate(%v, %v) = %v, want %v", tt.in, tt.rot, vs[0], tt.want)
			}
		})
	}
}

func TestMatrixComposition(t *testing.T) {
	// x is applied first, then y, then z.
	rot := V(0.3, -1.1, 2.4)
	p := V(1.5, -2, 0.25)

	step := []Vec3{p}
	Rotate(step, V(rot.X(), 0, 0))
	Rotate(step, V(0, rot.Y(), 0))
	Rotate(step, V(0, 0, rot.Z()))

	combined := []Vec3{p}
	Rotate(combined, rot)

	if !near(step[0], combined[0]) {
		t.Errorf("combined rotation = %v, stepwise = %v", combined[0], step[0])
	}
}

func TestPlaceRotatesBeforeTranslating(t *testing.T) {
	vs := []Vec3{V(1, 0, 0)}
	Place(vs, V(0, 0, math.Pi/2), V(10, 0, 0))

	if want := V(10, 1, 0); !near(vs[0], want) {
		t.Errorf("Place() = %v, want %v", vs[0], want)
	}

	// The reverse order would swing the translated point around the origin.
	wrong := []Vec3{V(1, 0, 0)}
	Translate(wrong, V(10, 0, 0))
	Rotate(wrong, V(0, 0, math.Pi/2))
	if near(vs[0], wrong[0]) {
		t.Error("Place() should differ from translate-then-rotate")
	}
}

func TestRingsKeepStructure(t *testing.T) {
	rings := [][]Vec3{
		{V(1, 0, 0), V(0, 0, 1)},
		{V(2, 1, 0)},
		{},
	}
	PlaceRings(rings, V(0, math.Pi, 0), V(0, 3, 0))

	if len(rings) != 3 || len(rings[0]) != 2 || len(rings[1]) != 1 || len(rings[2]) != 0 {
		t.Fatalf("ring shape changed: %v", rings)
	}
	if want := V(-1, 3, 0); !near(rings[0][0], want) {
		t.Errorf("rings[0][0] = %v, want %v", rings[0][0], want)
	}
	if want := V(-2, 4, 0); !near(rings[1][0], want) {
		t.Errorf("rings[1][0] = %v, want %v", rings[1][0], want)
	}
}

func TestClone(t *testing.T) {
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
	src := []Vec3{V(1, 2, 3)}
	dst := Clone(src)
	dst[0] = V(0, 0, 0)
	if src[0] != V(1, 2, 3) {
		t.Error("Clone should not alias the source")
	}
}
