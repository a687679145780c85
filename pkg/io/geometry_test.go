package io

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/matzehuels/potplant/pkg/mesh"
	"github.com/matzehuels/potplant/pkg/plant"
	"github.com/matzehuels/potplant/pkg/sample"
)

func TestNewGeometry(t *testing.T) {
	r := sample.New(11)
	for i := 0; i < 50; i++ {
		p := plant.New(r)
		g := NewGeometry(p)

		if got, want := g.VertexCount(), p.Stats().Vertices; got != want {
			t.Fatalf("VertexCount() = %d, want %d", got, want)
		}
		if len(g.Stalks) != len(p.Stalks) || len(g.Leaves) != len(p.Leaves) {
			t.Fatalf("got %d stalks, %d leaves", len(g.Stalks), len(g.Leaves))
		}
		if g.Stalks[0].Color != p.BaseGreen.Hex() {
			t.Errorf("stalk color = %s, want %s", g.Stalks[0].Color, p.BaseGreen.Hex())
		}
		if g.Pot.Color != p.PotTexture.BaseColor.Hex() {
			t.Errorf("pot color = %s", g.Pot.Color)
		}

		for _, s := range g.Stalks {
			for _, v := range s.Vertices {
				for k := range v {
					if v[k] < g.Bounds.Min[k] || v[k] > g.Bounds.Max[k] {
						t.Fatalf("vertex %v outside bounds %+v", v, g.Bounds)
					}
				}
			}
		}
	}
}

func TestNewGeometryRings(t *testing.T) {
	pp := mesh.DefaultPotParams()
	p := &plant.Plant{Pot: mesh.NewPot(geomZero, geomZero, pp)}
	g := NewGeometry(p)

	for name, ring := range map[string][]Point{
		"bottom": g.Pot.Bottom, "top": g.Pot.Top, "ground": g.Pot.Ground,
		"extrusionBottom": g.Pot.ExtrusionBottom, "extrusionTop": g.Pot.ExtrusionTop,
	} {
		if len(ring) != pp.Resolution {
			t.Errorf("%s ring has %d points, want %d", name, len(ring), pp.Resolution)
		}
	}
	if g.Pot.Top[0][1] != pp.Height {
		t.Errorf("top ring height = %v, want %v", g.Pot.Top[0][1], pp.Height)
	}
	if g.Bounds.Min[1] != 0 || g.Bounds.Max[1] != pp.Height {
		t.Errorf("bounds = %+v", g.Bounds)
	}
	if g.Pot.GroundColor != "#333333" {
		t.Errorf("ground color = %s", g.Pot.GroundColor)
	}
}

func TestGeometryOutline(t *testing.T) {
	d := plant.New(sample.New(3)).Data()
	outline := "darkgreen"
	d.LeafData[0].MeshParams.Outline = &outline
	d.LeafData[1].MeshParams.Outline = nil

	g := NewGeometry(plant.FromData(d))
	if g.Leaves[0].Outline != outline || g.Leaves[1].Outline != "" {
		t.Errorf("outlines = %q, %q", g.Leaves[0].Outline, g.Leaves[1].Outline)
	}

	var buf bytes.Buffer
	if err := WriteGeometry(&buf, g, false); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Leaves []map[string]any `json:"leaves"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.Leaves[1]["outline"]; ok {
		t.Error("empty outline should be omitted")
	}
}

func TestGeometryEmptyPlant(t *testing.T) {
	g := NewGeometry(&plant.Plant{})
	if g.VertexCount() != 0 || g.Bounds != (Bounds{}) {
		t.Errorf("empty plant geometry = %+v", g)
	}
	var buf bytes.Buffer
	if err := WriteGeometry(&buf, g, true); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"stalks": []`)) {
		t.Errorf("stalks should encode as an empty list:\n%s", buf.String())
	}
}
