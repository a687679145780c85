package io

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/potplant/pkg/plant"
	"github.com/matzehuels/potplant/pkg/texture"
)

// DiagramOptions configures the structure diagram.
type DiagramOptions struct {
	// Detailed adds mesh parameters to each node label.
	Detailed bool
}

// ToDOT describes p as a Graphviz digraph. Leaf i hangs from stalk i;
// leaves without a stalk hang from the pot with a dashed edge. Nodes are
// filled with the plant's own colors.
func ToDOT(p *plant.Plant, opts DiagramOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=20, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	potLabel := "pot"
	if opts.Detailed && p.Pot != nil {
		potLabel += "\n" + paramLines(p.Pot.Params().String())
	}
	writeNode(&buf, "pot", potLabel, p.PotTexture.BaseColor)

	for i, s := range p.Stalks {
		label := fmt.Sprintf("stalk %d", i)
		if opts.Detailed {
			label += "\n" + paramLines(s.Params().String())
		}
		writeNode(&buf, stalkID(i), label, p.BaseGreen)
	}
	leafColor := p.LeafTexture.Colors.BaseColor.RGB()
	for i, l := range p.Leaves {
		label := fmt.Sprintf("leaf %d", i)
		if opts.Detailed {
			label += "\n" + paramLines(l.Params().String())
		}
		writeNode(&buf, leafID(i), label, leafColor)
	}

	buf.WriteString("\n")
	for i := range p.Stalks {
		fmt.Fprintf(&buf, "  %q -> %q;\n", "pot", stalkID(i))
	}
	for i := range p.Leaves {
		if i < len(p.Stalks) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", stalkID(i), leafID(i))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", "pot", leafID(i))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func stalkID(i int) string { return "stalk" + strconv.Itoa(i) }
func leafID(i int) string  { return "leaf" + strconv.Itoa(i) }

func writeNode(buf *bytes.Buffer, id, label string, fill texture.RGB) {
	fmt.Fprintf(buf, "  %q [label=%q, fillcolor=%q, fontcolor=%q];\n", id, label, fill.Hex(), textColor(fill))
}

// textColor picks black or white for legibility on fill.
func textColor(fill texture.RGB) string {
	if l, _, _ := fill.Color().Clamped().Lab(); l < 0.55 {
		return "white"
	}
	return "black"
}

// paramLines turns "k=v k=v" into one pair per line.
func paramLines(s string) string {
	return strings.ReplaceAll(s, " ", "\n")
}

// RenderSVG lays out a DOT graph with Graphviz and returns the SVG with a
// normalized root element.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one whose viewBox starts
// at the origin and whose size matches it, so the diagram scales cleanly
// when embedded.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
