// Package io reads and writes plant documents.
//
// # Parameter Trees
//
// [WriteTree] renders a plant's parameter tree as indented JSON or YAML,
// and [ReadTree] reads either back. The tree has the same shape as the
// genotype, so a tree file and a genotype describe the same plant:
//
//	d, err := io.ImportTree("plant.yaml")
//	code, err := genotype.Encode(d)
//
// ReadTree validates against the genotype schema. A YAML tree may spell
// whole numbers as integers; they are widened before validation.
//
// # Geometry
//
// [NewGeometry] flattens a plant into world-space vertex lists with the
// colors a renderer needs. The pot is described by its five rings, each
// stalk by its polyline and each leaf by its closed outline.
//
// # Structure Diagram
//
// [ToDOT] describes the plant as a Graphviz ownership tree (pot, stalks,
// leaves) and [RenderSVG] lays it out with the embedded Graphviz library.
package io
