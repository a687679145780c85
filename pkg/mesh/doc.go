// Package mesh generates the geometry of a plant's parts.
//
// A plant is built from three kinds of entity: stalks, leaves and a pot.
// Each kind has a parameter set ([StalkParams], [LeafParams], [PotParams])
// and a pure generator that turns parameters into vertices in the entity's
// local frame.
//
// # Parameters
//
// Parameter sets come from three places:
//
//   - DefaultXParams: fixed reference shapes
//   - RandomXParams: independent draws from documented ranges
//   - WiggleXParams: a correlated variant of a base set
//
// Wiggling multiplies every continuous field by a per-field factor and
// copies resolution (and a leaf's outline) verbatim, so siblings grown from
// the same base keep the same polygon budget and styling.
//
// # Geometry
//
// [StalkVertices] walks a cursor upwards and bends it a little after every
// step, producing a polyline of Resolution points. [LeafVertices] traces a
// closed outline of 2·Resolution points from two phase-aligned sine curves.
// [PotRings] produces five rings of Resolution points: bottom, top,
// extrusion bottom, extrusion top and ground.
//
// Generators are total: a non-positive resolution yields no vertices
// rather than an error.
//
// # Entities
//
// [NewStalk], [NewLeaf] and [NewPot] generate vertices and place them with
// [geom.Place], which rotates before translating. SetParams regenerates a
// single entity in place.
package mesh
