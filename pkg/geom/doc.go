// Package geom places vertex buffers in 3-D space.
//
// # Transforms
//
// Every entity of a plant is generated in its own local frame and then
// placed into the scene by a rotation followed by a translation:
//
//	geom.Place(vertices, rotation, position)
//
// The order is fixed. Rotating after translating would swing the entity
// around the scene origin instead of its own anchor, so callers should go
// through [Place] or [PlaceRings] rather than combining [Rotate] and
// [Translate] by hand.
//
// # Rotation
//
// Rotations are Euler angles in radians. [Matrix] builds one combined
// matrix Rz·Ry·Rx, which is the intrinsic Z, then Y, then X rotation, and
// applies it to every vertex in place.
//
// # Rings
//
// Pots are described as a sequence of vertex rings. [RotateRings],
// [TranslateRings] and [PlaceRings] map the same operation over each ring
// independently so ring boundaries are preserved.
package geom
