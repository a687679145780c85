// Package plant composes pots, stalks and leaves into one plant.
//
// # Random plants
//
// [New] grows a plant from a random source. Generation order matters
// because later parts depend on earlier ones:
//
//  1. base green and base brown
//  2. pot texture (over the brown) and leaf texture (around the green)
//  3. the pot
//  4. stalk count and spread, derived from the pot's ground radius
//  5. stalks, evenly spaced around the spread circle with small jitter
//  6. one leaf on the tip of every stalk
//
// All stalks are wiggled from one shared base and so are all leaves, which
// is what makes a plant look like a single organism.
//
// # Reconstructed plants
//
// [FromData] rebuilds a plant from its parameter tree with no derivation:
// every position, rotation and parameter is used as given, and stalk and
// leaf lists may have different lengths.
//
// [Plant.Data] returns the parameter tree. Its JSON field order is part of
// the genotype format.
package plant
