// Package texture holds the appearance parameters of a plant.
//
// Textures themselves are painted by a renderer. This package only decides
// the colors and the small numeric knobs (gradient strength, vein count and
// slope, shadow and highlight intensity) that the renderer consumes, and
// that travel inside a genotype.
//
// # Colors
//
// Base colors are sampled in HSB space, matching how a painter would pick
// "some green" or "some brown", and stored as RGB channels in [0, 255].
// [NewLeafColors] derives a lighter gradient color and a bright vein color
// from the plant's base green so all leaves share one palette.
package texture
