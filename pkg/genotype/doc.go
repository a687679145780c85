// Package genotype converts plant parameter trees to short shareable
// strings and back.
//
// # Format
//
// A genotype is the compact JSON rendering of a [plant.Data] tree with
// every number rounded to two decimals, compressed by an ordered table of
// literal substitutions such as
//
//	{"stalkCount":      ->  >
//	}},"stalkData":[{   ->  $S
//	null                ->  !
//
// The table is part of the format. Patterns are replaced in declaration
// order when encoding and tokens are expanded in the same order when
// decoding; reordering the table breaks previously shared genotypes.
//
// # Decoding
//
// [Decode] expands the tokens, parses the JSON and checks it against the
// shape of [plant.Data] before anything is built:
//
//   - every key of the reference tree must be present
//   - objects and array elements are checked recursively
//   - scalars must be numbers, and counts and resolutions whole numbers
//   - outline is the one exception and may be null or a string
//
// Values are not range checked and stalk and leaf lists may differ in
// length. Failures are coded errors: [errors.ErrCodeInvalidSyntax] when the
// text does not parse, [errors.ErrCodeSchemaViolation] with the offending
// path (for example leafData[2].meshParams.skew) otherwise.
//
// # Precision
//
// Encoding is lossy only below two decimals; decode(encode(d)) equals d
// rounded with [Round].
package genotype
