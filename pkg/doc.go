// Package pkg provides the core libraries for Potplant, a procedural potted
// plant generator.
//
// # Overview
//
// Potplant grows random plants from a seed: a pot, a few stalks rising from
// its soil and a leaf at the tip of each stalk. Every plant is described by
// a parameter tree, and every tree encodes to a short shareable genotype.
// The pkg directory is organized into three main areas:
//
//  1. Generation - sampling, geometry and the plant model
//  2. Codec - the genotype format and document export
//  3. Infrastructure - caching, orchestration, errors and hooks
//
// # Architecture
//
// The typical data flow through Potplant:
//
//	seed
//	  ↓
//	[sample] package (deterministic random source)
//	  ↓
//	[texture] + [mesh] packages (colors, pot/stalk/leaf parameters and vertices)
//	  ↓
//	[plant] package (composition and parameter tree)
//	  ↓
//	[genotype] package (compact code) / [io] package (JSON, YAML, geometry, diagrams)
//
// # Quick Start
//
// Grow a plant and share it:
//
//	import (
//	    "github.com/matzehuels/potplant/pkg/genotype"
//	    "github.com/matzehuels/potplant/pkg/plant"
//	    "github.com/matzehuels/potplant/pkg/sample"
//	)
//
//	p := plant.New(sample.New(42))
//	code, _ := genotype.Encode(p.Data())
//
//	d, err := genotype.Decode(code)
//	if err != nil {
//	    // errors.IsRejected(err) for malformed codes
//	}
//	same := plant.FromData(d)
//
// # Main Packages
//
// ## Generation
//
// [sample] - Seeded random source plus Range and Pick helpers shared by every
// sampler.
//
// [geom] - Vectors and the Euler rotation used to place vertex buffers.
//
// [mesh] - Pot, stalk and leaf parameters with their vertex generators.
//
// [texture] - Base colors, leaf palettes and pot texture parameters.
//
// [plant] - Composes a pot, stalks and leaves and converts to and from the
// serializable parameter tree.
//
// ## Codec
//
// [genotype] - Encodes parameter trees as genotypes: JSON with rounded
// numbers, compressed by a fixed substitution table. Decoding validates the
// tree against the schema before building a plant.
//
// [io] - Parameter trees as JSON or YAML files, world-space geometry
// documents and Graphviz structure diagrams.
//
// ## Infrastructure
//
// [pipeline] - Random, load, encode and batch operations plus cached
// geometry and diagram documents, shared by the CLI and the HTTP server.
//
// [cache] - Document caches: null, memory, file and Redis backends behind one
// interface, with deterministic keys.
//
// [errors] - Machine-readable error codes and input validation.
//
// [observability] - Hooks for generation, codec, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/genotype/...  # Specific package
//	go test -short ./...        # Skip Graphviz rendering
//	go test -run Example        # Examples only
//
// [sample]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/sample
// [geom]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/geom
// [mesh]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/mesh
// [texture]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/texture
// [plant]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/plant
// [genotype]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/genotype
// [io]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/potplant/pkg/buildinfo
package pkg
