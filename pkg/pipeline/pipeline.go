// Package pipeline runs the plant operations shared by the CLI and the
// HTTP server.
//
// A [Runner] grows random plants, loads plants from genotypes, encodes
// plants back, grows batches concurrently and renders cached geometry and
// diagram documents:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Random(ctx, pipeline.Options{Seed: 42})
//	fmt.Println(res.Code)
//
//	res, err = runner.Load(ctx, code)
//	doc, hit, err := runner.Geometry(ctx, code)
//
// Every plant grown from the same seed is identical, so a [Result] always
// records the seed it was grown from.
package pipeline

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/potplant/pkg/errors"
	plantio "github.com/matzehuels/potplant/pkg/io"
	"github.com/matzehuels/potplant/pkg/plant"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultCount is the number of plants grown when Count is unset.
	DefaultCount = 1

	// MaxBatch bounds a single batch request.
	MaxBatch = 1000

	// TTLGeometry and TTLDiagram bound cached documents. Documents never
	// go stale, so the TTL only limits storage.
	TTLGeometry = 7 * 24 * time.Hour
	TTLDiagram  = 7 * 24 * time.Hour
)

// Output formats for a plant.
const (
	FormatCode = "code"
	FormatJSON = plantio.FormatJSON
	FormatYAML = plantio.FormatYAML
)

// Diagram formats.
const (
	DiagramSVG = "svg"
	DiagramDOT = "dot"
)

// Formats lists the plant output formats.
var Formats = []string{FormatCode, FormatJSON, FormatYAML}

// DiagramFormats lists the diagram output formats.
var DiagramFormats = []string{DiagramSVG, DiagramDOT}

// =============================================================================
// Options
// =============================================================================

// Options configures Random and Batch.
type Options struct {
	// Seed selects the plant. Zero draws a fresh seed.
	Seed uint64 `json:"seed,omitempty"`

	// Count is the batch size.
	Count int `json:"count,omitempty"`

	// Format selects the output written by WriteResult.
	Format string `json:"format,omitempty"`

	// Progress, when set, is called by Batch after each plant with the
	// number grown so far. Calls come from worker goroutines.
	Progress func(done, total int) `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent: a drawn seed is kept on later calls.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if err := errs.ValidateCount(o.Count, MaxBatch); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = FormatCode
	}
	if err := errs.ValidateFormat(o.Format, Formats...); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = freshSeed()
	}
	o.validated = true
	return nil
}

func freshSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// =============================================================================
// Result
// =============================================================================

// Result is one plant with its genotype.
type Result struct {
	// ID identifies the result in logs and API responses.
	ID uuid.UUID

	// Seed grew the plant. It is zero for plants loaded from a genotype.
	Seed uint64

	Code  string
	Plant *plant.Plant
	Data  plant.Data
	Stats plant.Stats
}

func newResult(seed uint64, code string, p *plant.Plant, d plant.Data) *Result {
	return &Result{
		ID:    uuid.New(),
		Seed:  seed,
		Code:  code,
		Plant: p,
		Data:  d,
		Stats: p.Stats(),
	}
}

// WriteResult writes res to w in the given plant format. Genotypes are
// written one per line.
func WriteResult(w io.Writer, res *Result, format string) error {
	switch format {
	case FormatCode:
		_, err := fmt.Fprintln(w, res.Code)
		return err
	case FormatJSON, FormatYAML:
		return plantio.WriteTree(w, res.Data, format)
	}
	return errs.ValidateFormat(format, Formats...)
}
