package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/potplant/pkg/cache"
	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/genotype"
	plantio "github.com/matzehuels/potplant/pkg/io"
	"github.com/matzehuels/potplant/pkg/observability"
	"github.com/matzehuels/potplant/pkg/plant"
	"github.com/matzehuels/potplant/pkg/sample"
)

// Runner executes plant operations with document caching. It holds no
// per-request state and is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides TTLGeometry and TTLDiagram when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default keys and a nil logger uses the charm default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// =============================================================================
// Plants
// =============================================================================

// Random grows the plant selected by opts.Seed.
func (r *Runner) Random(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return r.grow(ctx, opts.Seed)
}

func (r *Runner) grow(ctx context.Context, seed uint64) (*Result, error) {
	start := time.Now()
	p := plant.New(sample.New(seed))
	d := p.Data()

	code, err := r.encode(ctx, d)
	if err != nil {
		return nil, err
	}
	res := newResult(seed, code, p, d)
	observability.Plant().OnGenerate(ctx, seed, res.Stats.Vertices, time.Since(start))
	r.Logger.Debug("grew plant",
		"seed", seed,
		"stalks", res.Stats.Stalks,
		"leaves", res.Stats.Leaves,
		"vertices", res.Stats.Vertices)
	return res, nil
}

// Load decodes a user-supplied genotype into a plant.
func (r *Runner) Load(ctx context.Context, code string) (*Result, error) {
	if err := errs.ValidateGenotypeInput(code); err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)

	start := time.Now()
	d, err := genotype.Decode(code)
	observability.Plant().OnDecode(ctx, len(code), time.Since(start), err)
	if err != nil {
		r.Logger.Debug("rejected genotype", "length", len(code), "err", err)
		return nil, err
	}
	return newResult(0, code, plant.FromData(d), d), nil
}

// Export encodes p as a genotype.
func (r *Runner) Export(ctx context.Context, p *plant.Plant) (string, error) {
	return r.encode(ctx, p.Data())
}

// Encode validates a parameter tree and encodes it.
func (r *Runner) Encode(ctx context.Context, d plant.Data) (*Result, error) {
	code, err := r.encode(ctx, d)
	if err != nil {
		return nil, err
	}
	return newResult(0, code, plant.FromData(d), d), nil
}

func (r *Runner) encode(ctx context.Context, d plant.Data) (string, error) {
	start := time.Now()
	code, err := genotype.Encode(d)
	observability.Plant().OnEncode(ctx, len(code), time.Since(start), err)
	return code, err
}

// Batch grows opts.Count plants concurrently. Plant i is grown from
// opts.Seed+i, so a batch is reproducible from its first seed.
func (r *Runner) Batch(ctx context.Context, opts Options) ([]*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]*Result, opts.Count)
	var grown atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range results {
		seed := opts.Seed + uint64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.grow(ctx, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = res
			if n := grown.Add(1); opts.Progress != nil {
				opts.Progress(int(n), opts.Count)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.Logger.Info("grew batch",
		"count", opts.Count,
		"seed", opts.Seed,
		"duration", time.Since(start))
	return results, nil
}

// =============================================================================
// Documents
// =============================================================================

// Geometry returns the compact geometry document for code and whether it
// came from the cache.
func (r *Runner) Geometry(ctx context.Context, code string) ([]byte, bool, error) {
	key := r.Keyer.GeometryKey(strings.TrimSpace(code))
	return r.cached(ctx, "geometry", key, r.ttl(TTLGeometry), func() ([]byte, error) {
		res, err := r.Load(ctx, code)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := plantio.WriteGeometry(&buf, plantio.NewGeometry(res.Plant), false); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

// Diagram returns the structure diagram of code in format, svg or dot.
func (r *Runner) Diagram(ctx context.Context, code, format string, detailed bool) ([]byte, bool, error) {
	if err := errs.ValidateFormat(format, DiagramFormats...); err != nil {
		return nil, false, err
	}
	key := r.Keyer.DiagramKey(strings.TrimSpace(code), cache.DiagramKeyOpts{Format: format, Detailed: detailed})
	return r.cached(ctx, "diagram", key, r.ttl(TTLDiagram), func() ([]byte, error) {
		res, err := r.Load(ctx, code)
		if err != nil {
			return nil, err
		}
		dot := plantio.ToDOT(res.Plant, plantio.DiagramOptions{Detailed: detailed})
		if format == DiagramDOT {
			return []byte(dot), nil
		}
		svg, err := plantio.RenderSVG(ctx, dot)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "render diagram")
		}
		return svg, nil
	})
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// cached serves key from the cache or builds and stores it. Cache
// failures are logged and never fail the request.
func (r *Runner) cached(ctx context.Context, kind, key string, ttl time.Duration, build func() ([]byte, error)) ([]byte, bool, error) {
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "kind", kind, "err", err)
	} else if hit {
		hooks.OnCacheHit(ctx, kind)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, kind)

	data, err = build()
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "err", err)
	} else {
		hooks.OnCacheSet(ctx, kind, len(data))
	}
	return data, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
