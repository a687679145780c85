// Package observability lets callers watch plant generation, document
// caching and HTTP traffic without this module importing a metrics backend.
//
// Packages report events through the registered hooks. Until something is
// registered every hook is a no-op. The CLI installs logging hooks when run
// with -v.
//
// Register hooks at startup:
//
//	observability.SetPlantHooks(myHooks)
//	observability.SetCacheHooks(myHooks)
//
// Emit events from library code:
//
//	start := time.Now()
//	d, err := genotype.Decode(code)
//	observability.Plant().OnDecode(ctx, len(code), time.Since(start), err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PlantHooks receives events from plant generation and the genotype codec.
type PlantHooks interface {
	// OnGenerate records a random plant. vertices is the total mesh size.
	OnGenerate(ctx context.Context, seed uint64, vertices int, duration time.Duration)

	OnDecode(ctx context.Context, codeLen int, duration time.Duration, err error)
	OnEncode(ctx context.Context, codeLen int, duration time.Duration, err error)
}

// CacheHooks receives events from document caching. kind is the document
// kind, "geometry" or "diagram".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks receives events from the HTTP server. route is the matched
// pattern, such as /v1/genotypes/decode, not the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopPlantHooks ignores every event. Embed it to implement a subset.
type NoopPlantHooks struct{}

func (NoopPlantHooks) OnGenerate(context.Context, uint64, int, time.Duration) {}
func (NoopPlantHooks) OnDecode(context.Context, int, time.Duration, error)    {}
func (NoopPlantHooks) OnEncode(context.Context, int, time.Duration, error)    {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds one registered hook set. Reads take no lock, so emitting an
// event costs one atomic load.
type slot[H any] struct {
	current atomic.Pointer[H]
	noop    H
}

func (s *slot[H]) load() H {
	if h := s.current.Load(); h != nil {
		return *h
	}
	return s.noop
}

func (s *slot[H]) store(h H) {
	if any(h) != nil {
		s.current.Store(&h)
	}
}

func (s *slot[H]) reset() { s.current.Store(nil) }

var (
	plantSlot = slot[PlantHooks]{noop: NoopPlantHooks{}}
	cacheSlot = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot  = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetPlantHooks registers plant hooks. A nil h is ignored.
func SetPlantHooks(h PlantHooks) { plantSlot.store(h) }

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.store(h) }

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.store(h) }

// Plant returns the registered plant hooks.
func Plant() PlantHooks { return plantSlot.load() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.load() }

// Reset restores the no-op hooks.
func Reset() {
	plantSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
