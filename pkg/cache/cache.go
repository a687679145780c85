// Package cache stores rendered plant documents keyed by genotype.
//
// Decoding and meshing a genotype is deterministic, so the geometry and
// diagram documents derived from a code never change. The serve command
// keeps them in a [Cache] to skip the work on repeated requests.
//
// Four backends are provided:
//   - [MemoryCache] for a single server process
//   - [RedisCache] for servers sharing a Redis instance
//   - [FileCache] for the CLI, under the user cache directory
//   - [NullCache] when caching is disabled
//
// Keys are produced by a [Keyer]:
//
//	keys := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "potplant:")
//	data, hit, err := c.Get(ctx, keys.GeometryKey(code))
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNetwork marks a failed round trip to a remote backend.
var ErrNetwork = errors.New("cache backend unreachable")

// Cache is a byte store with per-entry expiry. A ttl of zero keeps the
// entry until it is deleted.
type Cache interface {
	// Get returns the entry for key. A miss is reported with hit == false
	// and a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys for plant documents.
type Keyer interface {
	GeometryKey(code string) string
	DiagramKey(code string, opts DiagramKeyOpts) string
}

// DiagramKeyOpts are the options that change a rendered diagram.
type DiagramKeyOpts struct {
	Format   string
	Detailed bool
}

func (o DiagramKeyOpts) variant() string {
	if o.Detailed {
		return o.Format + "+detail"
	}
	return o.Format
}

// DefaultKeyer hashes the genotype into the key so that key length does
// not depend on plant size. Diagram keys keep the format in clear text:
//
//	geometry:<sha256>
//	diagram:svg+detail:<sha256>
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GeometryKey returns the key of the geometry document for code.
func (DefaultKeyer) GeometryKey(code string) string {
	return "geometry:" + digest(code)
}

// DiagramKey returns the key of the structure diagram for code.
func (DefaultKeyer) DiagramKey(code string, opts DiagramKeyOpts) string {
	return "diagram:" + opts.variant() + ":" + digest(code)
}

// ScopedKeyer prefixes every key of an inner Keyer, so several
// deployments can share one Redis database.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) GeometryKey(code string) string {
	return k.prefix + k.inner.GeometryKey(code)
}

func (k *ScopedKeyer) DiagramKey(code string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(code, opts)
}

// digest returns the hex SHA-256 of s.
func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
