// Package cache stores layout and reflow results keyed by content hash.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for multi-instance HTTP servers
//   - [NullCache]: disables caching
//
// Keys are built by a [Keyer] from the hash of the input document and the
// options that influence the result, so identical requests share an entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// TTLs for cached results. Results are deterministic in their inputs, so the
// TTL only bounds disk and memory use.
const (
	LayoutTTL = 7 * 24 * time.Hour
	ReflowTTL = 7 * 24 * time.Hour
)

// LayoutKeyOpts holds the layout settings that affect a layout result.
type LayoutKeyOpts struct {
	Width       int    `json:"width"`
	Gravity     string `json:"gravity"`
	LinePadding int    `json:"line_padding"`
	MaxLines    int    `json:"max_lines"`
	HeightMode  string `json:"height_mode,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// ReflowKeyOpts holds the settings that affect a reflowed box order.
type ReflowKeyOpts struct {
	Mode   string `json:"mode"`
	Budget int    `json:"budget"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for the layout of the document with docHash.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ReflowKey returns the key for a reflow of the document with docHash.
	ReflowKey(docHash string, opts ReflowKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "reflow:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ReflowKey implements Keyer.
func (DefaultKeyer) ReflowKey(docHash string, opts ReflowKeyOpts) string {
	return hashKey("reflow", docHash, opts)
}

// NullCache never stores anything; every Get is a miss. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
