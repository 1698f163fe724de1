// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumented code emits events about layout and reflow passes, cache
// operations and HTTP requests through three hook interfaces. Nothing is
// recorded until a consumer registers an implementation; several may be
// registered at once and every event is fanned out to each of them.
//
// Two implementations ship with the package: [LogHooks] writes every event
// to a charmbracelet logger at debug level, and [Counters] keeps totals that
// the HTTP API reports.
//
// # Usage
//
//	observability.Register(observability.NewLogHooks(logger), counters)
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnLayoutStart(ctx, len(boxes))
//	// ... lay out ...
//	observability.Engine().OnLayoutComplete(ctx, lines, duration, err)
package observability

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from layout and reflow passes.
type EngineHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, boxCount int)
	OnLayoutComplete(ctx context.Context, lineCount int, duration time.Duration, err error)

	// Reflow events (compress, align, compress-align)
	OnReflowStart(ctx context.Context, mode string, boxCount int)
	OnReflowComplete(ctx context.Context, mode string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnError records a request that failed with an error.
	OnError(ctx context.Context, method, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnLayoutStart(context.Context, int)                              {}
func (NoopEngineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)     {}
func (NoopEngineHooks) OnReflowStart(context.Context, string, int)                      {}
func (NoopEngineHooks) OnReflowComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

type registry struct {
	engine []EngineHooks
	cache  []CacheHooks
	http   []HTTPHooks
}

var (
	current atomic.Pointer[registry]
	writeMu sync.Mutex // serializes registry updates; reads are lock-free
)

func init() { current.Store(&registry{}) }

func update(fn func(r *registry)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	old := current.Load()
	next := &registry{
		engine: slices.Clone(old.engine),
		cache:  slices.Clone(old.cache),
		http:   slices.Clone(old.http),
	}
	fn(next)
	current.Store(next)
}

// Register adds each value as a consumer of every hook interface it
// implements. Values implementing none are ignored.
func Register(hooks ...any) {
	update(func(r *registry) {
		for _, h := range hooks {
			if e, ok := h.(EngineHooks); ok {
				r.engine = append(r.engine, e)
			}
			if c, ok := h.(CacheHooks); ok {
				r.cache = append(r.cache, c)
			}
			if x, ok := h.(HTTPHooks); ok {
				r.http = append(r.http, x)
			}
		}
	})
}

// SetEngineHooks replaces all engine consumers with h. A nil h is ignored.
func SetEngineHooks(h EngineHooks) {
	if h != nil {
		update(func(r *registry) { r.engine = []EngineHooks{h} })
	}
}

// SetCacheHooks replaces all cache consumers with h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = []CacheHooks{h} })
	}
}

// SetHTTPHooks replaces all HTTP consumers with h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = []HTTPHooks{h} })
	}
}

// Reset removes every consumer.
func Reset() {
	update(func(r *registry) { *r = registry{} })
}

// Engine returns the engine hooks to emit to. With a single consumer it is
// returned as is.
func Engine() EngineHooks {
	switch hs := current.Load().engine; len(hs) {
	case 0:
		return NoopEngineHooks{}
	case 1:
		return hs[0]
	default:
		return engineFanout(hs)
	}
}

// Cache returns the cache hooks to emit to.
func Cache() CacheHooks {
	switch hs := current.Load().cache; len(hs) {
	case 0:
		return NoopCacheHooks{}
	case 1:
		return hs[0]
	default:
		return cacheFanout(hs)
	}
}

// HTTP returns the HTTP hooks to emit to.
func HTTP() HTTPHooks {
	switch hs := current.Load().http; len(hs) {
	case 0:
		return NoopHTTPHooks{}
	case 1:
		return hs[0]
	default:
		return httpFanout(hs)
	}
}

type engineFanout []EngineHooks

func (f engineFanout) OnLayoutStart(ctx context.Context, n int) {
	for _, h := range f {
		h.OnLayoutStart(ctx, n)
	}
}

func (f engineFanout) OnLayoutComplete(ctx context.Context, lines int, d time.Duration, err error) {
	for _, h := range f {
		h.OnLayoutComplete(ctx, lines, d, err)
	}
}

func (f engineFanout) OnReflowStart(ctx context.Context, mode string, n int) {
	for _, h := range f {
		h.OnReflowStart(ctx, mode, n)
	}
}

func (f engineFanout) OnReflowComplete(ctx context.Context, mode string, d time.Duration, err error) {
	for _, h := range f {
		h.OnReflowComplete(ctx, mode, d, err)
	}
}

type cacheFanout []CacheHooks

func (f cacheFanout) OnCacheHit(ctx context.Context, keyType string) {
	for _, h := range f {
		h.OnCacheHit(ctx, keyType)
	}
}

func (f cacheFanout) OnCacheMiss(ctx context.Context, keyType string) {
	for _, h := range f {
		h.OnCacheMiss(ctx, keyType)
	}
}

func (f cacheFanout) OnCacheSet(ctx context.Context, keyType string, size int) {
	for _, h := range f {
		h.OnCacheSet(ctx, keyType, size)
	}
}

type httpFanout []HTTPHooks

func (f httpFanout) OnRequest(ctx context.Context, method, path string) {
	for _, h := range f {
		h.OnRequest(ctx, method, path)
	}
}

func (f httpFanout) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	for _, h := range f {
		h.OnResponse(ctx, method, path, status, d)
	}
}

func (f httpFanout) OnError(ctx context.Context, method, path string, err error) {
	for _, h := range f {
		h.OnError(ctx, method, path, err)
	}
}
