package observability

import (
	"context"
	"maps"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Counters implements every hook interface by keeping running totals. It is
// safe for concurrent use.
type Counters struct {
	started time.Time

	layouts      atomic.Int64
	layoutErrors atomic.Int64
	reflows      atomic.Int64
	reflowErrors atomic.Int64
	layoutNanos  atomic.Int64

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	cacheBytes  atomic.Int64

	requests atomic.Int64
	mu       sync.Mutex
	statuses map[int]int64
	modes    map[string]int64
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{
		started:  time.Now(),
		statuses: make(map[int]int64),
		modes:    make(map[string]int64),
	}
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Uptime        string           `json:"uptime"`
	Layouts       int64            `json:"layouts"`
	LayoutErrors  int64            `json:"layout_errors"`
	MeanLayout    string           `json:"mean_layout"`
	Reflows       int64            `json:"reflows"`
	ReflowErrors  int64            `json:"reflow_errors"`
	ReflowsByMode map[string]int64 `json:"reflows_by_mode"`
	CacheHits     int64            `json:"cache_hits"`
	CacheMisses   int64            `json:"cache_misses"`
	CacheBytes    int64            `json:"cache_bytes_written"`
	Requests      int64            `json:"requests"`
	Responses     map[string]int64 `json:"responses"` // keyed by status code
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Snapshot {
	s := Snapshot{
		Uptime:       time.Since(c.started).Round(time.Second).String(),
		Layouts:      c.layouts.Load(),
		LayoutErrors: c.layoutErrors.Load(),
		Reflows:      c.reflows.Load(),
		ReflowErrors: c.reflowErrors.Load(),
		CacheHits:    c.cacheHits.Load(),
		CacheMisses:  c.cacheMisses.Load(),
		CacheBytes:   c.cacheBytes.Load(),
		Requests:     c.requests.Load(),
		MeanLayout:   "0s",
		Responses:    make(map[string]int64),
	}
	if s.Layouts > 0 {
		s.MeanLayout = (time.Duration(c.layoutNanos.Load()) / time.Duration(s.Layouts)).String()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	s.ReflowsByMode = maps.Clone(c.modes)
	for code, n := range c.statuses {
		s.Responses[strconv.Itoa(code)] = n
	}
	return s
}

func (c *Counters) OnLayoutStart(context.Context, int) {}

func (c *Counters) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	c.layouts.Add(1)
	c.layoutNanos.Add(int64(d))
	if err != nil {
		c.layoutErrors.Add(1)
	}
}

func (c *Counters) OnReflowStart(_ context.Context, mode string, _ int) {
	c.mu.Lock()
	c.modes[mode]++
	c.mu.Unlock()
}

func (c *Counters) OnReflowComplete(_ context.Context, _ string, _ time.Duration, err error) {
	c.reflows.Add(1)
	if err != nil {
		c.reflowErrors.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.cacheMisses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.cacheBytes.Add(int64(size))
}

func (c *Counters) OnRequest(context.Context, string, string) { c.requests.Add(1) }

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	c.mu.Lock()
	c.statuses[status]++
	c.mu.Unlock()
}

func (c *Counters) OnError(context.Context, string, string, error) {}

var (
	_ EngineHooks = (*Counters)(nil)
	_ CacheHooks  = (*Counters)(nil)
	_ HTTPHooks   = (*Counters)(nil)
)
