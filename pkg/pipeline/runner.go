package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/flowlayout/pkg/boxes"
	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/engine"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
	"github.com/matzehuels/flowlayout/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete reflow → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc boxes.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	docHash, err := hashBoxes(doc.Padding, doc.Items())
	if err != nil {
		return nil, err
	}
	result := &Result{DocumentHash: docHash}

	// Stage 1: Reflow
	reflowStart := time.Now()
	items, reflowHit, err := r.ReflowWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("reflow: %w", err)
	}
	result.Boxes = items
	result.Stats.ReflowTime = time.Since(reflowStart)
	result.Stats.BoxCount = len(items)
	result.CacheInfo.ReflowHit = reflowHit

	if opts.Mode != errors.ModeNone {
		r.Logger.Debug("reflowed boxes",
			"mode", opts.Mode,
			"boxes", len(items),
			"cached", reflowHit,
			"duration", result.Stats.ReflowTime)
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.LayoutWithCacheInfo(ctx, doc.Padding, items, opts.FrameWidth(doc), opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LineCount = len(res.Lines)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"boxes", len(items),
		"lines", len(res.Lines),
		"shown", res.ShownLines,
		"height", res.MeasuredHeight,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, res, docHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExecuteBatch runs Execute for every document, at most limit at a time.
// A limit of zero or less uses DefaultBatchConcurrency. The first failure
// cancels the remaining documents. Results are in input order.
func (r *Runner) ExecuteBatch(ctx context.Context, docs []boxes.Document, opts Options, limit int) ([]*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var finished atomic.Int32
	results := make([]*Result, len(docs))
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Execute(ctx, doc, opts)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			results[i] = res
			if opts.OnDocument != nil {
				opts.OnDocument(int(finished.Add(1)), len(docs))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ReflowWithCacheInfo applies opts.Mode to the document's boxes with caching
// and reports whether the result came from the cache.
func (r *Runner) ReflowWithCacheInfo(ctx context.Context, doc boxes.Document, opts Options) ([]flow.Box, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	items := doc.Items()
	if opts.Mode == errors.ModeNone {
		return items, false, nil
	}

	cfg, err := opts.FlowConfig(doc.Padding)
	if err != nil {
		return nil, false, err
	}
	e := engine.New(cfg)
	budget := e.Budget(opts.FrameWidth(doc))

	docHash, err := hashBoxes(doc.Padding, items)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.ReflowKey(docHash, cache.ReflowKeyOpts{Mode: opts.Mode, Budget: budget})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached []flow.Box
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "reflow")
				return cached, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "reflow")
	}

	hooks := observability.Engine()
	hooks.OnReflowStart(ctx, opts.Mode, len(items))
	start := time.Now()
	out, err := e.Reflow(opts.Mode, items, budget)
	hooks.OnReflowComplete(ctx, opts.Mode, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.store(ctx, "reflow", cacheKey, out, cache.ReflowTTL)
	return out, false, nil
}

// Reflow is a convenience wrapper that calls ReflowWithCacheInfo and discards the cache hit info.
func (r *Runner) Reflow(ctx context.Context, doc boxes.Document, opts Options) ([]flow.Box, error) {
	out, _, err := r.ReflowWithCacheInfo(ctx, doc, opts)
	return out, err
}

// LayoutWithCacheInfo lays out items in a frame of frameWidth with caching and
// reports whether the result came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, padding flow.Insets, items []flow.Box, frameWidth int, opts Options) (engine.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return engine.Result{}, false, err
	}
	cfg, err := opts.FlowConfig(padding)
	if err != nil {
		return engine.Result{}, false, err
	}
	height, err := opts.HeightSpec()
	if err != nil {
		return engine.Result{}, false, err
	}

	boxHash, err := hashBoxes(padding, items)
	if err != nil {
		return engine.Result{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(boxHash, opts.LayoutKeyOpts(frameWidth))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached engine.Result
			if err := json.Unmarshal(data, &cached); err == nil && restoreLines(&cached, items) {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Engine()
	hooks.OnLayoutStart(ctx, len(items))
	start := time.Now()
	res, err := engine.New(cfg).Layout(items, frameWidth, height)
	hooks.OnLayoutComplete(ctx, len(res.Lines), time.Since(start), err)
	if err != nil {
		return engine.Result{}, false, err
	}

	r.store(ctx, "layout", cacheKey, res, cache.LayoutTTL)
	return res, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// hashBoxes hashes the inputs that determine a layout besides the options.
func hashBoxes(padding flow.Insets, items []flow.Box) (string, error) {
	return cache.HashJSON(struct {
		Padding flow.Insets `json:"padding"`
		Boxes   []flow.Box  `json:"boxes"`
	}{padding, items})
}

// restoreLines refills Line.Boxes, which is not serialized, from the line
// indices. It reports false if the indices do not match items.
func restoreLines(res *engine.Result, items []flow.Box) bool {
	for i := range res.Lines {
		l := &res.Lines[i]
		l.Boxes = make([]flow.Box, 0, len(l.Indices))
		for _, idx := range l.Indices {
			if idx < 0 || idx >= len(items) {
				return false
			}
			l.Boxes = append(l.Boxes, items[idx])
		}
	}
	return true
}
