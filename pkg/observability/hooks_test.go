package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type recordingEngine struct {
	NoopEngineHooks
	layouts int
}

func (r *recordingEngine) OnLayoutComplete(context.Context, int, time.Duration, error) {
	r.layouts++
}

type cacheOnly struct{ NoopCacheHooks }

func TestRegistryDefaults(t *testing.T) {
	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Errorf("Engine() = %T, want NoopEngineHooks", Engine())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestRegisterByInterface(t *testing.T) {
	defer Reset()
	Reset()

	eng := &recordingEngine{}
	cc := &cacheOnly{}
	Register(eng, cc, "not a hook")

	if Engine() != EngineHooks(eng) {
		t.Errorf("Engine() = %T, want the single engine consumer", Engine())
	}
	if Cache() != CacheHooks(cc) {
		t.Errorf("Cache() = %T, want the single cache consumer", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want no-op", HTTP())
	}
}

func TestRegisterFansOut(t *testing.T) {
	defer Reset()
	Reset()

	a, b := &recordingEngine{}, &recordingEngine{}
	Register(a)
	Register(b)
	Engine().OnLayoutComplete(context.Background(), 2, time.Millisecond, nil)

	if a.layouts != 1 || b.layouts != 1 {
		t.Errorf("layouts = %d, %d; want 1, 1", a.layouts, b.layouts)
	}
}

func TestSetReplaces(t *testing.T) {
	defer Reset()
	Reset()

	a, b := &recordingEngine{}, &recordingEngine{}
	Register(a)
	SetEngineHooks(b)
	SetEngineHooks(nil)

	if Engine() != EngineHooks(b) {
		t.Error("SetEngineHooks should replace earlier consumers and ignore nil")
	}
}

func TestRegistryConcurrentUse(t *testing.T) {
	defer Reset()
	Reset()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Register(NewCounters())
		}()
		go func() {
			defer wg.Done()
			Engine().OnLayoutStart(context.Background(), 1)
			Cache().OnCacheMiss(context.Background(), "layout")
		}()
	}
	wg.Wait()
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	c.OnLayoutComplete(ctx, 3, 2*time.Millisecond, nil)
	c.OnLayoutComplete(ctx, 0, 4*time.Millisecond, errors.New("bad box"))
	c.OnReflowStart(ctx, "compress", 4)
	c.OnReflowComplete(ctx, "compress", time.Millisecond, nil)
	c.OnReflowStart(ctx, "align", 4)
	c.OnReflowComplete(ctx, "align", time.Millisecond, errors.New("boom"))
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "reflow")
	c.OnCacheSet(ctx, "layout", 120)
	c.OnRequest(ctx, "POST", "/v1/layout")
	c.OnResponse(ctx, "POST", "/v1/layout", 200, time.Millisecond)
	c.OnResponse(ctx, "POST", "/v1/layout", 400, time.Millisecond)
	c.OnResponse(ctx, "POST", "/v1/layout", 400, time.Millisecond)

	s := c.Snapshot()
	if s.Layouts != 2 || s.LayoutErrors != 1 {
		t.Errorf("layouts = %d/%d errors, want 2/1", s.Layouts, s.LayoutErrors)
	}
	if s.MeanLayout != "3ms" {
		t.Errorf("MeanLayout = %q, want 3ms", s.MeanLayout)
	}
	if s.Reflows != 2 || s.ReflowErrors != 1 || s.ReflowsByMode["compress"] != 1 || s.ReflowsByMode["align"] != 1 {
		t.Errorf("reflows = %+v", s)
	}
	if s.CacheHits != 1 || s.CacheMisses != 1 || s.CacheBytes != 120 {
		t.Errorf("cache = %d/%d/%d", s.CacheHits, s.CacheMisses, s.CacheBytes)
	}
	if s.Requests != 1 || s.Responses["200"] != 1 || s.Responses["400"] != 2 {
		t.Errorf("http = %d %v", s.Requests, s.Responses)
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnLayoutComplete(ctx, 4, time.Millisecond, nil)
	h.OnReflowComplete(ctx, "align", time.Millisecond, errors.New("boom"))
	h.OnCacheSet(ctx, "layout", 99)

	out := buf.String()
	for _, want := range []string{"layout done", "lines=4", "reflow failed", "boom", "cache set", "bytes=99"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
