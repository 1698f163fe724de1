package adapter

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowlayout/pkg/engine"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
)

// Host owns the current box order for one bound adapter and runs engine
// passes over it. All methods are safe for concurrent use.
type Host struct {
	engine *engine.Engine
	logger *log.Logger

	mu      sync.Mutex
	adapter Adapter
	boxes   []flow.Box
	counts  []int
	loadErr error
}

// NewHost returns an unbound host. If logger is nil, log.Default is used.
func NewHost(e *engine.Engine, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	return &Host{engine: e, logger: logger}
}

// Engine returns the engine the host lays out with.
func (h *Host) Engine() *engine.Engine {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine
}

// SetConfig switches to a new layout configuration. The current box order,
// including any reflow, is kept; recorded line counts are dropped.
func (h *Host) SetConfig(cfg flow.Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine = engine.New(cfg)
	h.counts = nil
}

// Bind attaches the host to a, detaching it from any previous adapter, and
// loads a's boxes. A nil adapter, including a nil *ListAdapter, is rejected
// before any other work. Other Adapter implementations must not be typed
// nil pointers.
func (h *Host) Bind(a Adapter) error {
	if isNil(a) {
		return errors.New(errors.ErrCodeInvalidAdapter, "adapter cannot be nil")
	}

	h.mu.Lock()
	old := h.adapter
	h.adapter = a
	h.mu.Unlock()

	if old != nil && old != a {
		old.UnregisterObserver(h)
	}
	a.RegisterObserver(h)
	return h.Reset()
}

// Unbind detaches the host from its adapter and clears its boxes.
func (h *Host) Unbind() {
	h.mu.Lock()
	old := h.adapter
	h.adapter, h.boxes, h.counts, h.loadErr = nil, nil, nil, nil
	h.mu.Unlock()

	if old != nil {
		old.UnregisterObserver(h)
	}
}

// OnChanged reloads the box list from the bound adapter.
func (h *Host) OnChanged() {
	if err := h.Reset(); err != nil {
		h.logger.Warn("reload adapter", "error", err)
	}
}

// Reset discards any reflowed order and re-reads the adapter.
func (h *Host) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadLocked()
}

func (h *Host) loadLocked() error {
	h.counts = nil
	if h.adapter == nil {
		h.boxes, h.loadErr = nil, nil
		return nil
	}

	boxes, err := readBoxes(h.adapter)
	if err != nil {
		h.loadErr = err
		return err
	}
	if err := errors.ValidateBoxes(boxes); err != nil {
		h.loadErr = err
		return err
	}
	h.boxes, h.loadErr = boxes, nil
	h.logger.Debug("loaded boxes", "count", len(boxes))
	return nil
}

// readBoxes copies a's boxes, in one read when a is a Snapshotter.
func readBoxes(a Adapter) ([]flow.Box, error) {
	if s, ok := a.(Snapshotter); ok {
		return s.Boxes(), nil
	}
	n := a.Count()
	boxes := make([]flow.Box, 0, n)
	for i := 0; i < n; i++ {
		b, err := a.Box(i)
		if err != nil {
			return nil, fmt.Errorf("load box %d: %w", i, err)
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}

func isNil(a Adapter) bool {
	switch v := a.(type) {
	case nil:
		return true
	case *ListAdapter:
		return v == nil
	}
	return false
}

// Boxes returns a copy of the current box order.
func (h *Host) Boxes() []flow.Box {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]flow.Box(nil), h.boxes...)
}

// LineCounts returns the per-line box counts of the last layout.
func (h *Host) LineCounts() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int(nil), h.counts...)
}

// Layout lays out the current boxes in a frame of frameWidth and records the
// line counts for TruncateToLines.
func (h *Host) Layout(frameWidth int, height flow.HeightSpec) (engine.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.readyLocked(); err != nil {
		return engine.Result{}, err
	}

	res, err := h.engine.Layout(h.boxes, frameWidth, height)
	if err != nil {
		return engine.Result{}, err
	}
	h.counts = res.LineCounts
	return res, nil
}

// Compress reorders the current boxes to use fewer lines in a frame of
// frameWidth.
func (h *Host) Compress(frameWidth int) error {
	return h.reflow(errors.ModeCompress, frameWidth)
}

// Align inserts spacers so that wrapped lines fill a frame of frameWidth.
func (h *Host) Align(frameWidth int) error {
	return h.reflow(errors.ModeAlign, frameWidth)
}

// CompressAndAlign runs Compress then Align.
func (h *Host) CompressAndAlign(frameWidth int) error {
	return h.reflow(errors.ModeCompressAlign, frameWidth)
}

func (h *Host) reflow(mode string, frameWidth int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.readyLocked(); err != nil {
		return err
	}

	out, err := h.engine.Reflow(mode, h.boxes, h.engine.Budget(frameWidth))
	if err != nil {
		return err
	}
	h.boxes, h.counts = out, nil
	h.logger.Debug("reflowed", "mode", mode, "boxes", len(out))
	return nil
}

// TruncateToLines drops every box past the first n lines of the last layout.
func (h *Host) TruncateToLines(n int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.readyLocked(); err != nil {
		return err
	}

	out, err := h.engine.TruncateToLines(h.boxes, n, h.counts)
	if err != nil {
		return err
	}
	h.boxes, h.counts = out, nil
	return nil
}

func (h *Host) readyLocked() error {
	if h.adapter == nil {
		return errors.New(errors.ErrCodeInvalidAdapter, "no adapter bound")
	}
	return h.loadErr
}
