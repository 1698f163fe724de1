// Package engine composes the flow and transform packages into the
// operations a hosting shell calls: a validated layout pass and the reflow
// transforms that produce a new box order for the next pass.
//
// An Engine holds only its normalised configuration. Every call computes its
// result from scratch, so one Engine may be shared between goroutines as long
// as the box slices passed in are not mutated concurrently.
package engine

import (
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
	"github.com/matzehuels/flowlayout/pkg/flow/transform"
)

// Result is the outcome of one layout pass.
type Result struct {
	MeasuredWidth  int              `json:"measured_width"`
	MeasuredHeight int              `json:"measured_height"`
	Lines          []flow.Line      `json:"lines"`
	ShownLines     int              `json:"shown_lines"`
	Placements     []flow.Placement `json:"placements"`
	LineCounts     []int            `json:"line_counts"`
}

// Engine lays out box sequences with a fixed configuration.
type Engine struct {
	cfg flow.Config
}

// New returns an Engine for cfg. Degenerate settings are normalised.
func New(cfg flow.Config) *Engine {
	return &Engine{cfg: cfg.Normalize()}
}

// Config returns the normalised configuration.
func (e *Engine) Config() flow.Config { return e.cfg }

// Budget returns the width available to boxes inside a frame of frameWidth.
func (e *Engine) Budget(frameWidth int) int {
	return flow.UsableWidth(frameWidth, e.cfg.Padding)
}

// Layout measures boxes, breaks them into lines and places every box on a
// shown line. Zero boxes yield zero lines and a padding-only height.
func (e *Engine) Layout(boxes []flow.Box, frameWidth int, height flow.HeightSpec) (Result, error) {
	if err := errors.ValidateFrame(frameWidth, e.cfg.Padding); err != nil {
		return Result{}, err
	}
	if err := validateHeight(height); err != nil {
		return Result{}, err
	}
	if err := errors.ValidateBoxes(boxes); err != nil {
		return Result{}, err
	}

	m := flow.Measure(boxes, frameWidth, e.cfg)

	var lines []flow.Line
	if len(boxes) > 0 {
		lines = flow.BuildLines(boxes, frameWidth, e.cfg.Padding)
	}
	placements, shown := flow.Place(lines, frameWidth, e.cfg)

	return Result{
		MeasuredWidth:  frameWidth,
		MeasuredHeight: height.Resolve(m.Height),
		Lines:          lines,
		ShownLines:     shown,
		Placements:     placements,
		LineCounts:     flow.LineCounts(lines),
	}, nil
}

// Compress reorders boxes to use fewer lines under budget. Spacers are dropped.
func (e *Engine) Compress(boxes []flow.Box, budget int) ([]flow.Box, error) {
	if err := validateCompress(boxes, budget); err != nil {
		return nil, err
	}
	return transform.Compress(boxes, budget), nil
}

// Align inserts spacers so every wrapped line fills budget.
func (e *Engine) Align(boxes []flow.Box, budget int) ([]flow.Box, error) {
	if err := validateReflow(boxes, budget); err != nil {
		return nil, err
	}
	return transform.Align(boxes, budget), nil
}

// CompressAndAlign runs Compress followed by Align.
func (e *Engine) CompressAndAlign(boxes []flow.Box, budget int) ([]flow.Box, error) {
	if err := validateCompress(boxes, budget); err != nil {
		return nil, err
	}
	return transform.CompressAndAlign(boxes, budget), nil
}

// Reflow dispatches to the transform named by mode (see errors.ValidateMode).
// ModeNone returns a copy of boxes.
func (e *Engine) Reflow(mode string, boxes []flow.Box, budget int) ([]flow.Box, error) {
	mode, err := errors.ValidateMode(mode)
	if err != nil {
		return nil, err
	}
	switch mode {
	case errors.ModeCompress:
		return e.Compress(boxes, budget)
	case errors.ModeAlign:
		return e.Align(boxes, budget)
	case errors.ModeCompressAlign:
		return e.CompressAndAlign(boxes, budget)
	}
	if err := errors.ValidateBoxes(boxes); err != nil {
		return nil, err
	}
	return append([]flow.Box(nil), boxes...), nil
}

// TruncateToLines keeps the boxes of the first n lines recorded in counts.
func (e *Engine) TruncateToLines(boxes []flow.Box, n int, counts []int) ([]flow.Box, error) {
	for i, c := range counts {
		if c < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: negative box count %d", i, c)
		}
	}
	return transform.TruncateToLines(boxes, n, counts), nil
}

func validateHeight(h flow.HeightSpec) error {
	switch h.Mode {
	case flow.HeightUnspecified:
		return nil
	case flow.HeightAtMost, flow.HeightExactly:
		if h.Size < 0 {
			return errors.New(errors.ErrCodeInvalidFrame, "height cannot be negative (%d)", h.Size)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidMode, "unknown height mode %d", int(h.Mode))
}

func validateReflow(boxes []flow.Box, budget int) error {
	if budget > errors.MaxFrameWidth {
		return errors.New(errors.ErrCodeInvalidFrame, "width budget too large (%d, max %d)", budget, errors.MaxFrameWidth)
	}
	return errors.ValidateBoxes(boxes)
}

func validateCompress(boxes []flow.Box, budget int) error {
	if err := validateReflow(boxes, budget); err != nil {
		return err
	}
	return errors.ValidateCompressWork(boxes, budget)
}
