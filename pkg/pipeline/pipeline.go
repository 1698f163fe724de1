// Package pipeline runs box documents through reflow, layout and render.
//
// This package implements the reflow → layout → render pipeline shared by the
// CLI and the HTTP API. By centralizing this logic, both entry points apply
// the same defaults, cache keys and output formats.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Reflow: optionally compress and/or align the box order
//  2. Layout: break boxes into lines and place them in the frame
//  3. Render: produce JSON, SVG, PNG or PDF output
//
// Reflow and layout results are cached by document content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := boxes.ReadFile("tags.toml")
//	opts := pipeline.Options{Gravity: "center", Mode: "compress"}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Options can be loaded from a TOML file with [LoadOptionsFile]:
//
//	gravity = "align"
//	line_padding = 4
//	max_lines = 3
//	mode = "compress-align"
//	formats = ["svg", "json"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowlayout/pkg/boxes"
	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/engine"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the frame width used when neither the document nor the
	// options set one.
	DefaultWidth = 800

	// DefaultGravity is the default horizontal alignment.
	DefaultGravity = "start"

	// DefaultMode is the default reflow mode (no reflow).
	DefaultMode = errors.ModeNone

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultBatchConcurrency bounds parallel layouts in ExecuteBatch.
	DefaultBatchConcurrency = 8
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatJSON, FormatSVG, FormatPNG, FormatPDF}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports TOML (config files) and JSON (API requests).
type Options struct {
	// Layout options
	Width       int    `toml:"width" json:"width,omitempty"` // overrides the document width when > 0
	Gravity     string `toml:"gravity" json:"gravity,omitempty"`
	LinePadding int    `toml:"line_padding" json:"line_padding,omitempty"`
	MaxLines    int    `toml:"max_lines" json:"max_lines,omitempty"`
	HeightMode  string `toml:"height_mode" json:"height_mode,omitempty"`
	Height      int    `toml:"height" json:"height,omitempty"`

	// Reflow options
	Mode string `toml:"mode" json:"mode,omitempty"`

	// Render options
	Formats []string `toml:"formats" json:"formats,omitempty"`
	Labels  bool     `toml:"labels" json:"labels,omitempty"`
	Frame   bool     `toml:"frame" json:"frame,omitempty"`
	Scale   float64  `toml:"scale" json:"scale,omitempty"`

	// Runtime options (not serialized)
	Refresh bool        `toml:"-" json:"-"` // bypass cache reads
	Logger  *log.Logger `toml:"-" json:"-"`

	// OnDocument is called by ExecuteBatch after each document completes,
	// from the worker goroutine, with the number finished so far.
	OnDocument func(done, total int) `toml:"-" json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Boxes is the box order that was laid out (after reflow).
	Boxes []flow.Box

	// DocumentHash is the content hash of the input document.
	DocumentHash string

	// Layout is the layout result.
	Layout engine.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BoxCount   int
	LineCount  int
	ReflowTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ReflowHit bool
	LayoutHit bool
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Gravity == "" {
		o.Gravity = DefaultGravity
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and validates every field.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if _, err := errors.ValidateGravity(o.Gravity); err != nil {
		return err
	}
	mode, err := errors.ValidateMode(o.Mode)
	if err != nil {
		return err
	}
	o.Mode = mode
	if _, err := o.HeightSpec(); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, ValidFormats...); err != nil {
			return err
		}
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidFrame, "width cannot be negative (%d)", o.Width)
	}
	o.validated = true
	return nil
}

// FlowConfig returns the layout configuration for a document's padding.
func (o *Options) FlowConfig(padding flow.Insets) (flow.Config, error) {
	g, err := errors.ValidateGravity(o.Gravity)
	if err != nil {
		return flow.Config{}, err
	}
	return flow.Config{
		Gravity:     g,
		LinePadding: o.LinePadding,
		MaxLines:    o.MaxLines,
		Padding:     padding,
	}.Normalize(), nil
}

// HeightSpec returns the vertical constraint described by HeightMode and Height.
func (o *Options) HeightSpec() (flow.HeightSpec, error) {
	m, err := flow.ParseHeightMode(o.HeightMode)
	if err != nil {
		return flow.HeightSpec{}, errors.Wrap(errors.ErrCodeInvalidMode, err, "invalid height mode")
	}
	if m != flow.HeightUnspecified && o.Height < 0 {
		return flow.HeightSpec{}, errors.New(errors.ErrCodeInvalidFrame, "height cannot be negative (%d)", o.Height)
	}
	return flow.HeightSpec{Mode: m, Size: o.Height}, nil
}

// FrameWidth returns the width to lay doc out in.
func (o *Options) FrameWidth(doc boxes.Document) int {
	switch {
	case o.Width > 0:
		return o.Width
	case doc.Width > 0:
		return doc.Width
	}
	return DefaultWidth
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(frameWidth int) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:       frameWidth,
		Gravity:     o.Gravity,
		LinePadding: o.LinePadding,
		MaxLines:    o.MaxLines,
		HeightMode:  o.HeightMode,
		Height:      o.Height,
	}
}
