package flow

import (
	"fmt"
	"strings"
)

// Gravity selects how a line is positioned horizontally inside the frame.
type Gravity int

const (
	GravityStart Gravity = iota
	GravityCenter
	GravityEnd
	GravityAlign
)

// UnlimitedLines is the MaxLines sentinel that shows every line.
const UnlimitedLines = 0

var gravityNames = [...]string{"start", "center", "end", "align"}

// String returns the lowercase name of the gravity.
func (g Gravity) String() string {
	if g < GravityStart || g > GravityAlign {
		return fmt.Sprintf("gravity(%d)", int(g))
	}
	return gravityNames[g]
}

// ParseGravity converts a name to a Gravity. "justify" is accepted as an
// alias for "align"; the empty string yields GravityStart.
func ParseGravity(s string) (Gravity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start", "left":
		return GravityStart, nil
	case "center", "centre":
		return GravityCenter, nil
	case "end", "right":
		return GravityEnd, nil
	case "align", "justify":
		return GravityAlign, nil
	}
	return GravityStart, fmt.Errorf("unknown gravity %q (must be start, center, end or align)", s)
}

// Config holds the per-instance layout settings.
type Config struct {
	Gravity     Gravity
	LinePadding int // space inserted strictly between lines
	MaxLines    int // UnlimitedLines shows every line
	Padding     Insets
}

// Normalize clamps degenerate values: a negative LinePadding becomes 0 and
// a non-positive MaxLines becomes UnlimitedLines. Unknown gravities fall
// back to GravityStart.
func (c Config) Normalize() Config {
	if c.LinePadding < 0 {
		c.LinePadding = 0
	}
	if c.MaxLines < 0 {
		c.MaxLines = UnlimitedLines
	}
	if c.Gravity < GravityStart || c.Gravity > GravityAlign {
		c.Gravity = GravityStart
	}
	return c
}

// HeightMode describes how the container height is constrained.
type HeightMode int

const (
	// HeightUnspecified uses the measured height.
	HeightUnspecified HeightMode = iota
	// HeightAtMost caps the measured height at Size.
	HeightAtMost
	// HeightExactly forces the height to Size.
	HeightExactly
)

var heightModeNames = [...]string{"unspecified", "at-most", "exactly"}

func (m HeightMode) String() string {
	if m < HeightUnspecified || m > HeightExactly {
		return fmt.Sprintf("height-mode(%d)", int(m))
	}
	return heightModeNames[m]
}

// ParseHeightMode parses "unspecified" (or ""), "at-most" and "exactly".
func ParseHeightMode(s string) (HeightMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unspecified":
		return HeightUnspecified, nil
	case "at-most", "atmost", "at_most":
		return HeightAtMost, nil
	case "exactly", "exact":
		return HeightExactly, nil
	}
	return HeightUnspecified, fmt.Errorf("unknown height mode %q (must be unspecified, at-most or exactly)", s)
}

// HeightSpec is the vertical constraint a host passes to a layout pass.
type HeightSpec struct {
	Mode HeightMode
	Size int
}

// Resolve applies the constraint to a measured height.
func (h HeightSpec) Resolve(measured int) int {
	switch h.Mode {
	case HeightExactly:
		return h.Size
	case HeightAtMost:
		return min(measured, h.Size)
	}
	return measured
}

// UsableWidth returns the width budget of a frame: its width minus the
// horizontal padding, never below zero.
func UsableWidth(frameWidth int, padding Insets) int {
	return max(frameWidth-padding.Horizontal(), 0)
}
