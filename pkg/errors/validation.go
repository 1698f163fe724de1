package errors

import (
	"strings"
	"unicode"

	"github.com/matzehuels/flowlayout/pkg/flow"
)

// MaxBoxes bounds the number of boxes accepted in a single document.
const MaxBoxes = 100_000

// MaxFrameWidth bounds the frame width. The compress transform allocates a
// table proportional to the width budget, so the width must stay sane.
const MaxFrameWidth = 1 << 16

// MaxCompressWork bounds the knapsack cells Compress may fill. In the worst
// case every pass places a single box, so n boxes cost n(n+1)/2 passes'
// worth of rows over capacity+1 cells.
const MaxCompressWork = 1 << 32

// ValidateCompressWork rejects a compress whose worst-case work exceeds
// MaxCompressWork. Capacity is the budget (at least 1), lowered to the
// total clamped width of the boxes when that is smaller.
func ValidateCompressWork(boxes []flow.Box, budget int) error {
	capacity := max(budget, 1)
	var n, total int64
	for _, b := range boxes {
		if b.Spacer {
			continue
		}
		n++
		total += int64(min(b.OccupiedWidth(), capacity))
	}
	cells := min(int64(capacity), total) + 1
	if work := n * (n + 1) / 2 * cells; work > MaxCompressWork {
		return New(ErrCodeInvalidInput,
			"compress of %d boxes at width budget %d is too large (%d cells, max %d)",
			n, budget, work, int64(MaxCompressWork))
	}
	return nil
}

// ValidateBox checks that every dimension of b is non-negative.
// index is used only for the error message.
func ValidateBox(index int, b flow.Box) error {
	switch {
	case b.Width < 0:
		return New(ErrCodeInvalidBox, "box %d: negative width %d", index, b.Width)
	case b.Height < 0:
		return New(ErrCodeInvalidBox, "box %d: negative height %d", index, b.Height)
	case b.Margin.Left < 0, b.Margin.Top < 0, b.Margin.Right < 0, b.Margin.Bottom < 0:
		return New(ErrCodeInvalidBox, "box %d: negative margin %+v", index, b.Margin)
	case b.Spacer && b.Height != 0:
		return New(ErrCodeInvalidBox, "box %d: spacer must have zero height", index)
	}
	return nil
}

// ValidateBoxes validates a whole box sequence.
func ValidateBoxes(boxes []flow.Box) error {
	if len(boxes) > MaxBoxes {
		return New(ErrCodeInvalidInput, "too many boxes (%d, max %d)", len(boxes), MaxBoxes)
	}
	for i, b := range boxes {
		if err := ValidateBox(i, b); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFrame checks the frame width and padding.
func ValidateFrame(width int, padding flow.Insets) error {
	if width < 0 {
		return New(ErrCodeInvalidFrame, "frame width cannot be negative (%d)", width)
	}
	if width > MaxFrameWidth {
		return New(ErrCodeInvalidFrame, "frame width too large (%d, max %d)", width, MaxFrameWidth)
	}
	if padding.Left < 0 || padding.Top < 0 || padding.Right < 0 || padding.Bottom < 0 {
		return New(ErrCodeInvalidFrame, "padding cannot be negative: %+v", padding)
	}
	return nil
}

// ValidateGravity parses a gravity name, returning an INVALID_GRAVITY error
// for unknown names.
func ValidateGravity(name string) (flow.Gravity, error) {
	g, err := flow.ParseGravity(name)
	if err != nil {
		return flow.GravityStart, Wrap(ErrCodeInvalidGravity, err, "invalid gravity")
	}
	return g, nil
}

// Reflow modes accepted by ValidateMode.
const (
	ModeNone          = "none"
	ModeCompress      = "compress"
	ModeAlign         = "align"
	ModeCompressAlign = "compress-align"
)

// ValidateMode checks a reflow mode name. The empty string means ModeNone.
func ValidateMode(mode string) (string, error) {
	switch mode {
	case "", ModeNone:
		return ModeNone, nil
	case ModeCompress, ModeAlign, ModeCompressAlign:
		return mode, nil
	}
	return "", New(ErrCodeInvalidMode, "unknown reflow mode %q (must be none, compress, align or compress-align)", mode)
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (must be one of %s)", format, strings.Join(allowed, ", "))
}

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path cannot start or end with whitespace")
	}

	return nil
}
