package flow

// Insets holds spacing on four sides. It is used both for box margins and
// for container padding.
type Insets struct {
	Left   int `json:"left,omitempty" toml:"left" yaml:"left,omitempty"`
	Top    int `json:"top,omitempty" toml:"top" yaml:"top,omitempty"`
	Right  int `json:"right,omitempty" toml:"right" yaml:"right,omitempty"`
	Bottom int `json:"bottom,omitempty" toml:"bottom" yaml:"bottom,omitempty"`
}

// Horizontal returns Left + Right.
func (i Insets) Horizontal() int { return i.Left + i.Right }

// Vertical returns Top + Bottom.
func (i Insets) Vertical() int { return i.Top + i.Bottom }

// Box is one layout item with an intrinsic size and margins.
// All dimensions are expected to be non-negative.
type Box struct {
	ID     string `json:"id,omitempty" toml:"id" yaml:"id,omitempty"`
	Width  int    `json:"width" toml:"width" yaml:"width"`
	Height int    `json:"height" toml:"height" yaml:"height"`
	Margin Insets `json:"margin,omitempty" toml:"margin" yaml:"margin,omitempty"`
	Spacer bool   `json:"spacer,omitempty" toml:"spacer" yaml:"spacer,omitempty"`
}

// NewSpacer returns a zero-height filler box of the given width.
func NewSpacer(width int) Box {
	return Box{Width: width, Spacer: true}
}

// OccupiedWidth returns the horizontal space the box takes including margins.
func (b Box) OccupiedWidth() int { return b.Margin.Left + b.Width + b.Margin.Right }

// OccupiedHeight returns the vertical space the box takes including margins.
func (b Box) OccupiedHeight() int { return b.Margin.Top + b.Height + b.Margin.Bottom }

// StripSpacers returns the boxes of seq that are not spacers, in order.
func StripSpacers(seq []Box) []Box {
	out := make([]Box, 0, len(seq))
	for _, b := range seq {
		if !b.Spacer {
			out = append(out, b)
		}
	}
	return out
}

// Rect is an absolute rectangle in container coordinates.
// Y grows downwards.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Placement is the computed position of one box for a single layout pass.
// Index refers to the box's position in the input sequence.
type Placement struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Spacer bool   `json:"spacer,omitempty"`
	Line   int    `json:"line"`
	Rect   Rect   `json:"rect"`
}
