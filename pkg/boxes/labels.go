package boxes

import (
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/flowlayout/pkg/flow"
)

// Metrics converts text labels into box sizes.
type Metrics struct {
	CellWidth int // width of one display column
	Height    int
	PadX      int // inner padding on each side of the text
	Margin    int // applied on all four sides
	Gap       int // extra right margin
}

// DefaultMetrics sizes labels like pill-shaped tags in an SVG.
var DefaultMetrics = Metrics{CellWidth: 8, Height: 24, PadX: 8, Margin: 4}

// TerminalMetrics sizes labels for a character grid: "[label]" plus one
// column of spacing on the right.
var TerminalMetrics = Metrics{CellWidth: 1, Height: 1, PadX: 1, Gap: 1}

// LabelBox returns the box for a single label. Wide runes count as two columns.
func (m Metrics) LabelBox(label string) flow.Box {
	return flow.Box{
		ID:     label,
		Width:  runewidth.StringWidth(label)*m.CellWidth + 2*m.PadX,
		Height: m.Height,
		Margin: flow.Insets{Left: m.Margin, Top: m.Margin, Right: m.Margin + m.Gap, Bottom: m.Margin},
	}
}

// FromLabels returns one box per label.
func FromLabels(labels []string, m Metrics) []flow.Box {
	out := make([]flow.Box, len(labels))
	for i, l := range labels {
		out[i] = m.LabelBox(l)
	}
	return out
}
