package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/flowlayout/pkg/engine"
	"github.com/matzehuels/flowlayout/pkg/flow"
)

const boxCSS = `
    .box { fill: %s; stroke: %s; stroke-width: 1; }
    .spacer { stroke: %s; stroke-width: 1; stroke-dasharray: 4 3; }
    .box-text { font-family: ui-monospace, monospace; fill: %s; text-anchor: middle; dominant-baseline: central; }
    .frame { fill: none; stroke: #d0d7de; stroke-dasharray: 2 2; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels  bool
	frame   bool
	fill    string
	stroke  string
	spacers bool
}

func WithLabels() SVGOption     { return func(r *svgRenderer) { r.labels = true } }
func WithFrame() SVGOption      { return func(r *svgRenderer) { r.frame = true } }
func WithoutSpacers() SVGOption { return func(r *svgRenderer) { r.spacers = false } }
func WithColors(fill, stroke string) SVGOption {
	return func(r *svgRenderer) { r.fill, r.stroke = fill, stroke }
}

// RenderSVG draws every placement in res. Boxes are drawn in input order.
func RenderSVG(res engine.Result, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	w, h := res.MeasuredWidth, res.MeasuredHeight
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", fmt.Sprintf(boxCSS, r.fill, r.stroke, r.stroke, r.stroke))

	if r.frame {
		fmt.Fprintf(&buf, `  <rect class="frame" x="0" y="0" width="%d" height="%d"/>`+"\n", w, h)
	}
	for _, p := range res.Placements {
		if p.Spacer {
			if r.spacers {
				renderSpacer(&buf, p, lineHeight(res, p))
			}
			continue
		}
		renderBox(&buf, p, r.labels)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{fill: "#f6f8fa", stroke: "#57606a", spacers: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderBox(buf *bytes.Buffer, p flow.Placement, labels bool) {
	fmt.Fprintf(buf, `  <rect class="box" id="box-%d" x="%d" y="%d" width="%d" height="%d" rx="3"/>`+"\n",
		p.Index, p.Rect.Left, p.Rect.Top, p.Rect.Width(), p.Rect.Height())
	if !labels || p.ID == "" {
		return
	}
	cx := float64(p.Rect.Left) + float64(p.Rect.Width())/2
	cy := float64(p.Rect.Top) + float64(p.Rect.Height())/2
	size := min(12, float64(p.Rect.Height())*0.6)
	fmt.Fprintf(buf, `  <text class="box-text" x="%.1f" y="%.1f" font-size="%.1f">%s</text>`+"\n",
		cx, cy, size, html.EscapeString(p.ID))
}

// renderSpacer draws a zero-height spacer as a dashed rule across the middle
// of its line.
func renderSpacer(buf *bytes.Buffer, p flow.Placement, lineH int) {
	if p.Rect.Width() == 0 {
		return
	}
	y := float64(p.Rect.Top) + float64(lineH)/2
	fmt.Fprintf(buf, `  <line class="spacer" x1="%d" y1="%.1f" x2="%d" y2="%.1f"/>`+"\n",
		p.Rect.Left, y, p.Rect.Right, y)
}

func lineHeight(res engine.Result, p flow.Placement) int {
	if p.Line < len(res.Lines) {
		return res.Lines[p.Line].Height
	}
	return 0
}
