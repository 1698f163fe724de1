package sink

import (
	"encoding/json"

	"github.com/matzehuels/flowlayout/pkg/engine"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	gravity string
	mode    string
	docHash string
}

// WithJSONGravity records the gravity the layout was computed with.
func WithJSONGravity(g string) JSONOption { return func(r *jsonRenderer) { r.gravity = g } }

// WithJSONMode records the reflow mode applied before layout.
func WithJSONMode(m string) JSONOption { return func(r *jsonRenderer) { r.mode = m } }

// WithJSONDocumentHash records the content hash of the input document, so
// consumers can match the output to the request that produced it.
func WithJSONDocumentHash(h string) JSONOption { return func(r *jsonRenderer) { r.docHash = h } }

type jsonOutput struct {
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Gravity      string     `json:"gravity,omitempty"`
	Mode         string     `json:"mode,omitempty"`
	DocumentHash string     `json:"document_hash,omitempty"`
	Lines        []jsonLine `json:"lines"`
	ShownLines   int        `json:"shown_lines"`
	Boxes        []jsonBox  `json:"boxes"`
}

type jsonLine struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Boxes  []int `json:"boxes"`
}

type jsonBox struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Line   int    `json:"line"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Spacer bool   `json:"spacer,omitempty"`
}

// RenderJSON exports the result as a pretty-printed JSON document: the frame
// size, every line (including lines hidden by a line limit) and the
// rectangle of every placed box.
func RenderJSON(res engine.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:        res.MeasuredWidth,
		Height:       res.MeasuredHeight,
		Gravity:      r.gravity,
		Mode:         r.mode,
		DocumentHash: r.docHash,
		Lines:        make([]jsonLine, len(res.Lines)),
		ShownLines:   res.ShownLines,
		Boxes:        make([]jsonBox, len(res.Placements)),
	}
	for i, l := range res.Lines {
		out.Lines[i] = jsonLine{Width: l.Width, Height: l.Height, Boxes: l.Indices}
	}
	for i, p := range res.Placements {
		out.Boxes[i] = jsonBox{
			Index:  p.Index,
			ID:     p.ID,
			Line:   p.Line,
			X:      p.Rect.Left,
			Y:      p.Rect.Top,
			Width:  p.Rect.Width(),
			Height: p.Rect.Height(),
			Spacer: p.Spacer,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
