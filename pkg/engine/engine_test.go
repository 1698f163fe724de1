package engine

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
)

func boxes(widths ...int) []flow.Box {
	out := make([]flow.Box, len(widths))
	for i, w := range widths {
		out[i] = flow.Box{ID: string(rune('a' + i)), Width: w, Height: 10}
	}
	return out
}

func ids(bs []flow.Box) []string {
	var out []string
	for _, b := range bs {
		if !b.Spacer {
			out = append(out, b.ID)
		}
	}
	return out
}

func TestNewNormalizes(t *testing.T) {
	cfg := New(flow.Config{LinePadding: -3, MaxLines: -1, Gravity: flow.Gravity(42)}).Config()
	if cfg.LinePadding != 0 {
		t.Errorf("LinePadding = %d, want 0", cfg.LinePadding)
	}
	if cfg.MaxLines != flow.UnlimitedLines {
		t.Errorf("MaxLines = %d, want unlimited", cfg.MaxLines)
	}
	if cfg.Gravity != flow.GravityStart {
		t.Errorf("Gravity = %v, want start", cfg.Gravity)
	}
}

func TestBudget(t *testing.T) {
	e := New(flow.Config{Padding: flow.Insets{Left: 5, Right: 5}})
	if got := e.Budget(100); got != 90 {
		t.Errorf("Budget(100) = %d, want 90", got)
	}
	if got := e.Budget(4); got != 0 {
		t.Errorf("Budget(4) = %d, want 0", got)
	}
}

func TestLayoutMaxLines(t *testing.T) {
	e := New(flow.Config{MaxLines: 2, LinePadding: 5})
	res, err := e.Layout(boxes(60, 60, 60), 100, flow.HeightSpec{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	if len(res.Lines) != 3 {
		t.Errorf("lines = %d, want 3", len(res.Lines))
	}
	if res.ShownLines != 2 {
		t.Errorf("shown = %d, want 2", res.ShownLines)
	}
	if len(res.Placements) != 2 {
		t.Fatalf("placements = %d, want 2", len(res.Placements))
	}
	if want := (flow.Rect{Left: 0, Top: 15, Right: 60, Bottom: 25}); res.Placements[1].Rect != want {
		t.Errorf("second rect = %+v, want %+v", res.Placements[1].Rect, want)
	}
	if res.MeasuredHeight != 25 {
		t.Errorf("height = %d, want 25", res.MeasuredHeight)
	}
	if res.MeasuredWidth != 100 {
		t.Errorf("width = %d, want 100", res.MeasuredWidth)
	}
	if !slices.Equal(res.LineCounts, []int{1, 1, 1}) {
		t.Errorf("counts = %v, want [1 1 1]", res.LineCounts)
	}
}

func TestLayoutEmpty(t *testing.T) {
	e := New(flow.Config{Padding: flow.Insets{Top: 4, Bottom: 6}})
	res, err := e.Layout(nil, 100, flow.HeightSpec{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(res.Lines) != 0 || res.ShownLines != 0 || len(res.Placements) != 0 {
		t.Errorf("got %d lines, %d shown, %d placements; want none", len(res.Lines), res.ShownLines, len(res.Placements))
	}
	if res.MeasuredHeight != 10 {
		t.Errorf("height = %d, want 10", res.MeasuredHeight)
	}
	if res.LineCounts == nil || len(res.LineCounts) != 0 {
		t.Errorf("counts = %#v, want empty slice", res.LineCounts)
	}
}

func TestLayoutHeightSpec(t *testing.T) {
	in := []flow.Box{{Width: 30, Height: 20}, {Width: 30, Height: 20}, {Width: 30, Height: 20}, {Width: 30, Height: 20}}
	tests := []struct {
		name string
		spec flow.HeightSpec
		want int
	}{
		{"unspecified", flow.HeightSpec{}, 40},
		{"at most clamps", flow.HeightSpec{Mode: flow.HeightAtMost, Size: 30}, 30},
		{"at most loose", flow.HeightSpec{Mode: flow.HeightAtMost, Size: 100}, 40},
		{"exactly", flow.HeightSpec{Mode: flow.HeightExactly, Size: 100}, 100},
	}

	e := New(flow.Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Layout(in, 100, tt.spec)
			if err != nil {
				t.Fatalf("Layout() error = %v", err)
			}
			if res.MeasuredHeight != tt.want {
				t.Errorf("height = %d, want %d", res.MeasuredHeight, tt.want)
			}
		})
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name  string
		cfg   flow.Config
		boxes []flow.Box
		frame int
		spec  flow.HeightSpec
		code  errors.Code
	}{
		{"negative box", flow.Config{}, []flow.Box{{Width: -1}}, 100, flow.HeightSpec{}, errors.ErrCodeInvalidBox},
		{"negative frame", flow.Config{}, nil, -1, flow.HeightSpec{}, errors.ErrCodeInvalidFrame},
		{"negative padding", flow.Config{Padding: flow.Insets{Left: -2}}, nil, 100, flow.HeightSpec{}, errors.ErrCodeInvalidFrame},
		{"negative height", flow.Config{}, nil, 100, flow.HeightSpec{Mode: flow.HeightExactly, Size: -1}, errors.ErrCodeInvalidFrame},
		{"unknown height mode", flow.Config{}, nil, 100, flow.HeightSpec{Mode: 9}, errors.ErrCodeInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg).Layout(tt.boxes, tt.frame, tt.spec)
			if !errors.Is(err, tt.code) {
				t.Errorf("Layout() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestLayoutOversizedBox(t *testing.T) {
	res, err := New(flow.Config{}).Layout(boxes(30, 250, 30), 100, flow.HeightSpec{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if !slices.Equal(res.LineCounts, []int{1, 1, 1}) {
		t.Errorf("counts = %v, want [1 1 1]", res.LineCounts)
	}
	if r := res.Placements[1].Rect; r.Width() != 250 {
		t.Errorf("oversized box width = %d, want 250 (no clipping)", r.Width())
	}
}

func TestLayoutPlacementsFitHeight(t *testing.T) {
	r := rand.New(rand.NewPCG(31, 32))
	for iter := 0; iter < 200; iter++ {
		cfg := flow.Config{
			Gravity:     flow.Gravity(r.IntN(4)),
			LinePadding: r.IntN(6),
			MaxLines:    r.IntN(4),
			Padding:     flow.Insets{Left: r.IntN(5), Top: r.IntN(5), Right: r.IntN(5), Bottom: r.IntN(5)},
		}
		in := make([]flow.Box, r.IntN(25))
		for i := range in {
			in[i] = flow.Box{
				Width:  r.IntN(60),
				Height: r.IntN(30),
				Margin: flow.Insets{Top: r.IntN(4), Bottom: r.IntN(4), Left: r.IntN(4), Right: r.IntN(4)},
			}
		}

		res, err := New(cfg).Layout(in, 150, flow.HeightSpec{})
		if err != nil {
			t.Fatalf("iter %d: Layout() error = %v", iter, err)
		}
		for _, p := range res.Placements {
			bottom := p.Rect.Bottom + in[p.Index].Margin.Bottom + cfg.Padding.Bottom
			if bottom > res.MeasuredHeight {
				t.Fatalf("iter %d: box %d reaches %d, height %d", iter, p.Index, bottom, res.MeasuredHeight)
			}
		}
	}
}

func TestReflow(t *testing.T) {
	e := New(flow.Config{})
	in := boxes(60, 70, 40, 30)

	tests := []struct {
		mode        string
		want        []string
		wantSpacers int
	}{
		{"", []string{"a", "b", "c", "d"}, 0},
		{errors.ModeNone, []string{"a", "b", "c", "d"}, 0},
		{errors.ModeCompress, []string{"a", "c", "b", "d"}, 0},
		{errors.ModeAlign, []string{"a", "b", "c", "d"}, 0},
		{errors.ModeCompressAlign, []string{"a", "c", "b", "d"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, err := e.Reflow(tt.mode, in, 100)
			if err != nil {
				t.Fatalf("Reflow() error = %v", err)
			}
			if !slices.Equal(ids(got), tt.want) {
				t.Errorf("order = %v, want %v", ids(got), tt.want)
			}
			if n := len(got) - len(ids(got)); n != tt.wantSpacers {
				t.Errorf("spacers = %d, want %d", n, tt.wantSpacers)
			}
		})
	}

	if _, err := e.Reflow("shuffle", in, 100); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("Reflow(shuffle) error = %v, want INVALID_MODE", err)
	}
	if _, err := e.Compress(in, errors.MaxFrameWidth+1); !errors.Is(err, errors.ErrCodeInvalidFrame) {
		t.Errorf("Compress(huge budget) error = %v, want INVALID_FRAME", err)
	}
	if _, err := e.Align([]flow.Box{{Height: -1}}, 100); !errors.Is(err, errors.ErrCodeInvalidBox) {
		t.Errorf("Align(bad box) error = %v, want INVALID_BOX", err)
	}
}

func TestCompressWorkLimit(t *testing.T) {
	e := New(flow.Config{})
	wide := make([]flow.Box, 400)
	for i := range wide {
		wide[i] = flow.Box{Width: 60_000, Height: 1}
	}

	if _, err := e.Compress(wide, errors.MaxFrameWidth); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Compress() error = %v, want INVALID_INPUT", err)
	}
	if _, err := e.CompressAndAlign(wide, errors.MaxFrameWidth); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("CompressAndAlign() error = %v, want INVALID_INPUT", err)
	}
	if _, err := e.Reflow(errors.ModeCompress, wide, errors.MaxFrameWidth); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Reflow(compress) error = %v, want INVALID_INPUT", err)
	}

	got, err := e.Align(wide, errors.MaxFrameWidth)
	if err != nil {
		t.Fatalf("Align() error = %v", err)
	}
	if len(got) != len(wide) {
		t.Errorf("Align() returned %d boxes, want %d", len(got), len(wide))
	}
}

func TestTruncateAfterLayout(t *testing.T) {
	e := New(flow.Config{})
	in := boxes(70, 40, 30, 30, 80)
	res, err := e.Layout(in, 100, flow.HeightSpec{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	got, err := e.TruncateToLines(in, 2, res.LineCounts)
	if err != nil {
		t.Fatalf("TruncateToLines() error = %v", err)
	}
	if want := []string{"a", "b", "c", "d"}; !slices.Equal(ids(got), want) {
		t.Errorf("truncated = %v, want %v", ids(got), want)
	}

	if _, err := e.TruncateToLines(in, 1, []int{-1, 2}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("TruncateToLines(bad counts) error = %v, want INVALID_INPUT", err)
	}
}
