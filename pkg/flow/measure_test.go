package flow

import (
	"math/rand/v2"
	"testing"
)

func TestMeasure(t *testing.T) {
	tests := []struct {
		name       string
		boxes      []Box
		frameWidth int
		cfg        Config
		wantLines  int
		wantShown  int
		wantHeight int
	}{
		{
			name:       "empty input is padding only",
			frameWidth: 100,
			cfg:        Config{Padding: Insets{Top: 4, Bottom: 6}, LinePadding: 3},
			wantHeight: 10,
		},
		{
			name:       "single line",
			boxes:      widths(30, 30),
			frameWidth: 100,
			cfg:        Config{LinePadding: 8},
			wantLines:  1,
			wantShown:  1,
			wantHeight: 10,
		},
		{
			name:       "line padding between lines only",
			boxes:      widths(60, 60, 60),
			frameWidth: 100,
			cfg:        Config{LinePadding: 8, Padding: Insets{Top: 1, Bottom: 2}},
			wantLines:  3,
			wantShown:  3,
			wantHeight: 1 + 10 + 8 + 10 + 8 + 10 + 2,
		},
		{
			name:       "oversized first box opens no empty line",
			boxes:      widths(150, 20),
			frameWidth: 100,
			cfg:        Config{LinePadding: 5},
			wantLines:  2,
			wantShown:  2,
			wantHeight: 10 + 5 + 10,
		},
		{
			name:       "max lines caps height",
			boxes:      widths(60, 60, 60),
			frameWidth: 100,
			cfg:        Config{MaxLines: 1, LinePadding: 8},
			wantLines:  3,
			wantShown:  1,
			wantHeight: 10,
		},
		{
			name:       "negative line padding clamps to zero",
			boxes:      widths(60, 60),
			frameWidth: 100,
			cfg:        Config{LinePadding: -5},
			wantLines:  2,
			wantShown:  2,
			wantHeight: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Measure(tt.boxes, tt.frameWidth, tt.cfg)
			if m.Lines != tt.wantLines {
				t.Errorf("Lines = %d, want %d", m.Lines, tt.wantLines)
			}
			if m.Shown != tt.wantShown {
				t.Errorf("Shown = %d, want %d", m.Shown, tt.wantShown)
			}
			if m.Height != tt.wantHeight {
				t.Errorf("Height = %d, want %d", m.Height, tt.wantHeight)
			}
		})
	}
}

func TestMeasureAgreesWithBuildLines(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	for iter := 0; iter < 200; iter++ {
		boxes := randomBoxes(r, r.IntN(30)+1, 70)
		frame := r.IntN(150) + 20
		cfg := Config{Padding: Insets{Left: r.IntN(6), Right: r.IntN(6)}, LinePadding: r.IntN(5)}

		lines := BuildLines(boxes, frame, cfg.Padding)
		m := Measure(boxes, frame, cfg)
		if m.Lines != len(lines) {
			t.Fatalf("iter %d: Measure lines = %d, BuildLines = %d", iter, m.Lines, len(lines))
		}

		heights := make([]int, len(lines))
		for i, l := range lines {
			heights[i] = l.Height
		}
		if want := stackHeight(heights, cfg.LinePadding); m.Height != want {
			t.Fatalf("iter %d: height = %d, want %d", iter, m.Height, want)
		}
	}
}

func TestMeasureHeightMonotonic(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for iter := 0; iter < 100; iter++ {
		boxes := randomBoxes(r, 25, 60)
		cfg := Config{LinePadding: r.IntN(6)}
		prev := 0
		for n := 0; n <= len(boxes); n++ {
			h := Measure(boxes[:n], 120, cfg).Height
			if h < prev {
				t.Fatalf("iter %d: height dropped from %d to %d at n=%d", iter, prev, h, n)
			}
			prev = h
		}
	}
}

func TestMeasureUnlimitedNeverFewerLines(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for iter := 0; iter < 100; iter++ {
		boxes := randomBoxes(r, 20, 60)
		capped := Measure(boxes, 100, Config{MaxLines: r.IntN(4) + 1})
		unlimited := Measure(boxes, 100, Config{})
		if unlimited.Shown < capped.Shown {
			t.Fatalf("iter %d: unlimited shows %d lines, capped %d", iter, unlimited.Shown, capped.Shown)
		}
	}
}
