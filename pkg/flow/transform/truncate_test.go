package transform

import (
	"slices"
	"testing"

	"github.com/matzehuels/flowlayout/pkg/flow"
)

func TestTruncateToLines(t *testing.T) {
	boxes := labelled(70, 40, 30, 30, 80)
	counts := flow.LineCounts(flow.BuildLines(boxes, 100, flow.Insets{}))
	if !slices.Equal(counts, []int{1, 3, 1}) {
		t.Fatalf("counts = %v, want [1 3 1]", counts)
	}

	tests := []struct {
		name  string
		lines int
		want  []string
	}{
		{"first line", 1, []string{"b0"}},
		{"two lines", 2, []string{"b0", "b1", "b2", "b3"}},
		{"all lines", 3, []string{"b0", "b1", "b2", "b3", "b4"}},
		{"more than recorded", 9, []string{"b0", "b1", "b2", "b3", "b4"}},
		{"zero keeps everything", 0, []string{"b0", "b1", "b2", "b3", "b4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToLines(boxes, tt.lines, counts)
			if !slices.Equal(ids(got), tt.want) {
				t.Errorf("TruncateToLines(%d) = %v, want %v", tt.lines, ids(got), tt.want)
			}
		})
	}
}

func TestTruncateToLinesStaleCounts(t *testing.T) {
	got := TruncateToLines(labelled(10, 10), 1, []int{5, 5})
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestTruncateToLinesReturnsCopy(t *testing.T) {
	boxes := labelled(10, 20)
	got := TruncateToLines(boxes, 0, nil)
	got[0].Width = 99
	if boxes[0].Width != 10 {
		t.Error("TruncateToLines aliased its input")
	}
}
