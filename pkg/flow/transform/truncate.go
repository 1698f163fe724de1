package transform

import "github.com/matzehuels/flowlayout/pkg/flow"

// TruncateToLines keeps the boxes that made up the first lines lines of a
// previous layout pass and drops the rest. counts holds the number of boxes
// per line from that pass (see [flow.LineCounts]).
//
// A non-positive lines, or one that covers every recorded line, returns a
// copy of boxes unchanged.
func TruncateToLines(boxes []flow.Box, lines int, counts []int) []flow.Box {
	if lines <= 0 || lines >= len(counts) {
		return append([]flow.Box(nil), boxes...)
	}
	keep := 0
	for _, c := range counts[:lines] {
		keep += c
	}
	keep = min(keep, len(boxes))
	return append([]flow.Box(nil), boxes[:keep]...)
}
