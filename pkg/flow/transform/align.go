package transform

import "github.com/matzehuels/flowlayout/pkg/flow"

// Align returns a copy of boxes with spacer boxes inserted so that every
// wrapped line of two or more boxes spans the width budget. Spacers already
// present in boxes are dropped first.
//
// Lines are found with the same greedy rule as [flow.BuildLines]. For a line
// of k boxes the leftover width is split evenly into k-1 spacers placed
// between the boxes; integer division may leave up to k-2 units unfilled.
// Single-box lines and the final line are emitted unchanged.
func Align(boxes []flow.Box, budget int) []flow.Box {
	seq := flow.StripSpacers(boxes)
	out := make([]flow.Box, 0, 2*len(seq))

	start, total := 0, 0
	for i, b := range seq {
		w := b.OccupiedWidth()
		if i > start && total+w > budget {
			out = appendJustified(out, seq[start:i], budget-total)
			start, total = i, 0
		}
		total += w
	}
	return append(out, seq[start:]...)
}

// appendJustified appends run to out with the blank width spread between
// its boxes.
func appendJustified(out, run []flow.Box, blank int) []flow.Box {
	if len(run) < 2 {
		return append(out, run...)
	}
	each := max(blank, 0) / (len(run) - 1)
	for i, b := range run {
		if i > 0 {
			out = append(out, flow.NewSpacer(each))
		}
		out = append(out, b)
	}
	return out
}

// CompressAndAlign compresses boxes and then aligns the result.
func CompressAndAlign(boxes []flow.Box, budget int) []flow.Box {
	return Align(Compress(boxes, budget), budget)
}
