package transform

import "github.com/matzehuels/flowlayout/pkg/flow"

// Compress reorders boxes so that greedy line building needs as few lines as
// this heuristic can find. Spacers are dropped; every other box appears in
// the output exactly once.
//
// A box wider than the budget is weighted as if it filled the budget, so it
// ends up alone on a line. A budget of zero or less behaves like a budget of
// one: every box of non-zero width gets its own line.
func Compress(boxes []flow.Box, budget int) []flow.Box {
	rest := flow.StripSpacers(boxes)
	capacity := max(budget, 1)

	out := make([]flow.Box, 0, len(rest))
	for len(rest) > 0 {
		picked := pickLine(rest, capacity)
		remaining := make([]flow.Box, 0, len(rest))
		for i, b := range rest {
			if picked[i] {
				out = append(out, b)
			} else {
				remaining = append(remaining, b)
			}
		}
		rest = remaining
	}
	return out
}

// pickLine solves one 0/1 knapsack over boxes and reports which boxes form
// the fullest line that fits capacity. At least one box is always picked.
//
// best is a single rolling row of best totals per capacity. taken records,
// per box, the capacities at which including it strictly improved on the
// row before it; backtracking through taken reproduces the full table's
// answer and leaves a box out on ties.
func pickLine(boxes []flow.Box, capacity int) []bool {
	n := len(boxes)
	weights := make([]int, n)
	total := 0
	for i, b := range boxes {
		weights[i] = min(b.OccupiedWidth(), capacity)
		total += weights[i]
	}
	capacity = min(capacity, total)

	words := capacity/64 + 1
	taken := make([]uint64, n*words)
	best := make([]int, capacity+1)
	for i, w := range weights {
		if w == 0 {
			continue
		}
		row := taken[i*words : (i+1)*words]
		for c := capacity; c >= w; c-- {
			if v := best[c-w] + w; v > best[c] {
				best[c] = v
				row[c/64] |= 1 << (c % 64)
			}
		}
	}

	picked := make([]bool, n)
	c := capacity
	for i := n - 1; i >= 0; i-- {
		switch w := weights[i]; {
		case w == 0:
			// Zero-width boxes cost nothing; they ride along with this line.
			picked[i] = true
		case taken[i*words+c/64]&(1<<(c%64)) != 0:
			picked[i] = true
			c -= w
		}
	}
	return picked
}
