// Package transform provides reflow transformations on box sequences.
//
// # Overview
//
// The flow package lays boxes out in the order it receives them. This
// package produces new orderings that a host re-submits before the next
// layout pass:
//
//   - [Compress]: reorders boxes so greedy wrapping uses as few lines as possible
//   - [Align]: inserts spacer boxes so wrapped lines fill the width budget
//   - [CompressAndAlign]: both, in that order
//   - [TruncateToLines]: drops every box past the first n lines of a layout
//
// # Compression
//
// Minimum-line bin packing is NP-hard. [Compress] uses a greedy sequence of
// exact 0/1-knapsack solves: each pass picks the subset of remaining boxes
// whose total occupied width comes closest to the budget without exceeding
// it, emits that subset as one line, and repeats on the rest. Each pass costs
// O(n·W) time and space, where W is the width budget.
//
//	boxes = transform.Compress(boxes, budget)
//
// # Alignment
//
// [Align] bakes justification into the sequence. Unlike the align gravity of
// the flow package, which spreads leftover width on every pass, the spacers
// become part of the box list and survive later layout passes:
//
//	boxes = transform.Align(boxes, budget)
//
// Both transforms drop spacers already present in their input, so the
// output of [Align] can be fed back into either transform.
package transform
