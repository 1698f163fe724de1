// Package flow computes left-to-right, top-to-bottom wrapping layouts for
// sequences of rectangular boxes.
//
// # Overview
//
// A [Box] has an intrinsic width and height plus four margins. Boxes are
// packed into horizontal [Line] values that fit inside a frame width, then
// positioned according to a [Gravity]:
//
//	lines := flow.BuildLines(boxes, 300, flow.Insets{Left: 8, Right: 8})
//	placements, shown := flow.Place(lines, 300, cfg)
//
// [Measure] runs the same wrap simulation without allocating lines and
// returns the container height a layout pass would need.
//
// # Width Budget
//
// The width budget of a frame is its width minus the horizontal padding
// (see [UsableWidth]). A line never exceeds the budget unless it holds a
// single box that is wider than the budget on its own. Such boxes are never
// split, clipped or scaled.
//
// # Gravity
//
//   - [GravityStart]: lines start at the left padding edge
//   - [GravityCenter]: lines are centered inside the budget
//   - [GravityEnd]: lines end at the right padding edge
//   - [GravityAlign]: the leftover width of each line is spread between its boxes
//
// # Spacers
//
// Spacer boxes (see [NewSpacer]) have zero height and only consume
// horizontal space. They are produced by the transform package to bake
// alignment into a box sequence.
//
// All functions in this package are pure: inputs are never mutated and each
// call returns freshly allocated slices, so concurrent calls on independent
// inputs need no synchronization.
package flow
