package flow

// Line is a left-to-right run of boxes.
type Line struct {
	Boxes   []Box `json:"-"`
	Indices []int `json:"indices"` // input positions of Boxes
	Width   int   `json:"width"`   // sum of occupied widths
	Height  int   `json:"height"`  // max occupied height
}

// Len returns the number of boxes in the line.
func (l Line) Len() int { return len(l.Boxes) }

// add appends b (input position i) and updates the aggregates.
func (l *Line) add(b Box, i int) {
	l.Boxes = append(l.Boxes, b)
	l.Indices = append(l.Indices, i)
	l.Width += b.OccupiedWidth()
	l.Height = max(l.Height, b.OccupiedHeight())
}

// BuildLines partitions boxes into lines using greedy word-wrap: a box goes
// on the current line unless it would push the line past the frame's width
// budget, in which case a new line is started. Input order is preserved.
//
// The final line is always returned, so an empty input yields exactly one
// empty line. A box wider than the budget occupies a line of its own; a
// line is only closed once it holds a box, so an oversized first box never
// leaves an empty line ahead of it.
func BuildLines(boxes []Box, frameWidth int, padding Insets) []Line {
	var (
		lines []Line
		cur   Line
		used  = padding.Horizontal()
	)
	for i, b := range boxes {
		w := b.OccupiedWidth()
		if used+w > frameWidth && cur.Len() > 0 {
			lines = append(lines, cur)
			cur = Line{}
			used = padding.Horizontal()
		}
		cur.add(b, i)
		used += w
	}
	return append(lines, cur)
}

// LineCounts returns the number of boxes in each line.
func LineCounts(lines []Line) []int {
	counts := make([]int, len(lines))
	for i, l := range lines {
		counts[i] = l.Len()
	}
	return counts
}
