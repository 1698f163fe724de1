package flow

// Place computes an absolute rectangle for every box on the shown lines.
// It returns the placements in line order together with the number of
// lines that were shown under cfg.MaxLines.
//
// Center and align distribute the space left in the whole frame width,
// offset by the left padding. Integer division truncates; the rounding
// error stays within a line.
func Place(lines []Line, frameWidth int, cfg Config) ([]Placement, int) {
	cfg = cfg.Normalize()
	shown := shownLines(len(lines), cfg.MaxLines)

	var placements []Placement
	top := cfg.Padding.Top
	for li, line := range lines[:shown] {
		left, space := lineStart(line, frameWidth, cfg)
		for j, b := range line.Boxes {
			left += b.Margin.Left
			y := top + b.Margin.Top
			placements = append(placements, Placement{
				Index:  line.Indices[j],
				ID:     b.ID,
				Spacer: b.Spacer,
				Line:   li,
				Rect:   Rect{Left: left, Top: y, Right: left + b.Width, Bottom: y + b.Height},
			})
			left += b.Width + b.Margin.Right
			if j < line.Len()-1 {
				left += space
			}
		}
		top += line.Height + cfg.LinePadding
	}
	return placements, shown
}

// lineStart returns the left offset of a line and, for GravityAlign, the
// extra gap inserted between consecutive boxes.
func lineStart(line Line, frameWidth int, cfg Config) (left, space int) {
	switch cfg.Gravity {
	case GravityCenter:
		return cfg.Padding.Left + (frameWidth-line.Width)/2, 0
	case GravityEnd:
		return frameWidth - cfg.Padding.Right - line.Width, 0
	case GravityAlign:
		if n := line.Len(); n > 1 {
			space = (frameWidth - line.Width) / (n - 1)
		}
		return cfg.Padding.Left, space
	default:
		return cfg.Padding.Left, 0
	}
}
