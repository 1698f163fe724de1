package flow

// Measurement is the outcome of a wrap simulation.
type Measurement struct {
	Lines  int // lines produced by the boxes, ignoring MaxLines
	Shown  int // lines that fit under MaxLines
	Height int // container height including vertical padding
}

// Measure simulates line wrapping for boxes without building lines and
// returns the container height a layout pass would need. The height counts
// only shown lines, separated by cfg.LinePadding, plus the vertical padding.
// An empty input measures zero lines.
func Measure(boxes []Box, frameWidth int, cfg Config) Measurement {
	cfg = cfg.Normalize()

	var (
		heights    []int
		used       = cfg.Padding.Horizontal()
		lineHeight int
		inLine     int
	)
	for _, b := range boxes {
		w := b.OccupiedWidth()
		if used+w > frameWidth && inLine > 0 {
			heights = append(heights, lineHeight)
			used = cfg.Padding.Horizontal()
			lineHeight, inLine = 0, 0
		}
		lineHeight = max(lineHeight, b.OccupiedHeight())
		used += w
		inLine++
	}
	if inLine > 0 {
		heights = append(heights, lineHeight)
	}

	m := Measurement{Lines: len(heights)}
	m.Shown = shownLines(m.Lines, cfg.MaxLines)
	m.Height = cfg.Padding.Vertical() + stackHeight(heights[:m.Shown], cfg.LinePadding)
	return m
}

// shownLines applies a MaxLines cap to a line count.
func shownLines(total, maxLines int) int {
	if maxLines <= UnlimitedLines {
		return total
	}
	return min(maxLines, total)
}

// stackHeight sums heights with pad inserted strictly between entries.
func stackHeight(heights []int, pad int) int {
	h := 0
	for i, lh := range heights {
		if i > 0 {
			h += pad
		}
		h += lh
	}
	return h
}
