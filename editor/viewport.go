package editor

import "goditor/buffer"

// Viewport tracks the top-left corner of the visible region. It only reads
// the cursor and buffer, it never changes them.
type Viewport struct {
	scroll buffer.Position
}

func (v *Viewport) Scroll() buffer.Position {
	return v.scroll
}

// Reconcile moves the scroll offset the least amount needed to bring cursor
// inside a width x height region.
func (v *Viewport) Reconcile(cursor buffer.Position, width, height int) {
	width, height = max(width, 1), max(height, 1)

	if cursor.Row < v.scroll.Row {
		v.scroll.Row = cursor.Row
	} else if cursor.Row >= v.scroll.Row+height {
		v.scroll.Row = cursor.Row - (height - 1)
	}

	if cursor.Col < v.scroll.Col {
		v.scroll.Col = cursor.Col
	} else if cursor.Col >= v.scroll.Col+width {
		v.scroll.Col = cursor.Col - (width - 1)
	}
}

// VisibleLines returns the plain text of the rows starting at the scroll row,
// at most height of them.
func (v *Viewport) VisibleLines(buf *buffer.Buffer, height int) []string {
	end := min(v.scroll.Row+max(height, 0), buf.LineCount())
	lines := make([]string, 0, max(end-v.scroll.Row, 0))
	for row := v.scroll.Row; row < end; row++ {
		line, err := buf.Line(row)
		must(err)
		lines = append(lines, line)
	}
	return lines
}

// RelativeCursor returns the cursor relative to the scroll offset and whether
// that lies inside a width x height region.
func (v *Viewport) RelativeCursor(cursor buffer.Position, width, height int) (x, y int, visible bool) {
	x, y = cursor.Col-v.scroll.Col, cursor.Row-v.scroll.Row
	visible = x >= 0 && y >= 0 && x < width && y < height
	return
}

// LineNumber is the 1-based line number shown in the gutter for the i-th visible line.
func (v *Viewport) LineNumber(i int) int {
	return v.scroll.Row + i + 1
}
