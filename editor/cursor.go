// Package editor holds the cursor model and viewport tracking of one editing session.
package editor

import (
	"goditor/buffer"
)

// PageLines is how many rows PageUp and PageDown move.
const PageLines = 10

// Cursor is the caret of one session. Its (row, col) is the only source of
// truth; the buffer offset is derived from it on every operation.
//
// Invariant: pos.Row < LineCount() and pos.Col <= LineLen(pos.Row).
type Cursor struct {
	buf *buffer.Buffer
	pos buffer.Position
}

func NewCursor(buf *buffer.Buffer) *Cursor {
	return &Cursor{buf: buf}
}

func (c *Cursor) Position() buffer.Position {
	return c.pos
}

func (c *Cursor) Buffer() *buffer.Buffer {
	return c.buf
}

// Apply runs the operation for a. It reports whether the buffer content changed.
// Unknown actions are ignored.
func (c *Cursor) Apply(a Action) bool {
	before := c.buf.Length()
	switch a.Kind {
	case ActionInsertChar:
		c.InsertChar(a.Char)
	case ActionInsertNewline:
		c.InsertNewline()
	case ActionDeleteBackward:
		c.DeleteBackward()
	case ActionDeleteForward:
		c.DeleteForward()
	case ActionMoveUp:
		c.MoveUp()
	case ActionMoveDown:
		c.MoveDown()
	case ActionMoveLeft:
		c.MoveLeft()
	case ActionMoveRight:
		c.MoveRight()
	case ActionLineStart:
		c.MoveLineStart()
	case ActionLineEnd:
		c.MoveLineEnd()
	case ActionPageUp:
		c.PageUp()
	case ActionPageDown:
		c.PageDown()
	default:
		return false
	}
	// every edit changes the length by exactly one rune or not at all
	return a.Kind.edits() && c.buf.Length() != before
}

func (c *Cursor) InsertChar(r rune) {
	if r == '\n' {
		c.InsertNewline()
		return
	}
	must(c.buf.Insert(c.offset(), r))
	c.pos.Col++
}

func (c *Cursor) InsertNewline() {
	must(c.buf.Insert(c.offset(), '\n'))
	c.pos.Row++
	c.pos.Col = 0
}

func (c *Cursor) DeleteBackward() {
	switch {
	case c.pos.Col > 0:
		offset := c.offset()
		must(c.buf.Remove(offset-1, offset))
		c.pos.Col--
	case c.pos.Row > 0:
		// the joined line's length must be read before the newline goes away
		prevLen := c.lineLen(c.pos.Row - 1)
		start := c.lineStart(c.pos.Row)
		must(c.buf.Remove(start-1, start))
		c.pos.Row--
		c.pos.Col = prevLen
	}
}

func (c *Cursor) DeleteForward() {
	offset := c.offset()
	if offset < c.buf.Length() {
		must(c.buf.Remove(offset, offset+1))
	}
}

func (c *Cursor) MoveUp() {
	if c.pos.Row > 0 {
		c.pos.Row--
	}
	c.pos.Col = min(c.pos.Col, c.lineLen(c.pos.Row))
}

func (c *Cursor) MoveDown() {
	if c.pos.Row < c.buf.LineCount()-1 {
		c.pos.Row++
	}
	c.pos.Col = min(c.pos.Col, c.lineLen(c.pos.Row))
}

func (c *Cursor) MoveLeft() {
	switch {
	case c.pos.Col > 0:
		c.pos.Col--
	case c.pos.Row > 0:
		c.pos.Row--
		c.pos.Col = c.lineLen(c.pos.Row)
	}
}

func (c *Cursor) MoveRight() {
	switch {
	case c.pos.Col < c.lineLen(c.pos.Row):
		c.pos.Col++
	case c.pos.Row < c.buf.LineCount()-1:
		c.pos.Row++
		c.pos.Col = 0
	}
}

func (c *Cursor) MoveLineStart() {
	c.pos.Col = 0
}

func (c *Cursor) MoveLineEnd() {
	c.pos.Col = c.lineLen(c.pos.Row)
}

func (c *Cursor) PageUp() {
	for i := 0; i < PageLines; i++ {
		c.MoveUp()
	}
}

func (c *Cursor) PageDown() {
	for i := 0; i < PageLines; i++ {
		c.MoveDown()
	}
}

func (c *Cursor) offset() int {
	return c.lineStart(c.pos.Row) + c.pos.Col
}

func (c *Cursor) lineStart(row int) int {
	start, err := c.buf.LineToChar(row)
	must(err)
	return start
}

func (c *Cursor) lineLen(row int) int {
	n, err := c.buf.LineLen(row)
	must(err)
	return n
}

// must panics on buffer errors: the cursor only hands in-bounds arguments to
// the buffer, so an error here means its bookkeeping is broken.
func must(err error) {
	if err != nil {
		panic("Invariance: cursor out of sync with buffer: " + err.Error())
	}
}
