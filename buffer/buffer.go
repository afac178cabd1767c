package buffer

import (
	"errors"
	"fmt"
	"io"

	"goditor/rope"
)

// ErrOutOfRange is returned when an offset or row lies outside the buffer.
var ErrOutOfRange = errors.New("out of range")

// Buffer is the text of one document, split into lines by '\n'.
// It knows nothing about cursors or viewports.
type Buffer struct {
	rope rope.Rope
}

func New(content string) *Buffer {
	return &Buffer{rope: rope.NewString(content)}
}

// ReadFrom builds a buffer from UTF-8 text.
func ReadFrom(r io.Reader) (*Buffer, error) {
	w := rope.Writer()
	if _, err := io.Copy(w, r); err != nil {
		return nil, err
	}
	return &Buffer{rope: w.Rope()}, nil
}

func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	return b.rope.WriteTo(w)
}

func (b *Buffer) String() string {
	return b.rope.String()
}

// Snapshot returns the current content. The rope is immutable, so it stays
// valid and unchanged while the buffer continues to be edited.
func (b *Buffer) Snapshot() rope.Rope {
	return b.rope
}

func (b *Buffer) Length() int {
	return b.rope.Length()
}

func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

func (b *Buffer) Insert(offset int, c rune) error {
	if offset < 0 || offset > b.rope.Length() {
		return fmt.Errorf("insert at %d, length %d: %w", offset, b.rope.Length(), ErrOutOfRange)
	}
	b.rope = b.rope.Insert(offset, rope.NewRunes([]rune{c}))
	return nil
}

// Remove deletes the runes in [start, end).
func (b *Buffer) Remove(start, end int) error {
	if start < 0 || start > end || end > b.rope.Length() {
		return fmt.Errorf("remove [%d, %d), length %d: %w", start, end, b.rope.Length(), ErrOutOfRange)
	}
	b.rope = b.rope.Delete(start, end-start)
	return nil
}

// LineToChar returns the offset of the first rune of row.
func (b *Buffer) LineToChar(row int) (int, error) {
	if err := b.checkRow(row); err != nil {
		return 0, err
	}
	return b.rope.OffsetOfLine(row), nil
}

// Line returns the text of row without its trailing newline.
func (b *Buffer) Line(row int) (string, error) {
	start, end, err := b.lineBounds(row)
	if err != nil {
		return "", err
	}
	return string(b.rope.Slice(start, end)), nil
}

func (b *Buffer) LineLen(row int) (int, error) {
	start, end, err := b.lineBounds(row)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// OffsetToPosition is the inverse of LineToChar(row) + col.
func (b *Buffer) OffsetToPosition(offset int) (Position, error) {
	if offset < 0 || offset > b.rope.Length() {
		return Position{}, fmt.Errorf("offset %d, length %d: %w", offset, b.rope.Length(), ErrOutOfRange)
	}
	row := b.rope.LineOfOffset(offset)
	return Position{Row: row, Col: offset - b.rope.OffsetOfLine(row)}, nil
}

func (b *Buffer) lineBounds(row int) (start, end int, err error) {
	if err = b.checkRow(row); err != nil {
		return
	}
	start = b.rope.OffsetOfLine(row)
	if row+1 < b.rope.LineCount() {
		end = b.rope.OffsetOfLine(row+1) - 1
	} else {
		end = b.rope.Length()
	}
	return
}

func (b *Buffer) checkRow(row int) error {
	if row < 0 || row >= b.rope.LineCount() {
		return fmt.Errorf("row %d, %d lines: %w", row, b.rope.LineCount(), ErrOutOfRange)
	}
	return nil
}
