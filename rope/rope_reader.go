package rope

import (
	"io"
	"unicode/utf8"
)

// A RopeReader provides an implementation of io.Reader for ropes.
// Runes are encoded as UTF-8 one leaf at a time.
type RopeReader struct {
	rope     Rope
	position int // next rune to encode
	pending  []byte
}

// Read implements the standard Read interface:
// it reads data from the rope, populating p, and returns
// the number of bytes actually read.
func (reader *RopeReader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(reader.pending) > 0 {
			c := copy(p[n:], reader.pending)
			n += c
			reader.pending = reader.pending[c:]
			continue
		}
		if reader.position >= reader.rope.Length() {
			break
		}

		leaf, at := reader.rope.leafForOffset(reader.position)
		chunk := leaf.content[at:]
		reader.pending = encode(reader.pending[:0], chunk)
		reader.position += len(chunk)
	}

	if n < len(p) {
		err = io.EOF
	}
	return
}

func (rope Rope) Reader() *RopeReader {
	return rope.OffsetReader(0)
}

func (rope Rope) OffsetReader(offset int) *RopeReader {
	return &RopeReader{rope: rope, position: max(0, min(offset, rope.Length()))}
}

// WriteTo writes the UTF-8 encoding of the rope to w, leaf by leaf.
func (rope Rope) WriteTo(w io.Writer) (n int64, err error) {
	var buf []byte
	rope.walk(func(node Rope) {
		if err != nil || len(node.content) == 0 {
			return
		}
		buf = encode(buf[:0], node.content)
		var written int
		written, err = w.Write(buf)
		n += int64(written)
	})
	return
}

func encode(dst []byte, rs []rune) []byte {
	for _, r := range rs {
		dst = utf8.AppendRune(dst, r)
	}
	return dst
}
