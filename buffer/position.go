package buffer

// Position points into a buffer by 0-based (Row, Col), counted in runes.
// Col may equal the length of the line, which places it after the last rune.
type Position struct {
	Row, Col int
}
