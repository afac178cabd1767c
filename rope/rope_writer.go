package rope

import "unicode/utf8"

// RopeWriter builds a rope from a byte stream. A rune split across two
// writes is held back until its remaining bytes arrive.
type RopeWriter struct {
	rope    Rope
	partial []byte
}

func Writer() *RopeWriter {
	return &RopeWriter{rope: New()}
}

func (writer *RopeWriter) Write(p []byte) (n int, err error) {
	data := p
	if len(writer.partial) > 0 {
		data = append(writer.partial, p...)
		writer.partial = nil
	}

	cut := len(data)
	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				cut = i
			}
			break
		}
	}
	if cut < len(data) {
		writer.partial = append([]byte(nil), data[cut:]...)
	}

	if cut > 0 {
		writer.rope = writer.rope.Append(NewString(string(data[:cut])))
	}
	return len(p), nil
}

// Rope returns everything written so far. A trailing incomplete rune is
// decoded as utf8.RuneError.
func (writer *RopeWriter) Rope() Rope {
	if len(writer.partial) > 0 {
		return writer.rope.Append(NewString(string(writer.partial)))
	}
	return writer.rope
}
