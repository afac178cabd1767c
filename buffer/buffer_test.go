package buffer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func expectString(a, b string, t *testing.T) {
	t.Helper()
	if a != b {
		t.Fatalf("expected '%v', got '%v'", a, b)
	}
}

func expectInt(a, b int, t *testing.T) {
	t.Helper()
	if a != b {
		t.Fatalf("expected %v, got %v", a, b)
	}
}

func expectOutOfRange(err error, t *testing.T) {
	t.Helper()
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestInsertChar(t *testing.T) {
	b := New("foo")
	for i, c := range "\nbar\n" {
		if err := b.Insert(3+i, c); err != nil {
			t.Fatal(err)
		}
	}
	expectString("foo\nbar\n", b.String(), t)
	expectInt(3, b.LineCount(), t)

	line, _ := b.Line(1)
	expectString("bar", line, t)
	line, _ = b.Line(2)
	expectString("", line, t)
}

func TestEmptyBuffer(t *testing.T) {
	b := New("")
	expectInt(1, b.LineCount(), t)
	expectInt(0, b.Length(), t)
	start, err := b.LineToChar(0)
	if err != nil {
		t.Fatal(err)
	}
	expectInt(0, start, t)
	n, _ := b.LineLen(0)
	expectInt(0, n, t)
}

func TestNewlineChangesLineCountByOne(t *testing.T) {
	b := New("abcd")
	b.Insert(2, '\n')
	expectInt(2, b.LineCount(), t)
	b.Remove(2, 3)
	expectInt(1, b.LineCount(), t)
	expectString("abcd", b.String(), t)
}

func TestRemoveJoinsLines(t *testing.T) {
	b := New("ab\ncd\nef")
	if err := b.Remove(2, 3); err != nil {
		t.Fatal(err)
	}
	expectString("abcd\nef", b.String(), t)
	line, _ := b.Line(0)
	expectString("abcd", line, t)
	start, _ := b.LineToChar(1)
	expectInt(5, start, t)
}

func TestEditKeepsEarlierLinesStable(t *testing.T) {
	b := New("one\ntwo\nthree\nfour")
	before := []int{}
	for row := 0; row < 2; row++ {
		start, _ := b.LineToChar(row)
		before = append(before, start)
	}
	b.Insert(9, 'X')
	b.Remove(12, 14)
	for row := 0; row < 2; row++ {
		start, _ := b.LineToChar(row)
		expectInt(before[row], start, t)
	}
}

func TestOutOfRange(t *testing.T) {
	b := New("ab\ncd")
	expectOutOfRange(b.Insert(6, 'x'), t)
	expectOutOfRange(b.Insert(-1, 'x'), t)
	expectOutOfRange(b.Remove(3, 2), t)
	expectOutOfRange(b.Remove(4, 6), t)
	_, err := b.LineToChar(2)
	expectOutOfRange(err, t)
	_, err = b.Line(2)
	expectOutOfRange(err, t)
	_, err = b.OffsetToPosition(6)
	expectOutOfRange(err, t)

	// the failed calls must not have touched the content
	expectString("ab\ncd", b.String(), t)
	if err := b.Insert(5, 'x'); err != nil {
		t.Fatal(err)
	}
}

func TestOffsetPositionRoundTrip(t *testing.T) {
	b := New("héllo\n\nworld\n  indented\n")
	for row := 0; row < b.LineCount(); row++ {
		n, _ := b.LineLen(row)
		start, _ := b.LineToChar(row)
		for col := 0; col <= n; col++ {
			p, err := b.OffsetToPosition(start + col)
			if err != nil {
				t.Fatal(err)
			}
			if p != (Position{row, col}) {
				t.Fatalf("expected (%d, %d), got %+v", row, col, p)
			}
		}
	}
}

func TestReadWrite(t *testing.T) {
	text := strings.Repeat("päckage main\n", 200)
	b, err := ReadFrom(strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	expectInt(201, b.LineCount(), t)

	var out bytes.Buffer
	if _, err := b.WriteTo(&out); err != nil {
		t.Fatal(err)
	}
	expectString(text, out.String(), t)
}

func TestSnapshotIsStable(t *testing.T) {
	b := New("abc")
	snap := b.Snapshot()
	b.Insert(0, 'x')
	expectString("abc", snap.String(), t)
	expectString("xabc", b.String(), t)
}
