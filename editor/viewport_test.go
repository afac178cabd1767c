package editor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goditor/buffer"
)

func numberedLines(n int) *buffer.Buffer {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return buffer.New(strings.Join(lines, "\n"))
}

func TestReconcileScrollsDownMinimally(t *testing.T) {
	var v Viewport
	v.Reconcile(pos(15, 0), 80, 10)
	assert.Equal(t, pos(6, 0), v.Scroll())
}

func TestReconcileSnapsUpToCursor(t *testing.T) {
	var v Viewport
	v.Reconcile(pos(30, 0), 80, 10)
	v.Reconcile(pos(12, 0), 80, 10)
	assert.Equal(t, 12, v.Scroll().Row)
}

func TestReconcileLeavesScrollWhenCursorVisible(t *testing.T) {
	var v Viewport
	v.Reconcile(pos(30, 0), 80, 10)
	v.Reconcile(pos(25, 3), 80, 10)
	assert.Equal(t, pos(21, 0), v.Scroll())
}

func TestReconcileHorizontal(t *testing.T) {
	var v Viewport
	v.Reconcile(pos(0, 100), 40, 10)
	assert.Equal(t, 61, v.Scroll().Col)
	v.Reconcile(pos(0, 5), 40, 10)
	assert.Equal(t, 5, v.Scroll().Col)
}

func TestReconcileSmallBufferStaysAtOrigin(t *testing.T) {
	var v Viewport
	for row := 0; row < 5; row++ {
		for col := 0; col < 8; col++ {
			v.Reconcile(pos(row, col), 10, 5)
			require.Equal(t, pos(0, 0), v.Scroll())
		}
	}
}

func TestVisibilityContract(t *testing.T) {
	var v Viewport
	for _, size := range [][2]int{{1, 1}, {3, 2}, {80, 24}, {7, 13}} {
		width, height := size[0], size[1]
		for _, cur := range []buffer.Position{pos(0, 0), pos(50, 3), pos(2, 90), pos(49, 0), pos(0, 17), pos(100, 100)} {
			v.Reconcile(cur, width, height)
			s := v.Scroll()
			require.LessOrEqual(t, s.Row, cur.Row)
			require.Less(t, cur.Row, s.Row+height)
			require.LessOrEqual(t, s.Col, cur.Col)
			require.Less(t, cur.Col, s.Col+width)

			x, y, visible := v.RelativeCursor(cur, width, height)
			require.True(t, visible)
			require.Equal(t, cur.Col-s.Col, x)
			require.Equal(t, cur.Row-s.Row, y)
		}
	}
}

func TestVisibleLines(t *testing.T) {
	buf := numberedLines(20)
	c := NewCursor(buf)
	var v Viewport

	for i := 0; i < 15; i++ {
		c.MoveDown()
	}
	v.Reconcile(c.Position(), 80, 10)
	lines := v.VisibleLines(buf, 10)
	require.Len(t, lines, 10)
	assert.Equal(t, "line 6", lines[0])
	assert.Equal(t, "line 15", lines[9])
	assert.Equal(t, 7, v.LineNumber(0))

	c.PageDown()
	v.Reconcile(c.Position(), 80, 10)
	lines = v.VisibleLines(buf, 10)
	assert.Equal(t, []string{"line 10", "line 11", "line 12", "line 13", "line 14", "line 15", "line 16", "line 17", "line 18", "line 19"}, lines)
}

func TestVisibleLinesShortBuffer(t *testing.T) {
	var v Viewport
	assert.Equal(t, []string{"a", "b"}, v.VisibleLines(buffer.New("a\nb"), 10))
	assert.Equal(t, []string{""}, v.VisibleLines(buffer.New(""), 10))
}

func TestRelativeCursorOutsideRegion(t *testing.T) {
	var v Viewport
	v.Reconcile(pos(20, 0), 80, 10)
	_, _, visible := v.RelativeCursor(pos(2, 0), 80, 10)
	assert.False(t, visible)
}
