package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	DefaultStyle = tcell.StyleDefault
	LightStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	AccentStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	TitleStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	BarStyle     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// cellWidth is the number of screen cells r takes when drawn by textLine.
func cellWidth(r rune) int {
	switch {
	case r == '\t':
		return 1
	case unicode.In(r, unicode.Mn, unicode.Me):
		return 0
	}
	return max(runewidth.RuneWidth(r), 1)
}

// textLine draws runes left to right on one screen row, up to maxX.
type textLine struct {
	s          tcell.Screen
	x, y, maxX int
	last       int // x of the last drawn cell, -1 before the first
}

func newTextLine(s tcell.Screen, x, y, maxX int) *textLine {
	return &textLine{s: s, x: x, y: y, maxX: maxX, last: -1}
}

// put draws r. Combining marks join the previous cell and are dropped
// when there is none; control characters show as '?'.
func (l *textLine) put(r rune, style tcell.Style) {
	w := cellWidth(r)
	if w == 0 {
		if l.last >= 0 {
			mainc, combc, st, _ := l.s.GetContent(l.last, l.y)
			l.s.SetContent(l.last, l.y, mainc, append(combc, r), st)
		}
		return
	}
	switch {
	case r == '\t':
		r = ' '
	case runewidth.RuneWidth(r) == 0:
		r = '?'
	}
	if l.x+w > l.maxX {
		l.x = l.maxX
		return
	}
	l.s.SetContent(l.x, l.y, r, nil, style)
	l.last = l.x
	l.x += w
}

// drawText draws text on row y from x, stopping before maxX. It returns the
// column after the last drawn cell.
func drawText(s tcell.Screen, x, y, maxX int, style tcell.Style, text string) int {
	l := newTextLine(s, x, y, maxX)
	for _, r := range text {
		l.put(r, style)
		if l.x >= maxX {
			break
		}
	}
	return l.x
}

func fill(s tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

func drawBox(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style, title string) {
	fill(s, x1, y1, x2-x1+1, y2-y1+1, style)
	for col := x1; col <= x2; col++ {
		s.SetContent(col, y1, tcell.RuneHLine, nil, style)
		s.SetContent(col, y2, tcell.RuneHLine, nil, style)
	}
	for row := y1 + 1; row < y2; row++ {
		s.SetContent(x1, row, tcell.RuneVLine, nil, style)
		s.SetContent(x2, row, tcell.RuneVLine, nil, style)
	}
	s.SetContent(x1, y1, tcell.RuneULCorner, nil, style)
	s.SetContent(x2, y1, tcell.RuneURCorner, nil, style)
	s.SetContent(x1, y2, tcell.RuneLLCorner, nil, style)
	s.SetContent(x2, y2, tcell.RuneLRCorner, nil, style)
	if title != "" {
		drawText(s, x1+2, y1, x2-1, style, " "+title+" ")
	}
}
