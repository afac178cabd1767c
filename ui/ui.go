// Package ui draws the application on a tcell screen.
package ui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"goditor/application"
	"goditor/buffer"
	"goditor/config"
	. "goditor/layout"
)

const minGutterDigits = 4

type UI struct {
	screen tcell.Screen
	app    *application.Application
}

func New(screen tcell.Screen, app *application.Application) *UI {
	return &UI{screen: screen, app: app}
}

// Draw renders one frame. It reconciles the current tab's viewport with the
// space the editor gets, so it must run after every handled event.
func (u *UI) Draw() {
	s := u.screen
	cfg := u.app.Settings()

	s.Clear()
	s.HideCursor()

	var main []FlexItem
	if u.app.ShowExplorer {
		main = append(main, FlexItemBox(u.explorerBox, Exact(Abs(cfg.ExplorerWidth)), nil))
	}
	main = append(main, u.editorItem(cfg))

	width, height := s.Size()
	Column(
		FlexItemBox(u.tabBarBox, Exact(Abs(1)), nil),
		FlexItemBox(EmptyBox, Max(Rel(1)), Row(main...)),
		FlexItemBox(u.statusLineBox, Exact(Abs(1)), nil),
	).StartLayouting(width, height)

	if u.app.ShowHelp {
		u.helpBox(width, height, cfg)
	}
	s.Show()
}

func (u *UI) tabBarBox(dims Dimensions) {
	x, maxX := dims.Origin.X, dims.Origin.X+dims.Width
	for i, tab := range u.app.Tabs {
		name := tab.Name
		if tab.Modified {
			name += " *"
		}
		style := TitleStyle
		if i == u.app.Current {
			name = "▶ " + name
			style = AccentStyle
		}
		x = drawText(u.screen, x, dims.Origin.Y, maxX, style, name)
		x = drawText(u.screen, x, dims.Origin.Y, maxX, DefaultStyle, " | ")
	}
}

func (u *UI) explorerBox(dims Dimensions) {
	s := u.screen
	maxX := dims.Origin.X + dims.Width - 1 // last column separates the panel
	for row := dims.Origin.Y; row < dims.Origin.Y+dims.Height; row++ {
		s.SetContent(maxX, row, tcell.RuneVLine, nil, LightStyle)
	}
	if dims.Height < 2 {
		return
	}
	drawText(s, dims.Origin.X, dims.Origin.Y, maxX, TitleStyle, " Files")

	explorer := u.app.Explorer
	explorer.Selection() // clamps Selected after a collapse
	entries := explorer.Entries()
	listHeight := dims.Height - 1
	vp := &u.app.ExplorerViewport
	vp.Reconcile(buffer.Position{Row: explorer.Selected}, max(dims.Width-1, 1), listHeight)

	first := vp.Scroll().Row
	for i := 0; i < listHeight && first+i < len(entries); i++ {
		style := DefaultStyle
		if first+i == explorer.Selected {
			style = AccentStyle
			if u.app.Focus == application.FocusExplorer {
				style = style.Reverse(true)
			}
		}
		drawText(s, dims.Origin.X, dims.Origin.Y+1+i, maxX, style, entries[first+i].DisplayLine())
	}
}

func gutterWidth(cfg config.EditorConfig, lineCount int) int {
	if cfg.LineNumbers == config.LineOff {
		return 0
	}
	return max(len(strconv.Itoa(lineCount)), minGutterDigits) + 1
}

func (u *UI) editorItem(cfg config.EditorConfig) FlexItem {
	tab := u.app.CurrentTab()
	gutter := gutterWidth(cfg, tab.Buffer.LineCount())

	// the box reconciles the viewport before the nested row draws from it.
	// Columns of the editor viewport are screen cells, not runes.
	reconcile := func(dims Dimensions) {
		width := max(dims.Width-gutter, 1)
		row := tab.Cursor.Position().Row
		cell, w := cursorCell(tab)
		tab.Viewport.Reconcile(buffer.Position{Row: row, Col: cell + w - 1}, width, dims.Height)
		tab.Viewport.Reconcile(buffer.Position{Row: row, Col: cell}, width, dims.Height)
	}
	return FlexItemBox(reconcile, Max(Rel(1)), Row(
		FlexItemBox(func(dims Dimensions) { u.lineNumberBox(dims, cfg) }, Exact(Abs(gutter)), nil),
		FlexItemBox(u.bufferBox, Max(Rel(1)), nil),
	))
}

func (u *UI) lineNumberBox(dims Dimensions, cfg config.EditorConfig) {
	if dims.Width == 0 {
		return
	}
	tab := u.app.CurrentTab()
	cursor := tab.Cursor.Position()
	scroll := tab.Viewport.Scroll()
	pad := dims.Width - 1
	maxX := dims.Origin.X + dims.Width

	visible := min(dims.Height, tab.Buffer.LineCount()-scroll.Row)
	for i := 0; i < visible; i++ {
		number := tab.Viewport.LineNumber(i)
		row := number - 1
		style := LightStyle
		if row == cursor.Row {
			style = AccentStyle
		} else if cfg.LineNumbers == config.LineRelative {
			number = abs(row - cursor.Row)
		}
		drawText(u.screen, dims.Origin.X, dims.Origin.Y+i, maxX, style, fmt.Sprintf("%*d ", pad, number))
	}
}

// cursorCell returns the screen cell of the cursor within its line and the
// width of the rune under it, 1 past the end of the line.
func cursorCell(tab *application.Tab) (cell, width int) {
	cursor := tab.Cursor.Position()
	line, err := tab.Buffer.Line(cursor.Row)
	if err != nil {
		return cursor.Col, 1
	}
	width = 1
	for i, r := range []rune(line) {
		if i == cursor.Col {
			width = max(cellWidth(r), 1)
			break
		}
		cell += cellWidth(r)
	}
	return cell, width
}

func (u *UI) bufferBox(dims Dimensions) {
	s := u.screen
	tab := u.app.CurrentTab()
	scroll := tab.Viewport.Scroll()
	maxX := dims.Origin.X + dims.Width
	fill(s, dims.Origin.X, dims.Origin.Y, dims.Width, dims.Height, u.app.Highlighter.Base())

	for i, line := range tab.Viewport.VisibleLines(tab.Buffer, dims.Height) {
		l := newTextLine(s, dims.Origin.X, dims.Origin.Y+i, maxX)
		at := 0
		for _, span := range u.app.Highlighter.Line(line, tab.Language) {
			for _, r := range span.Text {
				w := cellWidth(r)
				switch {
				case at >= scroll.Col:
					l.put(r, span.Style)
				case at+w > scroll.Col:
					// a wide rune cut by the left edge
					for c := scroll.Col; c < at+w; c++ {
						l.put(' ', span.Style)
					}
				}
				at += w
			}
		}
	}

	cell, _ := cursorCell(tab)
	caret := buffer.Position{Row: tab.Cursor.Position().Row, Col: cell}
	x, y, visible := tab.Viewport.RelativeCursor(caret, dims.Width, dims.Height)
	if visible && u.app.Focus == application.FocusEditor && !u.app.ShowHelp {
		s.ShowCursor(dims.Origin.X+x, dims.Origin.Y+y)
	}
}

func (u *UI) statusLineBox(dims Dimensions) {
	fill(u.screen, dims.Origin.X, dims.Origin.Y, dims.Width, dims.Height, BarStyle)

	text := u.app.Status
	if text == "" {
		tab := u.app.CurrentTab()
		cursor := tab.Cursor.Position()
		text = fmt.Sprintf("Line: %d, Col: %d | Lines: %d | Chars: %d ",
			cursor.Row+1, cursor.Col+1, tab.Buffer.LineCount(), tab.Buffer.Length())
	}
	drawText(u.screen, dims.Origin.X+1, dims.Origin.Y, dims.Origin.X+dims.Width, BarStyle, text)
}

func (u *UI) helpBox(width, height int, cfg config.EditorConfig) {
	bound := make(map[string][]string)
	for key, command := range cfg.Keybindings {
		bound[command] = append(bound[command], key)
	}

	lines := []string{"Commands:"}
	for _, command := range u.app.CommandNames() {
		keys := bound[command]
		slices.Sort(keys)
		lines = append(lines, fmt.Sprintf("  %-10s %s", strings.Join(keys, ", "), command))
	}
	lines = append(lines,
		"",
		"Navigation:",
		"  Arrow keys move, Home/End line start/end",
		"  PgUp/PgDn move ten lines",
		"",
		"Press any key to close",
	)

	boxWidth := min(width, 60)
	boxHeight := min(height, len(lines)+2)
	x1, y1 := (width-boxWidth)/2, (height-boxHeight)/2
	x2, y2 := x1+boxWidth-1, y1+boxHeight-1
	drawBox(u.screen, x1, y1, x2, y2, TitleStyle, "Help")
	for i, line := range lines {
		if y1+1+i >= y2 {
			break
		}
		drawText(u.screen, x1+2, y1+1+i, x2-1, DefaultStyle, line)
	}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
