// Package highlight turns a single line of source into styled spans.
package highlight

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

const DefaultTheme = "monokai"

// Span is a run of text drawn with one style.
type Span struct {
	Text  string
	Style tcell.Style
}

type Highlighter struct {
	style *chroma.Style
	base  tcell.Style

	log *log.Logger
}

func New(theme string, log *log.Logger) *Highlighter {
	h := &Highlighter{log: log}
	h.SetTheme(theme)
	return h
}

// SetTheme switches to the named chroma style, falling back to DefaultTheme.
func (h *Highlighter) SetTheme(theme string) {
	style, ok := styles.Registry[theme]
	if !ok {
		if theme != "" {
			h.log.Printf("Unknown theme %q, using %s", theme, DefaultTheme)
		}
		style = styles.Get(DefaultTheme)
	}
	h.style = style
	h.base = toTcell(style.Get(chroma.Background), tcell.StyleDefault)
}

// Base is the style of text that has no token colour.
func (h *Highlighter) Base() tcell.Style {
	return h.base
}

// Language derives the language identifier from a file name, "" if unknown.
func Language(path string) string {
	if path == "" {
		return ""
	}
	if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// Line highlights one line of text. The span texts concatenate to line.
func (h *Highlighter) Line(line, lang string) []Span {
	if line == "" {
		return nil
	}

	lexer := lexers.Fallback
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			lexer = l
		}
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, line)
	if err != nil {
		return []Span{{Text: line, Style: h.base}}
	}

	var spans []Span
	rest := line
	for _, token := range it.Tokens() {
		text := token.Value
		// lexers may append a newline the line never had
		if !strings.HasPrefix(rest, text) {
			text = strings.TrimRight(text, "\n")
			if !strings.HasPrefix(rest, text) {
				break
			}
		}
		if text == "" {
			continue
		}
		rest = rest[len(text):]
		spans = append(spans, Span{Text: text, Style: toTcell(h.style.Get(token.Type), h.base)})
	}
	if rest != "" {
		spans = append(spans, Span{Text: rest, Style: h.base})
	}
	return spans
}

func toTcell(entry chroma.StyleEntry, base tcell.Style) tcell.Style {
	style := base
	if entry.Colour.IsSet() {
		style = style.Foreground(chromaToTcell(entry.Colour))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}

func chromaToTcell(c chroma.Colour) tcell.Color {
	if !c.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
