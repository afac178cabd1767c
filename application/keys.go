package application

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"goditor/editor"
)

// ActionFromKey classifies a key press into an editing operation. Keys outside
// that set yield an ActionNone.
func ActionFromKey(ev *tcell.EventKey) editor.Action {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return editor.Action{}
		}
		return editor.InsertChar(ev.Rune())
	case tcell.KeyEnter:
		return editor.Action{Kind: editor.ActionInsertNewline}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return editor.Action{Kind: editor.ActionDeleteBackward}
	case tcell.KeyDelete:
		return editor.Action{Kind: editor.ActionDeleteForward}
	case tcell.KeyUp:
		return editor.Action{Kind: editor.ActionMoveUp}
	case tcell.KeyDown:
		return editor.Action{Kind: editor.ActionMoveDown}
	case tcell.KeyLeft:
		return editor.Action{Kind: editor.ActionMoveLeft}
	case tcell.KeyRight:
		return editor.Action{Kind: editor.ActionMoveRight}
	case tcell.KeyHome:
		return editor.Action{Kind: editor.ActionLineStart}
	case tcell.KeyEnd:
		return editor.Action{Kind: editor.ActionLineEnd}
	case tcell.KeyPgUp:
		return editor.Action{Kind: editor.ActionPageUp}
	case tcell.KeyPgDn:
		return editor.Action{Kind: editor.ActionPageDown}
	}
	return editor.Action{}
}

// BindingName is the name a key is bound by in the config, like "Ctrl+S",
// "F1" or "Tab". Plain runes have no binding name.
func BindingName(ev *tcell.EventKey) string {
	k := ev.Key()
	if k == tcell.KeyRune {
		return ""
	}
	if name, ok := tcell.KeyNames[k]; ok && !strings.HasPrefix(name, "Ctrl-") {
		return name
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return "Ctrl+" + string(rune('A'+k-tcell.KeyCtrlA))
	}
	return ""
}
