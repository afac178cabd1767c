package editor

// ActionKind enumerates every input the cursor model understands.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionInsertChar
	ActionInsertNewline
	ActionDeleteBackward
	ActionDeleteForward
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionLineStart
	ActionLineEnd
	ActionPageUp
	ActionPageDown
)

// Action is a classified input event. Char is only meaningful for ActionInsertChar.
type Action struct {
	Kind ActionKind
	Char rune
}

func InsertChar(c rune) Action {
	return Action{Kind: ActionInsertChar, Char: c}
}

func (k ActionKind) edits() bool {
	switch k {
	case ActionInsertChar, ActionInsertNewline, ActionDeleteBackward, ActionDeleteForward:
		return true
	}
	return false
}
