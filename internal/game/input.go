package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested map action.
type Action uint8

const (
	ActionNone Action = iota
	ActionPrev
	ActionNext
	ActionSelect
	ActionNewRun
	ActionQuit
)

// keyToAction maps a tcell key event to a map action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyLeft, tcell.KeyUp:
		return ActionPrev
	case tcell.KeyRight, tcell.KeyDown, tcell.KeyTab:
		return ActionNext
	case tcell.KeyEnter:
		return ActionSelect
	case tcell.KeyEscape:
		return ActionQuit
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	switch ev.Rune() {
	case 'h', 'H', 'k', 'K':
		return ActionPrev
	case 'l', 'L', 'j', 'J':
		return ActionNext
	case ' ':
		return ActionSelect
	case 'n', 'N':
		return ActionNewRun
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
