package core

// Action is a semantic viewer command, abstracted from physical key presses
// so the terminal preview and the graphical viewer share one vocabulary.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // A, Left arrow - scroll left
	ActionRight             // D, Right arrow - scroll right
	ActionUp                // W, Up arrow - scroll up
	ActionDown              // S, Down arrow - scroll down
	ActionNextFrame         // N, Tab - step animation
	ActionTogglePlay        // Space - play/pause animation
	ActionRegenerate        // R - new seed
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionNextFrame:
		return "NextFrame"
	case ActionTogglePlay:
		return "TogglePlay"
	case ActionRegenerate:
		return "Regenerate"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ScrollDelta returns the viewport movement for a scroll action.
func (a Action) ScrollDelta() (dx, dy int) {
	switch a {
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	}
	return 0, 0
}
