package core

// Action represents a semantic player action, abstracted from physical key presses.
// This allows front ends to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move the choice cursor up
	ActionDown           // S, J, Down arrow - move the choice cursor down
	ActionConfirm        // Enter, Space - take the highlighted choice
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart after an ending
	ActionJournal        // Tab - toggle the journey log
	ActionSave           // Ctrl+S - save progress and leave
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionJournal:
		return "Journal"
	case ActionSave:
		return "Save"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
