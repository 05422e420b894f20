package core

// Action represents a semantic input action, abstracted from physical key presses.
// Letter keys typed directly are not actions: they are forwarded to the
// controller as raw keys.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Left arrow - move key focus left
	ActionRight            // Right arrow - move key focus right
	ActionUp               // Up arrow - move key focus up a row
	ActionDown             // Down arrow - move key focus down a row
	ActionPress            // Enter - press the focused key
	ActionBackspace        // Backspace - remove the last letter
	ActionRestart          // Ctrl+R - restart the level
	ActionNext             // Enter on the win screen - next level
	ActionBack             // Esc - back to the level picker
	ActionHelp             // Tab - toggle full help
	ActionQuit             // Ctrl+C - exit
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
	case ActionPress:
		return "Press"
	case ActionBackspace:
		return "Backspace"
	case ActionRestart:
		return "Restart"
	case ActionNext:
		return "Next"
	case ActionBack:
		return "Back"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
