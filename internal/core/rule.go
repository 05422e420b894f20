package core

// RuleState is the private state a keyboard rule carries between presses.
// The zero value is the state of a freshly started level, so resetting a
// rule means replacing its state with RuleState{}.
type RuleState struct {
	Presses int    // Number of presses seen (alternate deactivation)
	LastKey string // Last raw key remembered by double-press rules
	Hidden  bool   // Keyboard hidden (toggle visibility); false means shown
}

// Feedback identifies the kind of message a press produced.
// The text shown to the player is configured per kind.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackPressAgain
	FeedbackInvalidIcon
)

// String returns the stable identifier of the feedback kind.
func (f Feedback) String() string {
	switch f {
	case FeedbackNone:
		return ""
	case FeedbackPressAgain:
		return "press_again"
	case FeedbackInvalidIcon:
		return "invalid_icon"
	default:
		return "unknown"
	}
}

// Outcome is what a rule decided for a single press.
type Outcome struct {
	Letter   rune // 0 when the press produced no letter
	Commit   bool
	Feedback Feedback
}

// Committed reports whether the outcome adds a letter to the buffer.
func (o Outcome) Committed() bool {
	return o.Commit && o.Letter != 0
}

// KeyState is the render state of a single key.
// A key that is not visible but enabled must stay interactive.
type KeyState struct {
	Visible bool `json:"visible"`
	Enabled bool `json:"enabled"`
}

// Shown is the default render state.
var Shown = KeyState{Visible: true, Enabled: true}

// Position is where a committed letter lands in the buffer.
type Position int

const (
	Append  Position = iota // after the last letter
	Prepend                 // at index 0, shifting existing letters right
)

// String returns a human-readable name for the position.
func (p Position) String() string {
	if p == Prepend {
		return "prepend"
	}
	return "append"
}
