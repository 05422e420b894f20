package rules

import "github.com/vovakirdan/mystery-keyboard/internal/core"

// NormalRule commits every key unchanged.
type NormalRule struct{ base }

func (NormalRule) Name() string  { return Normal }
func (NormalRule) Title() string { return "Normal Keyboard" }

func (NormalRule) Press(st core.RuleState, key string, _ []rune) (core.RuleState, core.Outcome) {
	return st, commit(keyLetter(key))
}

// NextLetterRule commits the letter after the one pressed, wrapping Z to A.
// Anything that is not an uppercase letter passes through unchanged.
type NextLetterRule struct{ base }

func (NextLetterRule) Name() string  { return NextLetter }
func (NextLetterRule) Title() string { return "Next Letter" }

func (NextLetterRule) Press(st core.RuleState, key string, _ []rune) (core.RuleState, core.Outcome) {
	return st, commit(nextLetter(keyLetter(key)))
}

// nextLetter shifts r one position along A..Z.
func nextLetter(r rune) rune {
	if r < 'A' || r > 'Z' {
		return r
	}
	return 'A' + (r-'A'+1)%26
}

// InvisibleRule renders every key fully transparent. Keys stay mounted and
// clickable, so the keyboard itself is still reported visible.
type InvisibleRule struct{ base }

func (InvisibleRule) Name() string  { return Invisible }
func (InvisibleRule) Title() string { return "Invisible Keyboard" }

func (InvisibleRule) Press(st core.RuleState, key string, _ []rune) (core.RuleState, core.Outcome) {
	return st, commit(keyLetter(key))
}

func (InvisibleRule) KeyState(core.RuleState, string) core.KeyState {
	return core.KeyState{Visible: false, Enabled: true}
}

// ToggleRule hides the keyboard after every committed press and shows it
// again after the next one.
type ToggleRule struct{ base }

func (ToggleRule) Name() string  { return ToggleVisibility }
func (ToggleRule) Title() string { return "Toggle Visibility" }

func (ToggleRule) Press(st core.RuleState, key string, _ []rune) (core.RuleState, core.Outcome) {
	out := commit(keyLetter(key))
	if out.Committed() {
		st.Hidden = !st.Hidden
	}
	return st, out
}

func (ToggleRule) KeyboardVisible(st core.RuleState) bool { return !st.Hidden }

// ReverseRule fills the buffer right to left: each letter is inserted at
// the front and pushes the earlier ones one position right.
type ReverseRule struct{ base }

func (ReverseRule) Name() string  { return ReverseOrder }
func (ReverseRule) Title() string { return "Reverse Order" }

func (ReverseRule) Press(st core.RuleState, key string, _ []rune) (core.RuleState, core.Outcome) {
	return st, commit(keyLetter(key))
}

func (ReverseRule) Insertion(core.RuleState, rune, []rune) core.Position { return core.Prepend }
