package rules

import "github.com/vovakirdan/mystery-keyboard/internal/core"

// AlternateRule commits odd-numbered presses and silently drops the even ones.
// Keys stay visible and enabled throughout.
type AlternateRule struct{ base }

func (AlternateRule) Name() string  { return AlternateDeactivation }
func (AlternateRule) Title() string { return "Alternate Deactivation" }

func (AlternateRule) Press(st core.RuleState, key string, _ []rune) (core.RuleState, core.Outcome) {
	st.Presses++
	if st.Presses%2 == 0 {
		return st, suppress(core.FeedbackNone)
	}
	return st, commit(keyLetter(key))
}

// DoublePressRule commits a key only when it is pressed twice in a row.
type DoublePressRule struct{ base }

func (DoublePressRule) Name() string  { return DoublePressRequired }
func (DoublePressRule) Title() string { return "Double Press Required" }

func (DoublePressRule) Press(st core.RuleState, key string, _ []rune) (core.RuleState, core.Outcome) {
	if st.LastKey != "" && st.LastKey == key {
		st.LastKey = ""
		return st, commit(keyLetter(key))
	}
	st.LastKey = key
	return st, suppress(core.FeedbackPressAgain)
}

// VowelsTwiceRule needs two consecutive presses for a vowel and one for a
// consonant. A different key pressed while a vowel is pending starts over
// from that key.
type VowelsTwiceRule struct{ base }

func (VowelsTwiceRule) Name() string  { return VowelsTwice }
func (VowelsTwiceRule) Title() string { return "Vowels Twice" }

func (VowelsTwiceRule) Press(st core.RuleState, key string, _ []rune) (core.RuleState, core.Outcome) {
	letter := keyLetter(key)
	if !isVowel(letter) {
		st.LastKey = ""
		return st, commit(letter)
	}
	if st.LastKey == key {
		st.LastKey = ""
		return st, commit(letter)
	}
	st.LastKey = key
	return st, suppress(core.FeedbackPressAgain)
}
