package rules

import (
	"unicode"

	"github.com/vovakirdan/mystery-keyboard/internal/core"
)

// IconFirstRule takes icon identifiers ("penguin") and commits their first
// character, uppercased.
type IconFirstRule struct{ base }

func (IconFirstRule) Name() string  { return IconKeyboardFirst }
func (IconFirstRule) Title() string { return "Icons: First Letter" }

func (IconFirstRule) Press(st core.RuleState, key string, _ []rune) (core.RuleState, core.Outcome) {
	return st, iconLetter(key, 0)
}

// IconSecondRule commits the second character of an icon identifier,
// uppercased. Identifiers shorter than two characters are rejected.
type IconSecondRule struct{ base }

func (IconSecondRule) Name() string  { return IconKeyboardSecond }
func (IconSecondRule) Title() string { return "Icons: Second Letter" }

func (IconSecondRule) Press(st core.RuleState, key string, _ []rune) (core.RuleState, core.Outcome) {
	return st, iconLetter(key, 1)
}

// iconLetter commits the uppercased character at index i of id.
func iconLetter(id string, i int) core.Outcome {
	runes := []rune(id)
	if len(runes) <= i {
		return suppress(core.FeedbackInvalidIcon)
	}
	return commit(unicode.ToUpper(runes[i]))
}
