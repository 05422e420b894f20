// Package rules implements the per-level keyboard rules of Mystery Keyboard.
//
// Each rule is a stateless value: the press history it needs (press counter,
// remembered key, visibility flag) lives in a core.RuleState owned by the
// caller and threaded through every transition. Rules register themselves
// with the registry under the logic name used in level files.
package rules

import (
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/registry"
)

// Logic names as they appear in level files.
const (
	Normal                = "normal"
	AlternateDeactivation = "alternateDeactivation"
	DoublePressRequired   = "doublePressRequired"
	NextLetter            = "nextLetter"
	Invisible             = "invisible"
	VowelsTwice           = "vowelsTwice"
	ToggleVisibility      = "toggleVisibility"
	IconKeyboardFirst     = "iconKeyboardFirst"
	ReverseOrder          = "reverseOrder"
	IconKeyboardSecond    = "iconKeyboardSecond"
)

func init() {
	registry.Register(Normal, func() registry.Rule { return NormalRule{} })
	registry.Register(AlternateDeactivation, func() registry.Rule { return AlternateRule{} })
	registry.Register(DoublePressRequired, func() registry.Rule { return DoublePressRule{} })
	registry.Register(NextLetter, func() registry.Rule { return NextLetterRule{} })
	registry.Register(Invisible, func() registry.Rule { return InvisibleRule{} })
	registry.Register(VowelsTwice, func() registry.Rule { return VowelsTwiceRule{} })
	registry.Register(ToggleVisibility, func() registry.Rule { return ToggleRule{} })
	registry.Register(IconKeyboardFirst, func() registry.Rule { return IconFirstRule{} })
	registry.Register(ReverseOrder, func() registry.Rule { return ReverseRule{} })
	registry.Register(IconKeyboardSecond, func() registry.Rule { return IconSecondRule{} })
}

// base provides the default render and insertion behavior shared by all rules.
type base struct{}

func (base) KeyState(core.RuleState, string) core.KeyState { return core.Shown }

func (base) KeyboardVisible(core.RuleState) bool { return true }

func (base) Insertion(core.RuleState, rune, []rune) core.Position { return core.Append }

// keyLetter returns the letter carried by a single-character key.
// Keys longer than one character (icon identifiers) carry no letter.
func keyLetter(key string) rune {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || size != len(key) {
		return 0
	}
	return r
}

// commit is the outcome of a press that adds letter to the buffer.
func commit(letter rune) core.Outcome {
	return core.Outcome{Letter: letter, Commit: letter != 0}
}

// suppress is the outcome of a press that adds nothing.
func suppress(fb core.Feedback) core.Outcome {
	return core.Outcome{Feedback: fb}
}

// isVowel reports whether r is one of A, E, I, O, U.
func isVowel(r rune) bool {
	switch unicode.ToUpper(r) {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}
