package rules

import (
	"testing"

	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/registry"
)

// play feeds keys to r from a fresh state and returns the resulting buffer,
// the outcome of every press and the final state.
func play(r registry.Rule, keys ...string) (string, []core.Outcome, core.RuleState) {
	var st core.RuleState
	var buf []rune
	outs := make([]core.Outcome, 0, len(keys))

	for _, k := range keys {
		var out core.Outcome
		st, out = r.Press(st, k, buf)
		outs = append(outs, out)
		if !out.Committed() {
			continue
		}
		if r.Insertion(st, out.Letter, buf) == core.Prepend {
			buf = append([]rune{out.Letter}, buf...)
		} else {
			buf = append(buf, out.Letter)
		}
	}
	return string(buf), outs, st
}

func TestAllRulesRegistered(t *testing.T) {
	names := []string{
		Normal, AlternateDeactivation, DoublePressRequired, NextLetter, Invisible,
		VowelsTwice, ToggleVisibility, IconKeyboardFirst, ReverseOrder, IconKeyboardSecond,
	}
	for _, name := range names {
		r, err := registry.Create(name)
		if err != nil {
			t.Errorf("Create(%q) failed: %v", name, err)
			continue
		}
		if r.Name() != name {
			t.Errorf("Create(%q) returned rule named %q", name, r.Name())
		}
		if r.Title() == "" {
			t.Errorf("rule %q has no title", name)
		}
	}
	if got := len(registry.List()); got != len(names) {
		t.Errorf("expected %d registered rules, got %d", len(names), got)
	}
}

func TestRuleSequences(t *testing.T) {
	tests := []struct {
		name string
		rule registry.Rule
		keys []string
		want string
	}{
		{"normal", NormalRule{}, []string{"P", "O", "K", "I"}, "POKI"},
		{"alternate drops even presses", AlternateRule{}, []string{"K", "K", "K"}, "KK"},
		{"alternate spells target", AlternateRule{}, []string{"P", "X", "O", "X", "K", "X", "I"}, "POKI"},
		{"double press", DoublePressRule{}, []string{"A", "B", "A", "A"}, "A"},
		{"double press pairs", DoublePressRule{}, []string{"P", "P", "O", "O"}, "PO"},
		{"next letter", NextLetterRule{}, []string{"O", "N", "J", "H"}, "POKI"},
		{"next letter wraps", NextLetterRule{}, []string{"Z", "P"}, "AQ"},
		{"next letter passes non-letters", NextLetterRule{}, []string{"1", "a"}, "1a"},
		{"invisible commits", InvisibleRule{}, []string{"P", "O"}, "PO"},
		{"vowel interrupted by consonant", VowelsTwiceRule{}, []string{"A", "B"}, "B"},
		{"vowels twice", VowelsTwiceRule{}, []string{"P", "O", "O", "K", "I", "I"}, "POKI"},
		{"vowel switch restarts", VowelsTwiceRule{}, []string{"O", "I", "I"}, "I"},
		{"toggle commits", ToggleRule{}, []string{"P", "O", "K"}, "POK"},
		{"icons first", IconFirstRule{}, []string{"penguin", "octopus", "kite", "icecream"}, "POKI"},
		{"reverse", ReverseRule{}, []string{"P", "O", "K", "I"}, "IKOP"},
		{"reverse spells target", ReverseRule{}, []string{"I", "K", "O", "P"}, "POKI"},
		{"icons second", IconSecondRule{}, []string{"spider", "socks", "skull", "giraffe"}, "POKI"},
		{"icons second rejects short", IconSecondRule{}, []string{"a", "socks"}, "O"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _, _ := play(tc.rule, tc.keys...)
			if got != tc.want {
				t.Errorf("keys %v: expected %q, got %q", tc.keys, tc.want, got)
			}
		})
	}
}

func TestAlternateCountsEveryPress(t *testing.T) {
	_, outs, st := play(AlternateRule{}, "K", "K", "K")
	if st.Presses != 3 {
		t.Errorf("expected 3 presses counted, got %d", st.Presses)
	}
	want := []bool{true, false, true}
	for i, out := range outs {
		if out.Committed() != want[i] {
			t.Errorf("press %d: committed=%v, want %v", i+1, out.Committed(), want[i])
		}
		if out.Feedback != core.FeedbackNone {
			t.Errorf("press %d: unexpected feedback %v", i+1, out.Feedback)
		}
	}
}

func TestDoublePressFeedback(t *testing.T) {
	_, outs, st := play(DoublePressRule{}, "A", "B", "A", "A")
	for i := 0; i < 3; i++ {
		if outs[i].Committed() {
			t.Errorf("press %d should not commit", i+1)
		}
		if outs[i].Feedback != core.FeedbackPressAgain {
			t.Errorf("press %d: expected PressAgain, got %v", i+1, outs[i].Feedback)
		}
	}
	if !outs[3].Committed() || outs[3].Letter != 'A' {
		t.Errorf("4th press should commit A, got %+v", outs[3])
	}
	if st.LastKey != "" {
		t.Errorf("memory should be cleared after commit, got %q", st.LastKey)
	}
}

func TestVowelsTwiceFeedback(t *testing.T) {
	_, outs, st := play(VowelsTwiceRule{}, "A", "B")
	if outs[0].Committed() || outs[0].Feedback != core.FeedbackPressAgain {
		t.Errorf("first vowel press: expected PressAgain without commit, got %+v", outs[0])
	}
	if !outs[1].Committed() || outs[1].Letter != 'B' {
		t.Errorf("consonant should commit B, got %+v", outs[1])
	}
	if st.LastKey != "" {
		t.Errorf("consonant should clear memory, got %q", st.LastKey)
	}
}

func TestIconSecondInvalid(t *testing.T) {
	for _, id := range []string{"", "a"} {
		_, outs, _ := play(IconSecondRule{}, id)
		if outs[0].Committed() {
			t.Errorf("%q should not commit", id)
		}
		if outs[0].Feedback != core.FeedbackInvalidIcon {
			t.Errorf("%q: expected InvalidIcon, got %v", id, outs[0].Feedback)
		}
	}
}

func TestIconFirstEmptyIdentifier(t *testing.T) {
	_, outs, _ := play(IconFirstRule{}, "")
	if outs[0].Committed() || outs[0].Feedback != core.FeedbackInvalidIcon {
		t.Errorf("empty identifier: expected InvalidIcon, got %+v", outs[0])
	}
}

func TestMultiCharacterKeyCarriesNoLetter(t *testing.T) {
	_, outs, _ := play(NormalRule{}, "penguin")
	if outs[0].Committed() {
		t.Errorf("icon identifier on a letter rule should not commit, got %+v", outs[0])
	}
}

func TestInvisibleKeyState(t *testing.T) {
	r := InvisibleRule{}
	ks := r.KeyState(core.RuleState{}, "P")
	if ks.Visible || !ks.Enabled {
		t.Errorf("expected hidden but enabled key, got %+v", ks)
	}
	if !r.KeyboardVisible(core.RuleState{}) {
		t.Error("invisible rule keeps the keyboard mounted")
	}
}

func TestToggleVisibility(t *testing.T) {
	r := ToggleRule{}
	var st core.RuleState
	if !r.KeyboardVisible(st) {
		t.Fatal("keyboard should start visible")
	}

	want := []bool{false, true, false}
	for i, vis := range want {
		st, _ = r.Press(st, "P", nil)
		if r.KeyboardVisible(st) != vis {
			t.Errorf("after press %d: visible=%v, want %v", i+1, r.KeyboardVisible(st), vis)
		}
	}

	// Presses that commit nothing do not flip.
	before := r.KeyboardVisible(st)
	st, _ = r.Press(st, "penguin", nil)
	if r.KeyboardVisible(st) != before {
		t.Error("non-committing press flipped visibility")
	}
}

func TestDefaultsForPlainRules(t *testing.T) {
	for _, r := range []registry.Rule{NormalRule{}, AlternateRule{}, NextLetterRule{}, IconFirstRule{}} {
		if ks := r.KeyState(core.RuleState{}, "Q"); ks != core.Shown {
			t.Errorf("%s: expected shown key, got %+v", r.Name(), ks)
		}
		if !r.KeyboardVisible(core.RuleState{}) {
			t.Errorf("%s: expected visible keyboard", r.Name())
		}
		if pos := r.Insertion(core.RuleState{}, 'Q', nil); pos != core.Append {
			t.Errorf("%s: expected append, got %v", r.Name(), pos)
		}
	}
}

// A reset state must behave exactly like a brand new rule.
func TestResetReproducesFreshRule(t *testing.T) {
	seqs := map[string][]string{
		AlternateDeactivation: {"K", "K", "K", "O"},
		DoublePressRequired:   {"A", "B", "A", "A", "C"},
		VowelsTwice:           {"A", "B", "O", "O"},
		ToggleVisibility:      {"P", "O", "K"},
	}
	for name, keys := range seqs {
		r, err := registry.Create(name)
		if err != nil {
			t.Fatalf("Create(%q): %v", name, err)
		}

		fresh, freshOuts, _ := play(r, keys...)

		// Play a different sequence first, then reset to the zero value and replay.
		st := core.RuleState{}
		for _, k := range []string{"E", "Z", "E"} {
			st, _ = r.Press(st, k, nil)
		}
		if st == (core.RuleState{}) {
			t.Fatalf("%s: warm-up left the state untouched", name)
		}
		st = core.RuleState{}

		var buf []rune
		for i, k := range keys {
			var out core.Outcome
			st, out = r.Press(st, k, buf)
			if out != freshOuts[i] {
				t.Errorf("%s press %d after reset: %+v, fresh %+v", name, i+1, out, freshOuts[i])
			}
			if out.Committed() {
				buf = append(buf, out.Letter)
			}
		}
		if string(buf) != fresh {
			t.Errorf("%s: after reset %q, fresh %q", name, string(buf), fresh)
		}
	}
}

func TestIsVowel(t *testing.T) {
	for _, r := range "AEIOUaeiou" {
		if !isVowel(r) {
			t.Errorf("%q should be a vowel", r)
		}
	}
	for _, r := range "BYZ1 " {
		if isVowel(r) {
			t.Errorf("%q should not be a vowel", r)
		}
	}
}
