package game

import (
	"testing"

	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/registry"
	_ "github.com/vovakirdan/mystery-keyboard/internal/rules"
)

// recorder counts listener signals.
type recorder struct {
	changes []string
	won     int
	lost    []string
}

func (r *recorder) BufferChanged(buf []rune) { r.changes = append(r.changes, string(buf)) }
func (r *recorder) LevelWon()                { r.won++ }
func (r *recorder) LevelLost(attempt string) { r.lost = append(r.lost, attempt) }

func newController(t *testing.T, logic, target string) (*Controller, *recorder) {
	t.Helper()
	rule, err := registry.Create(logic)
	if err != nil {
		t.Fatalf("Create(%q): %v", logic, err)
	}
	rec := &recorder{}
	return NewController(rule, target, rec), rec
}

func pressAll(c *Controller, keys ...string) {
	for _, k := range keys {
		c.Press(k)
	}
}

func TestControllerWin(t *testing.T) {
	c, rec := newController(t, "normal", "POKI")
	pressAll(c, "P", "O", "K", "I")

	if c.Status() != core.StatusWon {
		t.Fatalf("expected Won, got %v", c.Status())
	}
	if rec.won != 1 {
		t.Errorf("expected one win signal, got %d", rec.won)
	}
	if c.Word() != "POKI" {
		t.Errorf("expected POKI, got %q", c.Word())
	}

	res := c.Press("X")
	if res.Accepted {
		t.Error("press after win should be ignored")
	}
	if c.Backspace() {
		t.Error("backspace after win should be ignored")
	}
	if c.Word() != "POKI" {
		t.Errorf("buffer changed after win: %q", c.Word())
	}
}

func TestControllerWrongAnswer(t *testing.T) {
	c, rec := newController(t, "normal", "POKI")
	pressAll(c, "P", "O", "K", "A")

	if c.Status() != core.StatusRetrying {
		t.Fatalf("expected Retrying, got %v", c.Status())
	}
	if len(rec.lost) != 1 || rec.lost[0] != "POKA" {
		t.Errorf("expected lost signal with POKA, got %v", rec.lost)
	}

	// Input is refused until Retry.
	if res := c.Press("I"); res.Accepted {
		t.Error("press while retrying should be ignored")
	}
	if len(c.Buffer()) != 4 {
		t.Errorf("buffer should stay full until retry, got %q", c.Word())
	}

	if !c.Retry() {
		t.Fatal("Retry should succeed while retrying")
	}
	if c.Status() != core.StatusPlaying || len(c.Buffer()) != 0 {
		t.Errorf("expected empty playing controller, got %v %q", c.Status(), c.Word())
	}
	if c.Retry() {
		t.Error("second Retry should be a no-op")
	}
}

func TestControllerCaseSensitive(t *testing.T) {
	c, _ := newController(t, "normal", "POKI")
	pressAll(c, "p", "O", "K", "I")
	if c.Status() != core.StatusRetrying {
		t.Errorf("lowercase answer should be wrong, got %v", c.Status())
	}
}

// A wrong answer must leave an empty buffer and a fresh rule state before
// the next press is processed.
func TestControllerWrongAnswerResetsRule(t *testing.T) {
	c, _ := newController(t, "alternateDeactivation", "AB")

	pressAll(c, "A", "X", "C") // commits A and C
	if c.Status() != core.StatusRetrying {
		t.Fatalf("expected Retrying, got %v", c.Status())
	}
	if c.State().Presses != 3 {
		t.Fatalf("expected 3 presses counted, got %d", c.State().Presses)
	}

	c.Retry()
	if c.State() != (core.RuleState{}) {
		t.Errorf("expected fresh rule state, got %+v", c.State())
	}

	// First press after the reset is odd again and commits.
	res := c.Press("A")
	if !res.Outcome.Committed() || c.Word() != "A" {
		t.Errorf("expected A committed after reset, got %+v buffer %q", res, c.Word())
	}
}

func TestControllerAlternateDeactivation(t *testing.T) {
	c, rec := newController(t, "alternateDeactivation", "KKKK")
	pressAll(c, "K", "K", "K")
	if c.Word() != "KK" {
		t.Errorf("expected KK, got %q", c.Word())
	}
	if len(rec.changes) != 2 {
		t.Errorf("expected 2 buffer changes, got %d", len(rec.changes))
	}
}

func TestControllerDoublePress(t *testing.T) {
	c, _ := newController(t, "doublePressRequired", "POKI")

	for i, k := range []string{"A", "B", "A"} {
		res := c.Press(k)
		if res.Outcome.Committed() {
			t.Errorf("press %d should not commit", i+1)
		}
		if res.Outcome.Feedback != core.FeedbackPressAgain {
			t.Errorf("press %d: expected PressAgain, got %v", i+1, res.Outcome.Feedback)
		}
	}
	c.Press("A")
	if c.Word() != "A" {
		t.Errorf("expected A after fourth press, got %q", c.Word())
	}
}

func TestControllerReverseOrder(t *testing.T) {
	c, rec := newController(t, "reverseOrder", "IKOP")
	res := c.Press("P")
	if res.Position != core.Prepend {
		t.Errorf("expected prepend, got %v", res.Position)
	}
	pressAll(c, "O", "K", "I")

	if c.Word() != "IKOP" {
		t.Errorf("expected IKOP, got %q", c.Word())
	}
	if c.Status() != core.StatusWon {
		t.Errorf("expected Won, got %v", c.Status())
	}
	want := []string{"P", "OP", "KOP", "IKOP"}
	for i, w := range want {
		if rec.changes[i] != w {
			t.Errorf("change %d: expected %q, got %q", i, w, rec.changes[i])
		}
	}
}

func TestControllerNextLetter(t *testing.T) {
	c, _ := newController(t, "nextLetter", "AQ")
	pressAll(c, "Z", "P")
	if c.Word() != "AQ" || c.Status() != core.StatusWon {
		t.Errorf("expected AQ won, got %q %v", c.Word(), c.Status())
	}
}

func TestControllerBackspace(t *testing.T) {
	c, rec := newController(t, "doublePressRequired", "POKI")

	if c.Backspace() {
		t.Error("backspace on empty buffer should report false")
	}

	pressAll(c, "P", "P", "O", "O")
	if !c.Backspace() {
		t.Fatal("backspace should remove a letter")
	}
	if c.Word() != "P" {
		t.Errorf("expected P, got %q", c.Word())
	}
	if rec.changes[len(rec.changes)-1] != "P" {
		t.Errorf("backspace should notify, last change %q", rec.changes[len(rec.changes)-1])
	}
}

func TestControllerFullBufferIgnoresPress(t *testing.T) {
	c, _ := newController(t, "normal", "PO")
	pressAll(c, "P", "X")
	if c.Status() != core.StatusRetrying {
		t.Fatalf("expected Retrying, got %v", c.Status())
	}
	if res := c.Press("O"); res.Accepted || len(c.Buffer()) != 2 {
		t.Errorf("full buffer accepted a press: %+v %q", res, c.Word())
	}
}

func TestControllerEvaluatePartial(t *testing.T) {
	c, rec := newController(t, "normal", "POKI")
	c.Press("P")
	if st := c.Evaluate(); st != core.StatusPlaying {
		t.Errorf("partial buffer should not be judged, got %v", st)
	}
	if rec.won != 0 || len(rec.lost) != 0 {
		t.Error("partial evaluation emitted a signal")
	}
}

func TestControllerRestart(t *testing.T) {
	c, _ := newController(t, "toggleVisibility", "POKI")
	pressAll(c, "P", "O", "K", "I")
	if c.Status() != core.StatusWon {
		t.Fatalf("expected Won, got %v", c.Status())
	}

	c.Restart()
	if c.Status() != core.StatusPlaying || c.Word() != "" || c.State() != (core.RuleState{}) {
		t.Errorf("restart should give a fresh attempt, got %v %q %+v", c.Status(), c.Word(), c.State())
	}
	if !c.KeyboardVisible() {
		t.Error("keyboard should be visible after restart")
	}
}

func TestControllerKeyRenderState(t *testing.T) {
	c, _ := newController(t, "invisible", "POKI")
	if ks := c.KeyRenderState("P"); ks.Visible || !ks.Enabled {
		t.Errorf("invisible key: got %+v", ks)
	}
	if ks := c.KeyRenderState(core.BackspaceKey); ks != core.Shown {
		t.Errorf("backspace must always be shown, got %+v", ks)
	}

	// Hidden keys still accept input.
	c.Press("P")
	if c.Word() != "P" {
		t.Errorf("hidden key should still type, got %q", c.Word())
	}
}

func TestControllerToggleRenderState(t *testing.T) {
	c, _ := newController(t, "toggleVisibility", "POKI")
	if ks := c.KeyRenderState("P"); ks != core.Shown {
		t.Fatalf("expected shown before first press, got %+v", ks)
	}

	c.Press("P")
	ks := c.KeyRenderState("O")
	if ks.Visible || !ks.Enabled {
		t.Errorf("after one press keys should be hidden but enabled, got %+v", ks)
	}
	if ks := c.KeyRenderState(core.BackspaceKey); !ks.Visible {
		t.Error("backspace must stay visible while the keyboard is hidden")
	}

	c.Press("O")
	if ks := c.KeyRenderState("K"); !ks.Visible {
		t.Errorf("after two presses keys should be visible, got %+v", ks)
	}
}

func TestControllerIconRejection(t *testing.T) {
	c, rec := newController(t, "iconKeyboardSecond", "POKI")
	res := c.Press("a")
	if !res.Accepted || res.Outcome.Committed() {
		t.Errorf("expected accepted but rejected press, got %+v", res)
	}
	if res.Outcome.Feedback != core.FeedbackInvalidIcon {
		t.Errorf("expected InvalidIcon, got %v", res.Outcome.Feedback)
	}
	if len(rec.changes) != 0 {
		t.Error("rejected icon should not change the buffer")
	}
}

func TestControllerNilListener(t *testing.T) {
	rule, _ := registry.Create("normal")
	c := NewController(rule, "AB", nil)
	pressAll(c, "A", "C")
	c.Retry()
	pressAll(c, "A", "B")
	if c.Status() != core.StatusWon {
		t.Errorf("expected Won, got %v", c.Status())
	}
	if c.RuleName() != "normal" || c.Target() != "AB" {
		t.Errorf("unexpected accessors: %q %q", c.RuleName(), c.Target())
	}
}
