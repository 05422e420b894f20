// Package game contains the input buffer controller and the level session
// that drives it. Both are pure logic with no terminal or network
// dependencies; the platform packages handle timing and rendering.
package game

import (
	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/registry"
)

// Listener receives controller signals. All methods are called synchronously
// from the goroutine that drives the controller.
type Listener interface {
	// BufferChanged is called after every commit, removal or clear.
	BufferChanged(buf []rune)

	// LevelWon is called once when the buffer matches the target.
	LevelWon()

	// LevelLost is called when a full buffer does not match the target.
	// attempt is the rejected word.
	LevelLost(attempt string)
}

// Result describes what a single press did.
type Result struct {
	Accepted bool         // The press reached the rule
	Outcome  core.Outcome // Rule decision (zero when not accepted)
	Position core.Position
	Status   core.Status // Status after the press
}

// Controller owns the answer buffer of one level attempt and the state of
// its rule. It is not safe for concurrent use.
type Controller struct {
	rule     registry.Rule
	state    core.RuleState
	target   []rune
	buf      []rune
	status   core.Status
	listener Listener
}

// NewController creates a controller for target driven by rule.
// listener may be nil.
func NewController(rule registry.Rule, target string, listener Listener) *Controller {
	t := []rune(target)
	return &Controller{
		rule:     rule,
		target:   t,
		buf:      make([]rune, 0, len(t)),
		listener: listener,
	}
}

// Press forwards a raw key or icon identifier to the rule and applies its
// decision. Presses are ignored once the buffer is full or the level is won.
func (c *Controller) Press(key string) Result {
	if c.status != core.StatusPlaying || len(c.buf) >= len(c.target) {
		return Result{Status: c.status}
	}

	next, out := c.rule.Press(c.state, key, c.Buffer())
	c.state = next

	res := Result{Accepted: true, Outcome: out}
	if out.Committed() {
		res.Position = c.rule.Insertion(c.state, out.Letter, c.Buffer())
		c.insert(out.Letter, res.Position)
		c.notifyBuffer()

		if len(c.buf) == len(c.target) {
			c.Evaluate()
		}
	}

	res.Status = c.status
	return res
}

// insert places letter according to pos.
func (c *Controller) insert(letter rune, pos core.Position) {
	if pos == core.Prepend {
		c.buf = append(c.buf, 0)
		copy(c.buf[1:], c.buf)
		c.buf[0] = letter
		return
	}
	c.buf = append(c.buf, letter)
}

// Backspace removes the last letter. It bypasses the rule entirely.
// Returns false when there was nothing to remove or input is closed.
func (c *Controller) Backspace() bool {
	if c.status != core.StatusPlaying || len(c.buf) == 0 {
		return false
	}
	c.buf = c.buf[:len(c.buf)-1]
	c.notifyBuffer()
	return true
}

// Evaluate compares a full buffer with the target, case-sensitively.
// A match wins the level. A mismatch moves the controller to
// StatusRetrying until Retry is called. Incomplete buffers are not judged.
func (c *Controller) Evaluate() core.Status {
	if c.status != core.StatusPlaying || len(c.buf) != len(c.target) {
		return c.status
	}

	word := string(c.buf)
	if word == string(c.target) {
		c.status = core.StatusWon
		if c.listener != nil {
			c.listener.LevelWon()
		}
		return c.status
	}

	c.status = core.StatusRetrying
	if c.listener != nil {
		c.listener.LevelLost(word)
	}
	return c.status
}

// Retry clears the buffer and resets the rule after a wrong answer.
// It is meant to run after the presentation layer's feedback delay and is a
// no-op unless the controller is waiting for it.
func (c *Controller) Retry() bool {
	if c.status != core.StatusRetrying {
		return false
	}
	c.clear()
	return true
}

// Restart discards the current attempt: empty buffer, fresh rule state,
// playing again. Works from any status.
func (c *Controller) Restart() {
	c.clear()
}

func (c *Controller) clear() {
	c.buf = c.buf[:0]
	c.state = core.RuleState{}
	c.status = core.StatusPlaying
	c.notifyBuffer()
}

// KeyRenderState reports how key should be drawn. Backspace is always shown.
// Visibility of the keyboard as a whole and of the individual key are
// combined; Enabled is never cleared by visibility.
func (c *Controller) KeyRenderState(key string) core.KeyState {
	if key == core.BackspaceKey {
		return core.Shown
	}
	ks := c.rule.KeyState(c.state, key)
	ks.Visible = ks.Visible && c.rule.KeyboardVisible(c.state)
	return ks
}

// KeyboardVisible reports whether the rule currently shows the keyboard.
func (c *Controller) KeyboardVisible() bool {
	return c.rule.KeyboardVisible(c.state)
}

// Buffer returns a copy of the committed letters.
func (c *Controller) Buffer() []rune {
	out := make([]rune, len(c.buf))
	copy(out, c.buf)
	return out
}

// Word returns the buffer as a string.
func (c *Controller) Word() string { return string(c.buf) }

// Target returns the target word.
func (c *Controller) Target() string { return string(c.target) }

// Status returns the current attempt status.
func (c *Controller) Status() core.Status { return c.status }

// Rule returns the active rule.
func (c *Controller) Rule() registry.Rule { return c.rule }

// State returns the rule state (useful for tests and debugging views).
func (c *Controller) State() core.RuleState { return c.state }

func (c *Controller) notifyBuffer() {
	if c.listener != nil {
		c.listener.BufferChanged(c.Buffer())
	}
}

// RuleName returns the logic name of the active rule.
func (c *Controller) RuleName() string { return c.rule.Name() }
