// Package tui provides the Bubble Tea front end of Mystery Keyboard.
// It owns everything time-based (key flash, wrong-answer shake, win pause)
// and drives the game session in response to terminal input.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDoneMsg ends the highlight of a pressed key.
type flashDoneMsg struct{ gen int }

// retryMsg clears a wrong answer after the shake.
type retryMsg struct{ gen int }

// winMsg shows the win screen after the win pause.
type winMsg struct{ gen int }

// after returns a command that delivers msg once d has elapsed.
// A zero duration delivers it on the next update.
func after(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
