package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mystery-keyboard/internal/config"
	"github.com/vovakirdan/mystery-keyboard/internal/core"
)

// Styles holds the lipgloss styles derived from the configured palette.
type Styles struct {
	Title       lipgloss.Style
	Instruction lipgloss.Style
	Hint        lipgloss.Style
	Feedback    lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Help        lipgloss.Style

	Cell      lipgloss.Style
	CellShake lipgloss.Style

	Key         lipgloss.Style
	KeyFocus    lipgloss.Style
	KeyFlash    lipgloss.Style
	KeyDisabled lipgloss.Style
	KeyHidden   lipgloss.Style
}

// NewStyles builds styles from a palette.
func NewStyles(p config.PaletteConfig) Styles {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }

	key := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(p.CellBorder)).
		Foreground(c(p.KeyText)).
		Padding(0, 1)

	cell := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(c(p.CellBorder)).
		Foreground(c(p.CellText)).
		Bold(true).
		Width(3).
		Align(lipgloss.Center)

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(c(p.Primary)),
		Instruction: lipgloss.NewStyle().Foreground(c(p.KeyText)).Italic(true),
		Hint:        lipgloss.NewStyle().Foreground(c(p.KeyDisabled)).Italic(true),
		Feedback:    lipgloss.NewStyle().Foreground(c(p.Primary)),
		Error:       lipgloss.NewStyle().Bold(true).Foreground(c(p.Error)),
		Success:     lipgloss.NewStyle().Bold(true).Foreground(c(p.Success)),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Cell:      cell,
		CellShake: cell.BorderForeground(c(p.Error)).Foreground(c(p.Error)),

		Key:         key,
		KeyFocus:    key.BorderForeground(c(p.Primary)).Bold(true),
		KeyFlash:    key.Background(c(p.KeyFocus)).Foreground(c(p.Primary)).Bold(true),
		KeyDisabled: key.Foreground(c(p.KeyDisabled)).BorderForeground(c(p.KeyDisabled)),
		KeyHidden:   key.BorderStyle(lipgloss.HiddenBorder()).Foreground(lipgloss.NoColor{}),
	}
}

// keyLook selects the style of one key.
type keyLook struct {
	state   core.KeyState
	focused bool
	flashed bool
}

// RenderKey draws a key with label at a fixed width. Hidden keys keep their
// size so the layout does not shift while they stay pressable.
func (s Styles) RenderKey(label string, width int, look keyLook) string {
	text := padCenter(label, width)

	switch {
	case !look.state.Visible:
		text = strings.Repeat(" ", lipgloss.Width(text))
		if look.focused {
			// Keep the cursor discoverable on an invisible keyboard.
			return s.KeyHidden.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Render(text)
		}
		return s.KeyHidden.Render(text)
	case !look.state.Enabled:
		return s.KeyDisabled.Render(text)
	case look.flashed:
		return s.KeyFlash.Render(text)
	case look.focused:
		return s.KeyFocus.Render(text)
	default:
		return s.Key.Render(text)
	}
}

// RenderCells draws the answer cells for a buffer of length n.
func (s Styles) RenderCells(buf []rune, n int, shake bool) string {
	style := s.Cell
	if shake {
		style = s.CellShake
	}
	cells := make([]string, n)
	for i := range n {
		letter := " "
		if i < len(buf) {
			letter = string(buf[i])
		}
		cells[i] = style.Render(letter)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// padCenter centers text in width columns.
func padCenter(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-w-left)
}

// centerText centers a line in the terminal width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers a multi-line block in the terminal width.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
