package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/levels"
	"github.com/vovakirdan/mystery-keyboard/internal/registry"
)

// PickerModel lets users choose the level to play.
type PickerModel struct {
	levels    []levels.Level
	current   int // level the saved progress points at
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  int
	choosing  bool
	quitting  bool
	back      bool
}

// NewPickerModel creates a level picker with the cursor on current.
func NewPickerModel(lvls []levels.Level, current, width, height int) PickerModel {
	if current < 0 || current >= len(lvls) {
		current = 0
	}
	return PickerModel{
		levels:    lvls,
		current:   current,
		cursor:    current,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selected = m.cursor
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the level list.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(lipgloss.NewStyle().Bold(true).Render("M Y S T E R Y   K E Y B O A R D"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select level:", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		marker := " "
		if i == m.current {
			marker = "*"
		}

		line := fmt.Sprintf("%s%2d. %-12s %s %s", cursor, i+1, lvl.Title(), marker, ruleTitle(lvl.Logic))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("* saved progress", m.width))
	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// ruleTitle returns the display title of a logic name, marking unknown ones.
func ruleTitle(logic string) string {
	for _, info := range registry.List() {
		if info.Name == logic {
			return info.Title
		}
	}
	return "?" + logic
}

// Selected returns the chosen level index, or -1 while still choosing.
func (m PickerModel) Selected() int {
	if m.choosing {
		return -1
	}
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PickerModel) WantsBack() bool {
	return m.back
}

// RunLevelPicker runs the picker on its own and returns the chosen index.
// ok is false when the user left without choosing.
func RunLevelPicker(lvls []levels.Level, current int, cfg core.RuntimeConfig) (index int, ok bool, err error) {
	model := NewPickerModel(lvls, current, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, false, err
	}

	m, ok := finalModel.(PickerModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return 0, false, nil
	}

	return m.Selected(), true, nil
}
