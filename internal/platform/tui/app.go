package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/game"
)

// AppModel manages the full flow: level picker -> play -> picker.
// This is the top-level model for local and SSH sessions.
type AppModel struct {
	session  *game.Session
	config   core.RuntimeConfig
	picker   PickerModel
	play     PlayModel
	inGame   bool
	quitting bool
}

// NewAppModel creates the app model. With pick set the level picker is
// shown first; otherwise play starts at the session's current level.
func NewAppModel(session *game.Session, cfg core.RuntimeConfig, pick bool) AppModel {
	m := AppModel{
		session: session,
		config:  cfg,
	}
	if pick {
		m.picker = NewPickerModel(session.Levels(), session.Index(), cfg.ScreenW, cfg.ScreenH)
	} else {
		m.play = NewPlayModel(session, cfg.ScreenW, cfg.ScreenH)
		m.inGame = true
	}
	return m
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.inGame {
		return m.updatePlay(msg)
	}
	return m.updatePicker(msg)
}

func (m AppModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if picker, ok := newPicker.(PickerModel); ok {
		m.picker = picker
	}

	if m.picker.IsQuitting() || m.picker.WantsBack() {
		m.quitting = true
		return m, tea.Quit
	}

	if idx := m.picker.Selected(); idx >= 0 {
		if err := m.session.Start(idx); err != nil {
			return m, nil
		}
		m.play = NewPlayModel(m.session, m.config.ScreenW, m.config.ScreenH)
		m.inGame = true
		return m, m.play.Init()
	}

	return m, cmd
}

func (m AppModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPlay, cmd := m.play.Update(msg)
	if play, ok := newPlay.(PlayModel); ok {
		m.play = play
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.WantsBack() {
		m.inGame = false
		m.picker = NewPickerModel(m.session.Levels(), m.session.Index(), m.config.ScreenW, m.config.ScreenH)
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inGame {
		return m.play.View()
	}
	return m.picker.View()
}

// InGame reports whether the play screen is active.
func (m AppModel) InGame() bool { return m.inGame }

// Run starts the Bubble Tea program for session.
func Run(session *game.Session, cfg core.RuntimeConfig, pick bool) error {
	p := tea.NewProgram(
		NewAppModel(session, cfg, pick),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
