package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mystery-keyboard/internal/config"
	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/game"
	"github.com/vovakirdan/mystery-keyboard/internal/levels"
)

// iconsPerRow is the width of the icon grid.
const iconsPerRow = 3

// keyboard is the on-screen key layout of a level. The last row always
// holds the backspace key.
type keyboard struct {
	rows  [][]string
	icons bool
	width int // label width shared by every key
}

func buildKeyboard(lvl levels.Level, cfg config.GameConfig) keyboard {
	var kb keyboard
	if lvl.Keyboard == levels.KeyboardIcons {
		kb.icons = true
		for i := 0; i < len(lvl.Icons); i += iconsPerRow {
			end := min(i+iconsPerRow, len(lvl.Icons))
			kb.rows = append(kb.rows, lvl.Icons[i:end])
		}
	} else {
		for _, row := range cfg.Keyboard.Keys() {
			if len(row) > 0 {
				kb.rows = append(kb.rows, row)
			}
		}
	}
	kb.rows = append(kb.rows, []string{core.BackspaceKey})

	for _, row := range kb.rows {
		for _, k := range row {
			if k == core.BackspaceKey {
				continue
			}
			kb.width = max(kb.width, lipgloss.Width(k))
		}
	}
	return kb
}

// find returns the position of key.
func (kb keyboard) find(key string) (row, col int, ok bool) {
	for r, keys := range kb.rows {
		for c, k := range keys {
			if k == key {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// icon returns the n-th icon (0-based) of an icon keyboard.
func (kb keyboard) icon(n int) (string, bool) {
	if !kb.icons {
		return "", false
	}
	for _, row := range kb.rows {
		for _, k := range row {
			if k == core.BackspaceKey {
				continue
			}
			if n == 0 {
				return k, true
			}
			n--
		}
	}
	return "", false
}

func keyLabel(k string) string {
	if k == core.BackspaceKey {
		return "⌫ DEL"
	}
	return k
}

// PlayModel is the Bubble Tea model of the play screen.
type PlayModel struct {
	session *game.Session
	cfg     config.GameConfig
	styles  Styles
	keys    PlayKeyMap
	mapper  *KeyMapper
	help    help.Model
	board   keyboard

	row, col int    // focused key
	flash    string // key currently highlighted
	flashSeq int
	feedback string
	shaking  bool
	won      bool // win screen shown
	gen      int  // attempt generation; stale timers are dropped

	width    int
	height   int
	quitting bool
	back     bool
}

// NewPlayModel creates a play screen for the session's current level.
func NewPlayModel(session *game.Session, width, height int) PlayModel {
	cfg := session.Config()
	h := help.New()
	h.Width = width

	m := PlayModel{
		session: session,
		cfg:     cfg,
		styles:  NewStyles(cfg.Palette),
		keys:    DefaultPlayKeyMap(),
		mapper:  NewKeyMapper(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.resetAttempt()
	return m
}

// Init initializes the model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case flashDoneMsg:
		if msg.gen == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case retryMsg:
		if msg.gen == m.gen {
			m.session.Controller().Retry()
			m.shaking = false
			m.feedback = ""
		}
		return m, nil

	case winMsg:
		if msg.gen == m.gen {
			m.won = true
		}
		return m, nil
	}

	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mapper.MapKey(msg, m.won) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.back = true
		return m, nil
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case core.ActionRestart:
		m.session.Restart()
		m.resetAttempt()
		return m, nil
	case core.ActionNext:
		m.session.Next()
		m.resetAttempt()
		return m, nil
	case core.ActionUp:
		m.moveFocus(-1, 0)
		return m, nil
	case core.ActionDown:
		m.moveFocus(1, 0)
		return m, nil
	case core.ActionLeft:
		m.moveFocus(0, -1)
		return m, nil
	case core.ActionRight:
		m.moveFocus(0, 1)
		return m, nil
	case core.ActionPress:
		return m.press(m.Focused())
	case core.ActionBackspace:
		return m.press(core.BackspaceKey)
	}

	if m.won || msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}

	// Typed characters: letters on letter keyboards, digits pick icons.
	r := msg.Runes[0]
	if m.board.icons {
		if r >= '1' && r <= '9' {
			if icon, ok := m.board.icon(int(r - '1')); ok {
				m.focus(icon)
				return m.press(icon)
			}
		}
		return m, nil
	}
	if unicode.IsLetter(r) {
		k := string(unicode.ToUpper(r))
		if _, _, ok := m.board.find(k); ok {
			m.focus(k)
			return m.press(k)
		}
	}
	return m, nil
}

// press sends key to the controller and schedules the feedback timers.
func (m PlayModel) press(key string) (tea.Model, tea.Cmd) {
	ctrl := m.session.Controller()
	if ctrl.Status() != core.StatusPlaying {
		return m, nil
	}

	m.flashSeq++
	m.flash = key
	cmds := []tea.Cmd{after(m.cfg.Timing.Flash(), flashDoneMsg{gen: m.flashSeq})}

	if key == core.BackspaceKey {
		ctrl.Backspace()
		m.feedback = ""
		return m, tea.Batch(cmds...)
	}

	res := ctrl.Press(key)
	if !res.Accepted {
		return m, tea.Batch(cmds...)
	}
	m.feedback = m.cfg.Feedback.Message(res.Outcome.Feedback)

	switch res.Status {
	case core.StatusRetrying:
		m.shaking = true
		m.feedback = m.cfg.Feedback.Wrong
		cmds = append(cmds, after(m.cfg.Timing.WrongDelay(), retryMsg{gen: m.gen}))
	case core.StatusWon:
		m.feedback = m.cfg.Feedback.Win
		cmds = append(cmds, after(m.cfg.Timing.WinDelay(), winMsg{gen: m.gen}))
	}
	return m, tea.Batch(cmds...)
}

// resetAttempt drops all presentation state of the previous attempt and
// lays out the keyboard of the current level.
func (m *PlayModel) resetAttempt() {
	m.gen++
	m.board = buildKeyboard(m.session.Level(), m.cfg)
	m.row, m.col = 0, 0
	m.flash = ""
	m.feedback = ""
	m.shaking = false
	m.won = false
}

// moveFocus moves the cursor by dr rows and dc columns, wrapping at the
// edges. Rows without keys are skipped.
func (m *PlayModel) moveFocus(dr, dc int) {
	rows := len(m.board.rows)
	if dr != 0 {
		for range rows {
			m.row = (m.row + dr + rows) % rows
			if len(m.board.rows[m.row]) > 0 {
				break
			}
		}
	}
	n := len(m.board.rows[m.row])
	if n == 0 {
		return
	}
	if dr != 0 {
		m.col = min(m.col, n-1)
		return
	}
	m.col = (m.col + dc + n) % n
}

func (m *PlayModel) focus(key string) {
	if r, c, ok := m.board.find(key); ok {
		m.row, m.col = r, c
	}
}

// Focused returns the identifier of the focused key.
func (m PlayModel) Focused() string {
	return m.board.rows[m.row][m.col]
}

// Feedback returns the message currently shown under the answer cells.
func (m PlayModel) Feedback() string { return m.feedback }

// Won reports whether the win screen is shown.
func (m PlayModel) Won() bool { return m.won }

// Session returns the game session.
func (m PlayModel) Session() *game.Session { return m.session }

// IsQuitting returns true if user wants to quit.
func (m PlayModel) IsQuitting() bool { return m.quitting }

// WantsBack returns true if user asked for the level picker.
func (m PlayModel) WantsBack() bool { return m.back }

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	ctrl := m.session.Controller()
	lvl := m.session.Level()

	var b strings.Builder
	b.WriteString("\n")
	title := fmt.Sprintf("LEVEL %d/%d  ·  %s", m.session.Index()+1, m.session.Total(), lvl.Title())
	b.WriteString(centerText(m.styles.Title.Render(title), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerBlock(m.styles.RenderCells(ctrl.Buffer(), len([]rune(ctrl.Target())), m.shaking), m.width))
	b.WriteString("\n")

	fb := m.styles.Feedback
	switch {
	case m.shaking:
		fb = m.styles.Error
	case ctrl.Status() == core.StatusWon:
		fb = m.styles.Success
	}
	b.WriteString(centerText(fb.Render(m.feedback), m.width))
	b.WriteString("\n\n")

	if m.won {
		b.WriteString(m.viewWin())
	} else {
		b.WriteString(m.viewKeyboard(ctrl))
	}
	b.WriteString("\n\n")

	if lvl.Instruction != "" {
		b.WriteString(centerText(m.styles.Instruction.Render(lvl.Instruction), m.width))
		b.WriteString("\n")
	}
	if m.cfg.ShowHints && lvl.Hint != "" {
		b.WriteString(centerText(m.styles.Hint.Render("Hint: "+lvl.Hint), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.styles.Help.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m PlayModel) viewKeyboard(ctrl *game.Controller) string {
	rows := make([]string, len(m.board.rows))
	for r, keys := range m.board.rows {
		rendered := make([]string, len(keys))
		for c, k := range keys {
			width := m.board.width
			if k == core.BackspaceKey {
				width = lipgloss.Width(keyLabel(k))
			}
			rendered[c] = m.styles.RenderKey(keyLabel(k), width, keyLook{
				state:   ctrl.KeyRenderState(k),
				focused: r == m.row && c == m.col,
				flashed: k == m.flash,
			})
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}
	return centerBlock(lipgloss.JoinVertical(lipgloss.Center, rows...), m.width)
}

func (m PlayModel) viewWin() string {
	next := "enter: next level"
	if !m.session.HasNext() {
		next = "enter: play again from level 1"
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(m.cfg.Palette.Success)).
		Padding(1, 4).
		Align(lipgloss.Center).
		Render(m.styles.Success.Render("★ "+m.cfg.Feedback.Win+" ★") + "\n\n" + next)
	return centerBlock(box, m.width)
}
