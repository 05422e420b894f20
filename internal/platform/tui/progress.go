package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mystery-keyboard/internal/levels"
	"github.com/vovakirdan/mystery-keyboard/internal/storage"
)

// ProgressSource provides the data shown on the progress screen.
// *storage.Store implements it.
type ProgressSource interface {
	LoadProgress() (int, error)
	LastPlayed() (time.Time, error)
	LevelStats() ([]storage.LevelStats, error)
}

// ProgressReport is the combined view of saved progress and attempt stats.
type ProgressReport struct {
	Current    int // 0-based index of the level to resume at
	LastPlayed time.Time
	Rows       []table.Row
}

// BuildProgressReport joins level definitions with stored statistics.
// Levels without attempts get zero counts; stats for levels no longer in
// the list are ignored.
func BuildProgressReport(src ProgressSource, lvls []levels.Level) (ProgressReport, error) {
	var r ProgressReport

	current, err := src.LoadProgress()
	if err != nil {
		return r, err
	}
	if current < 0 || current >= len(lvls) {
		current = 0
	}
	r.Current = current

	if r.LastPlayed, err = src.LastPlayed(); err != nil {
		return r, err
	}

	stats, err := src.LevelStats()
	if err != nil {
		return r, err
	}
	byID := make(map[string]storage.LevelStats, len(stats))
	for _, st := range stats {
		byID[st.LevelID] = st
	}

	r.Rows = make([]table.Row, len(lvls))
	for i, lvl := range lvls {
		st := byID[lvl.ID]
		marker := ""
		if i == current {
			marker = "▶"
		}
		last := "-"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Format("Jan 02 15:04")
		}
		r.Rows[i] = table.Row{
			marker,
			fmt.Sprintf("%d", i+1),
			lvl.Title(),
			ruleTitle(lvl.Logic),
			fmt.Sprintf("%d", st.Attempts),
			fmt.Sprintf("%d", st.Wins),
			last,
		}
	}
	return r, nil
}

// ProgressKeyMap defines the key bindings for the progress screen.
type ProgressKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressModel is the Bubble Tea model for the progress screen.
type ProgressModel struct {
	report   ProgressReport
	total    int
	table    table.Model
	help     help.Model
	keys     ProgressKeyMap
	width    int
	height   int
	quitting bool
}

// NewProgressModel creates a progress screen for report.
func NewProgressModel(report ProgressReport, total, width, height int) ProgressModel {
	m := ProgressModel{
		report: report,
		total:  total,
		help:   help.New(),
		keys:   DefaultProgressKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "", Width: 1},
		{Title: "#", Width: 3},
		{Title: "Level", Width: 12},
		{Title: "Rule", Width: 24},
		{Title: "Tries", Width: 6},
		{Title: "Wins", Width: 5},
		{Title: "Last", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.report.Rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	t.SetCursor(m.report.Current)

	return t
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress screen.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress screen.
func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText(ProgressSummary(m.report, m.total), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerBlock(tableStyle.Render(m.table.View()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// ProgressSummary returns the one-line progress headline.
func ProgressSummary(r ProgressReport, total int) string {
	s := fmt.Sprintf("PROGRESS - level %d of %d", r.Current+1, total)
	if !r.LastPlayed.IsZero() {
		s += " - last played " + r.LastPlayed.Format("2006-01-02 15:04")
	}
	return s
}

// RunProgress runs the progress screen.
func RunProgress(report ProgressReport, total, width, height int) error {
	p := tea.NewProgram(
		NewProgressModel(report, total, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
