package tui

import (
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mystery-keyboard/internal/config"
	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/game"
	"github.com/vovakirdan/mystery-keyboard/internal/levels"
	_ "github.com/vovakirdan/mystery-keyboard/internal/rules"
	"github.com/vovakirdan/mystery-keyboard/internal/storage"
)

func newTestSession(t *testing.T, index int) *game.Session {
	t.Helper()
	lvls, err := levels.Default()
	if err != nil {
		t.Fatalf("levels.Default: %v", err)
	}
	s, err := game.NewSession(lvls, nil, config.DefaultGameConfig(), game.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Start(index); err != nil {
		t.Fatalf("Start(%d): %v", index, err)
	}
	return s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m PlayModel, msgs ...tea.Msg) PlayModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(PlayModel)
	}
	return m
}

func typeWord(m PlayModel, word string) PlayModel {
	for _, r := range word {
		m = send(m, runes(string(r)))
	}
	return m
}

func TestPlayModelWin(t *testing.T) {
	m := NewPlayModel(newTestSession(t, 0), 80, 24)
	m = typeWord(m, "poki")

	ctrl := m.Session().Controller()
	if ctrl.Status() != core.StatusWon {
		t.Fatalf("expected Won, got %v (buffer %q)", ctrl.Status(), ctrl.Word())
	}
	if m.Won() {
		t.Error("win screen should wait for the win delay")
	}
	if m.Feedback() != "Level complete!" {
		t.Errorf("unexpected feedback %q", m.Feedback())
	}

	m = send(m, winMsg{gen: m.gen})
	if !m.Won() {
		t.Fatal("expected win screen after win message")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Session().Index() != 1 {
		t.Errorf("expected next level, got index %d", m.Session().Index())
	}
	if m.Won() || m.Session().Controller().Word() != "" {
		t.Error("next level should start fresh")
	}
}

func TestPlayModelWrongAnswerRetry(t *testing.T) {
	m := NewPlayModel(newTestSession(t, 0), 80, 24)
	m = typeWord(m, "pokq")

	ctrl := m.Session().Controller()
	if ctrl.Status() != core.StatusRetrying {
		t.Fatalf("expected Retrying, got %v", ctrl.Status())
	}
	if !m.shaking || m.Feedback() == "" {
		t.Error("expected shake and wrong-answer feedback")
	}

	// Typing during the shake is ignored.
	m = send(m, runes("p"))
	if ctrl.Word() != "POKQ" {
		t.Errorf("buffer changed during shake: %q", ctrl.Word())
	}

	m = send(m, retryMsg{gen: m.gen})
	if ctrl.Status() != core.StatusPlaying || ctrl.Word() != "" {
		t.Errorf("expected cleared buffer after retry, got %v %q", ctrl.Status(), ctrl.Word())
	}
	if m.shaking {
		t.Error("shake should end on retry")
	}
}

func TestPlayModelStaleRetryIgnored(t *testing.T) {
	m := NewPlayModel(newTestSession(t, 0), 80, 24)
	m = typeWord(m, "pokq")
	stale := retryMsg{gen: m.gen}

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = typeWord(m, "po")
	m = send(m, stale)

	if got := m.Session().Controller().Word(); got != "PO" {
		t.Errorf("stale retry touched the new attempt: %q", got)
	}
}

func TestPlayModelFeedbackAndFlash(t *testing.T) {
	m := NewPlayModel(newTestSession(t, 2), 80, 24) // doublePressRequired
	m = send(m, runes("p"))
	if m.Feedback() != "Press again" {
		t.Errorf("expected press-again feedback, got %q", m.Feedback())
	}
	if m.flash != "P" {
		t.Errorf("expected P flashed, got %q", m.flash)
	}
	m = send(m, flashDoneMsg{gen: m.flashSeq})
	if m.flash != "" {
		t.Error("flash should end")
	}

	m = send(m, runes("p"))
	if m.Session().Controller().Word() != "P" {
		t.Errorf("expected P after double press, got %q", m.Session().Controller().Word())
	}
}

func TestPlayModelFocusAndPress(t *testing.T) {
	m := NewPlayModel(newTestSession(t, 0), 80, 24)
	if m.Focused() != "Q" {
		t.Fatalf("expected initial focus on Q, got %q", m.Focused())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Focused() != "W" {
		t.Errorf("expected W, got %q", m.Focused())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Focused() != core.BackspaceKey {
		t.Errorf("expected wrap to backspace row, got %q", m.Focused())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Session().Controller().Word(); got != "W" {
		t.Errorf("expected W pressed via focus, got %q", got)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Session().Controller().Word(); got != "" {
		t.Errorf("expected empty buffer after backspace, got %q", got)
	}
}

func TestPlayModelSkipsEmptyKeyboardRows(t *testing.T) {
	lvls, err := levels.Default()
	if err != nil {
		t.Fatalf("levels.Default: %v", err)
	}
	cfg := config.DefaultGameConfig()
	cfg.Keyboard.Rows = []string{"POKI", "", "ASDF"}

	s, err := game.NewSession(lvls, nil, cfg, game.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	m := NewPlayModel(s, 80, 24)
	if len(m.board.rows) != 3 {
		t.Fatalf("expected 2 letter rows plus backspace, got %d rows", len(m.board.rows))
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown})
	if m.Focused() != "S" {
		t.Errorf("expected S below O, got %q", m.Focused())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyDown})
	if m.Focused() != "P" {
		t.Errorf("expected wrap to P, got %q", m.Focused())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Session().Controller().Word(); got != "P" {
		t.Errorf("expected P pressed via focus, got %q", got)
	}
}

func TestPlayModelIconDigits(t *testing.T) {
	m := NewPlayModel(newTestSession(t, 7), 80, 24) // iconKeyboardFirst
	if !m.board.icons {
		t.Fatal("expected icon keyboard")
	}

	// Letters do nothing on an icon keyboard.
	m = send(m, runes("p"))
	if m.Session().Controller().Word() != "" {
		t.Error("letter typed on icon keyboard")
	}

	// 2 is penguin in the default level.
	m = send(m, runes("2"))
	if got := m.Session().Controller().Word(); got != "P" {
		t.Errorf("expected P from penguin, got %q", got)
	}
	if m.Focused() != "penguin" {
		t.Errorf("expected focus on penguin, got %q", m.Focused())
	}
}

func TestPlayModelInvisibleKeysStillType(t *testing.T) {
	m := NewPlayModel(newTestSession(t, 4), 80, 24) // invisible
	if ks := m.Session().Controller().KeyRenderState("P"); ks.Visible {
		t.Fatal("expected invisible keys")
	}
	m = typeWord(m, "poki")
	if m.Session().Controller().Status() != core.StatusWon {
		t.Errorf("expected Won on invisible keyboard, got %v", m.Session().Controller().Status())
	}
	if m.View() == "" {
		t.Error("expected a rendered view")
	}
}

func TestPlayModelBackAndQuit(t *testing.T) {
	m := NewPlayModel(newTestSession(t, 0), 80, 24)
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsBack() {
		t.Error("esc should request the picker")
	}

	m = NewPlayModel(newTestSession(t, 0), 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(PlayModel).IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
}

func TestAppModelPickerFlow(t *testing.T) {
	s := newTestSession(t, 0)
	app := NewAppModel(s, core.DefaultConfig(), true)
	if app.InGame() {
		t.Fatal("expected picker first")
	}

	for _, msg := range []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter}} {
		next, _ := app.Update(msg)
		app = next.(AppModel)
	}
	if !app.InGame() {
		t.Fatal("expected play screen after selection")
	}
	if s.Index() != 2 {
		t.Errorf("expected level 3 selected, got index %d", s.Index())
	}

	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = next.(AppModel)
	if app.InGame() {
		t.Error("esc should return to the picker")
	}
}

func TestKeyMapperWinScreen(t *testing.T) {
	km := NewKeyMapper()
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	if got := km.MapKey(enter, false); got != core.ActionPress {
		t.Errorf("enter while playing: expected Press, got %v", got)
	}
	if got := km.MapKey(enter, true); got != core.ActionNext {
		t.Errorf("enter on win screen: expected Next, got %v", got)
	}
	if got := km.MapKey(tea.KeyMsg{Type: tea.KeyBackspace}, true); got != core.ActionNone {
		t.Errorf("backspace on win screen: expected None, got %v", got)
	}
	if got := km.MapKey(runes("q"), false); got != core.ActionNone {
		t.Errorf("letters must not be bound, got %v", got)
	}
}

type fakeSource struct {
	current int
	stats   []storage.LevelStats
	err     error
}

func (f fakeSource) LoadProgress() (int, error)                { return f.current, f.err }
func (f fakeSource) LastPlayed() (time.Time, error)            { return time.Time{}, nil }
func (f fakeSource) LevelStats() ([]storage.LevelStats, error) { return f.stats, nil }

func TestBuildProgressReport(t *testing.T) {
	lvls, _ := levels.Default()
	src := fakeSource{
		current: 1,
		stats: []storage.LevelStats{
			{LevelID: "lvl01", Attempts: 3, Wins: 1},
			{LevelID: "gone", Attempts: 9},
		},
	}

	r, err := BuildProgressReport(src, lvls)
	if err != nil {
		t.Fatalf("BuildProgressReport: %v", err)
	}
	if len(r.Rows) != len(lvls) {
		t.Fatalf("expected %d rows, got %d", len(lvls), len(r.Rows))
	}
	if r.Rows[0][4] != "3" || r.Rows[0][5] != "1" {
		t.Errorf("unexpected lvl01 row: %v", r.Rows[0])
	}
	if r.Rows[1][0] != "▶" {
		t.Errorf("expected current marker on level 2, got %v", r.Rows[1])
	}
	if r.Rows[2][4] != "0" {
		t.Errorf("expected zero attempts for unplayed level, got %v", r.Rows[2])
	}

	if _, err := BuildProgressReport(fakeSource{err: errors.New("boom")}, lvls); err == nil {
		t.Error("expected error from source")
	}
}
