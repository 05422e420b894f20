package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mystery-keyboard/internal/config"
	"github.com/vovakirdan/mystery-keyboard/internal/levels"
	"github.com/vovakirdan/mystery-keyboard/internal/registry"
)

// ProgressStore persists the index of the level to resume at.
// Implementations recover from their own failures.
type ProgressStore interface {
	LoadProgress() int
	SaveProgress(level int)
}

// AttemptRecorder receives every judged answer.
type AttemptRecorder interface {
	RecordAttempt(levelID string, levelIndex int, word string, won bool)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithListener forwards controller signals to l after the session handled them.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listener = l }
}

// WithRecorder records every judged answer.
func WithRecorder(r AttemptRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

// Session walks the player through the level list: it builds a controller
// with a fresh rule for the current level, saves progress on a win and
// moves on when asked.
type Session struct {
	levels   []levels.Level
	cfg      config.GameConfig
	progress ProgressStore
	recorder AttemptRecorder
	listener Listener
	logger   *log.Logger

	index int
	ctrl  *Controller
}

// NewSession creates a session positioned at the stored progress.
// progress may be nil. Stored indexes outside the level list start over at 0.
func NewSession(lvls []levels.Level, progress ProgressStore, cfg config.GameConfig, opts ...Option) (*Session, error) {
	if len(lvls) == 0 {
		return nil, errors.New("game: no levels")
	}

	s := &Session{
		levels:   lvls,
		cfg:      cfg,
		progress: progress,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	start := 0
	if progress != nil {
		start = progress.LoadProgress()
	}
	if start < 0 || start >= len(lvls) {
		s.logger.Debug("stored level out of range, starting over", "level", start, "total", len(lvls))
		start = 0
	}

	if err := s.Start(start); err != nil {
		return nil, err
	}
	return s, nil
}

// Start loads the level at index with a fresh controller.
func (s *Session) Start(index int) error {
	if index < 0 || index >= len(s.levels) {
		return fmt.Errorf("game: level %d out of range [1, %d]", index+1, len(s.levels))
	}

	lvl := s.levels[index]
	rule, err := registry.Resolve(lvl.Logic)
	if err != nil {
		s.logger.Warn("unknown level logic", "level", lvl.ID, "logic", lvl.Logic, "err", err)
	}

	s.index = index
	s.ctrl = NewController(rule, lvl.TargetOr(s.cfg.TargetWord), s)
	s.logger.Debug("level started", "level", lvl.ID, "index", index, "rule", rule.Name())
	return nil
}

// Next moves to the following level, wrapping to the first after the last.
func (s *Session) Next() {
	// Start cannot fail for an in-range index.
	_ = s.Start((s.index + 1) % len(s.levels))
}

// Restart replays the current level from scratch.
func (s *Session) Restart() {
	_ = s.Start(s.index)
}

// HasNext reports whether a level follows the current one.
func (s *Session) HasNext() bool { return s.index+1 < len(s.levels) }

// Level returns the current level.
func (s *Session) Level() levels.Level { return s.levels[s.index] }

// Levels returns the full level list.
func (s *Session) Levels() []levels.Level { return s.levels }

// Index returns the 0-based index of the current level.
func (s *Session) Index() int { return s.index }

// Total returns the number of levels.
func (s *Session) Total() int { return len(s.levels) }

// Controller returns the controller of the current level.
func (s *Session) Controller() *Controller { return s.ctrl }

// Config returns the game configuration.
func (s *Session) Config() config.GameConfig { return s.cfg }

// BufferChanged implements Listener.
func (s *Session) BufferChanged(buf []rune) {
	if s.listener != nil {
		s.listener.BufferChanged(buf)
	}
}

// LevelWon implements Listener. Progress only advances when another level
// exists, so finishing the last level leaves the saved index in place.
func (s *Session) LevelWon() {
	lvl := s.Level()
	s.logger.Info("level won", "level", lvl.ID)

	if s.recorder != nil {
		s.recorder.RecordAttempt(lvl.ID, s.index, s.ctrl.Word(), true)
	}
	if s.progress != nil && s.HasNext() {
		s.progress.SaveProgress(s.index + 1)
	}
	if s.listener != nil {
		s.listener.LevelWon()
	}
}

// LevelLost implements Listener.
func (s *Session) LevelLost(attempt string) {
	lvl := s.Level()
	s.logger.Debug("wrong answer", "level", lvl.ID, "attempt", attempt)

	if s.recorder != nil {
		s.recorder.RecordAttempt(lvl.ID, s.index, attempt, false)
	}
	if s.listener != nil {
		s.listener.LevelLost(attempt)
	}
}
