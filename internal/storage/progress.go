package storage

import (
	"sync"

	"github.com/charmbracelet/log"
)

// progressBackend is the subset of Store used by Progress.
type progressBackend interface {
	LoadProgress() (int, error)
	SaveProgress(level int) error
	ClearProgress() error
	RecordAttempt(a Attempt) (int64, error)
}

// Progress adapts a Store to the game session. It never returns errors:
// read failures fall back to the first level and write failures are
// logged and skipped, so a broken database never stops play.
type Progress struct {
	backend progressBackend
	logger  *log.Logger

	reset     bool
	resetOnce sync.Once
}

// NewProgress wraps backend. When reset is set, the first LoadProgress
// clears the stored progress and returns 0. logger may be nil.
func NewProgress(backend progressBackend, reset bool, logger *log.Logger) *Progress {
	if logger == nil {
		logger = log.Default()
	}
	return &Progress{backend: backend, reset: reset, logger: logger}
}

// LoadProgress returns the saved level index, or 0 on any failure.
func (p *Progress) LoadProgress() int {
	if p.backend == nil {
		return 0
	}

	if p.reset {
		cleared := false
		p.resetOnce.Do(func() {
			cleared = true
			if err := p.backend.ClearProgress(); err != nil {
				p.logger.Warn("progress reset failed", "err", err)
			}
		})
		if cleared {
			return 0
		}
	}

	level, err := p.backend.LoadProgress()
	if err != nil {
		p.logger.Debug("progress unavailable, starting at first level", "err", err)
		return 0
	}
	if level < 0 {
		return 0
	}
	return level
}

// SaveProgress stores level. Failures are logged.
func (p *Progress) SaveProgress(level int) {
	if p.backend == nil {
		return
	}
	if err := p.backend.SaveProgress(level); err != nil {
		p.logger.Warn("progress not saved", "level", level, "err", err)
	}
}

// RecordAttempt stores a judged answer. Failures are logged.
func (p *Progress) RecordAttempt(levelID string, levelIndex int, word string, won bool) {
	if p.backend == nil {
		return
	}
	_, err := p.backend.RecordAttempt(Attempt{
		LevelID:    levelID,
		LevelIndex: levelIndex,
		Word:       word,
		Won:        won,
	})
	if err != nil {
		p.logger.Warn("attempt not recorded", "level", levelID, "err", err)
	}
}
