// Package config provides YAML-based game configuration loading for
// Mystery Keyboard.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/vovakirdan/mystery-keyboard/internal/core"
)

// ErrInvalidConfig wraps configuration validation failures.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// GameConfig contains all tunable game settings.
type GameConfig struct {
	TargetWord    string         `yaml:"target_word"`
	ResetProgress bool           `yaml:"reset_progress"`
	ShowHints     bool           `yaml:"show_hints"`
	Feedback      FeedbackConfig `yaml:"feedback"`
	Timing        TimingConfig   `yaml:"timing"`
	Keyboard      KeyboardConfig `yaml:"keyboard"`
	Palette       PaletteConfig  `yaml:"palette"`
}

// FeedbackConfig holds the messages shown to the player.
type FeedbackConfig struct {
	PressAgain  string `yaml:"press_again"`
	InvalidIcon string `yaml:"invalid_icon"`
	Wrong       string `yaml:"wrong"`
	Win         string `yaml:"win"`
}

// Message returns the text for a rule feedback kind. FeedbackNone maps to "".
func (f FeedbackConfig) Message(fb core.Feedback) string {
	switch fb {
	case core.FeedbackPressAgain:
		return f.PressAgain
	case core.FeedbackInvalidIcon:
		return f.InvalidIcon
	default:
		return ""
	}
}

// TimingConfig defines presentation delays in milliseconds.
type TimingConfig struct {
	WrongDelayMS int `yaml:"wrong_delay_ms"` // Shake before the buffer is cleared
	WinDelayMS   int `yaml:"win_delay_ms"`   // Pause before the win screen
	FlashMS      int `yaml:"flash_ms"`       // Key press highlight
}

func (t TimingConfig) WrongDelay() time.Duration { return ms(t.WrongDelayMS) }
func (t TimingConfig) WinDelay() time.Duration   { return ms(t.WinDelayMS) }
func (t TimingConfig) Flash() time.Duration      { return ms(t.FlashMS) }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// KeyboardConfig describes the letter keyboard. Each row is a string of keys.
type KeyboardConfig struct {
	Rows []string `yaml:"rows"`
}

// Keys returns the rows split into single-letter key identifiers.
func (k KeyboardConfig) Keys() [][]string {
	out := make([][]string, 0, len(k.Rows))
	for _, row := range k.Rows {
		keys := make([]string, 0, len(row))
		for _, r := range row {
			keys = append(keys, string(r))
		}
		out = append(out, keys)
	}
	return out
}

// PaletteConfig holds terminal colors (hex or ANSI codes).
type PaletteConfig struct {
	Background  string `yaml:"background"`
	Key         string `yaml:"key"`
	KeyText     string `yaml:"key_text"`
	KeyFocus    string `yaml:"key_focus"`
	KeyDisabled string `yaml:"key_disabled"`
	Cell        string `yaml:"cell"`
	CellBorder  string `yaml:"cell_border"`
	CellText    string `yaml:"cell_text"`
	Primary     string `yaml:"primary"`
	Error       string `yaml:"error"`
	Success     string `yaml:"success"`
}

// Validate checks values that would break the game.
func (c *GameConfig) Validate() error {
	if c.TargetWord == "" {
		return fmt.Errorf("%w: empty target_word", ErrInvalidConfig)
	}
	for _, r := range c.TargetWord {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%w: target_word %q contains non-letter %q", ErrInvalidConfig, c.TargetWord, r)
		}
	}
	if len(c.Keyboard.Rows) == 0 {
		return fmt.Errorf("%w: keyboard.rows is empty", ErrInvalidConfig)
	}
	for i, row := range c.Keyboard.Rows {
		if strings.TrimSpace(row) == "" {
			return fmt.Errorf("%w: keyboard row %d has no keys", ErrInvalidConfig, i+1)
		}
	}
	if c.Timing.WrongDelayMS < 0 || c.Timing.WinDelayMS < 0 || c.Timing.FlashMS < 0 {
		return fmt.Errorf("%w: negative timing value", ErrInvalidConfig)
	}
	return nil
}

// normalize uppercases the target word and keyboard rows.
func (c *GameConfig) normalize() {
	c.TargetWord = strings.ToUpper(strings.TrimSpace(c.TargetWord))
	for i, row := range c.Keyboard.Rows {
		c.Keyboard.Rows[i] = strings.ToUpper(strings.ReplaceAll(row, " ", ""))
	}
}
