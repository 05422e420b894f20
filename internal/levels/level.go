// Package levels loads and validates Mystery Keyboard level definitions.
// The core never reads level files directly; it receives Level values.
package levels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidLevels wraps every validation failure of a level set.
var ErrInvalidLevels = errors.New("levels: invalid level data")

// KeyboardType selects the on-screen keyboard layout of a level.
type KeyboardType string

const (
	KeyboardQwerty KeyboardType = "qwerty"
	KeyboardIcons  KeyboardType = "icons"
)

// Level is an immutable level descriptor.
type Level struct {
	ID          string
	Name        string
	Logic       string
	Keyboard    KeyboardType
	Icons       []string
	Instruction string
	Hint        string
	Target      string // Optional override of the configured target word
	FilePath    string // Source file, empty for the embedded set
}

// TargetOr returns the level's own target word, or def when the level does
// not override it. The result is uppercased.
func (l Level) TargetOr(def string) string {
	if l.Target != "" {
		return strings.ToUpper(l.Target)
	}
	return strings.ToUpper(def)
}

// Title returns the display name, falling back to the ID.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Validate checks a complete level set.
func Validate(lvls []Level) error {
	if len(lvls) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalidLevels)
	}
	seen := make(map[string]int, len(lvls))
	for i, l := range lvls {
		if err := l.validate(); err != nil {
			return fmt.Errorf("%w: level %d (%s): %v", ErrInvalidLevels, i+1, l.ID, err)
		}
		if prev, dup := seen[l.ID]; dup {
			return fmt.Errorf("%w: level %d: duplicate id %q (first at %d)", ErrInvalidLevels, i+1, l.ID, prev+1)
		}
		seen[l.ID] = i
	}
	return nil
}

func (l Level) validate() error {
	if l.ID == "" {
		return errors.New("missing id")
	}
	if l.Logic == "" {
		return errors.New("missing logic")
	}
	switch l.Keyboard {
	case KeyboardQwerty:
	case KeyboardIcons:
		if len(l.Icons) == 0 {
			return errors.New("icons keyboard without icons")
		}
		for _, icon := range l.Icons {
			if icon == "" {
				return errors.New("empty icon identifier")
			}
		}
	default:
		return fmt.Errorf("unknown keyboard type %q", l.Keyboard)
	}
	for _, r := range l.Target {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("target %q contains non-letter %q", l.Target, r)
		}
	}
	return nil
}

// Lookup finds a level by ID or by 1-based position ("3").
// It returns the 0-based index.
func Lookup(lvls []Level, ref string) (int, bool) {
	for i, l := range lvls {
		if l.ID == ref {
			return i, true
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(lvls) {
		return n - 1, true
	}
	return 0, false
}
