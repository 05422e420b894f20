package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/mystery-keyboard/internal/core"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	def := DefaultGameConfig()

	if cfg.TargetWord != def.TargetWord {
		t.Errorf("target: embedded %q, hardcoded %q", cfg.TargetWord, def.TargetWord)
	}
	if cfg.Timing != def.Timing {
		t.Errorf("timing: embedded %+v, hardcoded %+v", cfg.Timing, def.Timing)
	}
	if cfg.Feedback != def.Feedback {
		t.Errorf("feedback: embedded %+v, hardcoded %+v", cfg.Feedback, def.Feedback)
	}
	if cfg.Palette != def.Palette {
		t.Errorf("palette: embedded %+v, hardcoded %+v", cfg.Palette, def.Palette)
	}
	if len(cfg.Keyboard.Rows) != 3 {
		t.Errorf("expected 3 keyboard rows, got %d", len(cfg.Keyboard.Rows))
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("target_word: code\ntiming:\n  flash_ms: 50\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.TargetWord != "CODE" {
		t.Errorf("expected normalized CODE, got %q", cfg.TargetWord)
	}
	if cfg.Timing.Flash() != 50*time.Millisecond {
		t.Errorf("expected 50ms flash, got %v", cfg.Timing.Flash())
	}
	if cfg.Timing.WrongDelay() != 500*time.Millisecond {
		t.Errorf("expected default 500ms wrong delay, got %v", cfg.Timing.WrongDelay())
	}
	if cfg.Feedback.PressAgain != "Press again" {
		t.Errorf("expected default feedback, got %q", cfg.Feedback.PressAgain)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty target", "target_word: \"\"\n"},
		{"digit target", "target_word: P0KI\n"},
		{"no rows", "keyboard:\n  rows: []\n"},
		{"blank row", "keyboard:\n  rows: [\"QWERTYUIOP\", \" \"]\n"},
		{"empty row", "keyboard:\n  rows: [\"\", \"ASDFGHJKL\"]\n"},
		{"negative timing", "timing:\n  win_delay_ms: -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestFeedbackMessage(t *testing.T) {
	f := DefaultGameConfig().Feedback
	tests := []struct {
		fb   core.Feedback
		want string
	}{
		{core.FeedbackNone, ""},
		{core.FeedbackPressAgain, "Press again"},
		{core.FeedbackInvalidIcon, "Invalid icon"},
	}
	for _, tc := range tests {
		if got := f.Message(tc.fb); got != tc.want {
			t.Errorf("Message(%v) = %q, want %q", tc.fb, got, tc.want)
		}
	}
}

func TestKeyboardKeys(t *testing.T) {
	k := KeyboardConfig{Rows: []string{"QW", "A"}}
	keys := k.Keys()
	if len(keys) != 2 || len(keys[0]) != 2 || keys[0][1] != "W" || keys[1][0] != "A" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestLoadGameCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	if err := os.WriteFile(path, []byte("reset_progress: true\nshow_hints: true\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadGame(path)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if !cfg.ResetProgress || !cfg.ShowHints {
		t.Errorf("expected flags from file, got %+v", cfg)
	}
	if cfg.TargetWord != "POKI" {
		t.Errorf("expected default target, got %q", cfg.TargetWord)
	}
}

func TestLoadGameMissingCustomPath(t *testing.T) {
	if _, err := LoadGame(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}
