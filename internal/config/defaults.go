package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the hard-coded configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		TargetWord: "POKI",
		Feedback: FeedbackConfig{
			PressAgain:  "Press again",
			InvalidIcon: "Invalid icon",
			Wrong:       "Not quite. Try again!",
			Win:         "Level complete!",
		},
		Timing: TimingConfig{
			WrongDelayMS: 500,
			WinDelayMS:   300,
			FlashMS:      100,
		},
		Keyboard: KeyboardConfig{
			Rows: []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"},
		},
		Palette: PaletteConfig{
			Background:  "#d3e8ee",
			Key:         "#ffffff",
			KeyText:     "#333333",
			KeyFocus:    "#e3f2fd",
			KeyDisabled: "#cccccc",
			Cell:        "#ffffff",
			CellBorder:  "#4a90e2",
			CellText:    "#333333",
			Primary:     "#4a90e2",
			Error:       "#e24a4a",
			Success:     "#4ae27a",
		},
	}
}
