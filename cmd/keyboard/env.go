package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mystery-keyboard/internal/config"
	"github.com/vovakirdan/mystery-keyboard/internal/core"
	"github.com/vovakirdan/mystery-keyboard/internal/levels"
	"github.com/vovakirdan/mystery-keyboard/internal/storage"
)

// logger is shared by every command. setup configures its level.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "keyboard",
})

// setup loads .env and applies environment overrides for flags the user
// did not set explicitly.
func setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	if v := os.Getenv("KEYBOARD_DB"); v != "" && !cmd.Flags().Changed("db") {
		flagDBPath = v
	}
	if v := os.Getenv("KEYBOARD_LOG_LEVEL"); v != "" && !cmd.Flags().Changed("log-level") {
		flagLogLevel = v
	}

	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(lvl)
	return nil
}

// loadGame reads the level set and the game config. KEYBOARD_RESET_PROGRESS
// overrides the config's reset_progress.
func loadGame() ([]levels.Level, config.GameConfig, error) {
	lvls, err := levels.Load(flagLevelsPath)
	if err != nil {
		return nil, config.GameConfig{}, err
	}

	cfg, err := config.LoadGame(flagConfigPath)
	if err != nil {
		return nil, config.GameConfig{}, err
	}

	if v := os.Getenv("KEYBOARD_RESET_PROGRESS"); v != "" {
		reset, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			return nil, config.GameConfig{}, fmt.Errorf("invalid KEYBOARD_RESET_PROGRESS %q: %w", v, parseErr)
		}
		cfg.ResetProgress = reset
	}

	logger.Debug("game loaded", "levels", len(lvls), "target", cfg.TargetWord, "reset", cfg.ResetProgress)
	return lvls, cfg, nil
}

// openStore opens the progress database. A failure is logged and nil is
// returned: the game is playable without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("progress database unavailable, progress will not be saved", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// newProgress adapts store for a game session. store may be nil.
func newProgress(store *storage.Store, reset bool) *storage.Progress {
	if store == nil {
		return storage.NewProgress(nil, false, logger)
	}
	return storage.NewProgress(store, reset, logger)
}

// terminalConfig returns the current terminal size, 80x24 when unknown.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}
