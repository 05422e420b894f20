package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mystery-keyboard/internal/game"
	"github.com/vovakirdan/mystery-keyboard/internal/levels"
	"github.com/vovakirdan/mystery-keyboard/internal/platform/tui"
)

var (
	flagPick    bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play in the terminal",
	Long: `Start playing at the saved level, or at the given level number or id.

Controls:
  Letters        - Type on letter keyboards
  1-9            - Press an icon on picture keyboards
  Arrows         - Move between keys
  Enter/Space    - Press the focused key
  Backspace      - Remove the last letter
  Ctrl+R         - Restart the level
  Enter/N        - Next level (after a win)
  Tab            - Toggle help
  Esc            - Back to the level list (with --pick)
  Ctrl+C         - Quit

Examples:
  keyboard play
  keyboard play 7
  keyboard play lvl03
  keyboard play --pick
  keyboard play --levels ./my-levels/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Start with the level picker")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

func runPlay(_ *cobra.Command, args []string) error {
	lvls, cfg, err := loadGame()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; keep logs off it.
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	progress := newProgress(store, cfg.ResetProgress)

	session, err := game.NewSession(lvls, progress, cfg,
		game.WithLogger(logger),
		game.WithRecorder(progress),
	)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		idx, ok := levels.Lookup(lvls, args[0])
		if !ok {
			return fmt.Errorf("unknown level %q (run 'keyboard levels')", args[0])
		}
		if err := session.Start(idx); err != nil {
			return err
		}
	}

	return tui.Run(session, terminalConfig(), flagPick)
}
