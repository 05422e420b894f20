// keyboard is a word puzzle played on a keyboard that does not behave.
//
// Every level has the same goal: type the target word. Each level swaps in
// a different keyboard rule (keys that only work every other press, a
// keyboard that shifts letters, one that fills the answer backwards, a
// keyboard of pictures) and the player has to work out what changed.
//
// Usage:
//
//	keyboard levels             - List levels
//	keyboard play [level]       - Play in the terminal
//	keyboard serve              - Start SSH server for remote play
//	keyboard http               - Start the JSON API
//	keyboard progress           - Show saved progress and per-level stats
//
// Global flags:
//
//	--db <path>         - Progress database (default: ~/.mystery-keyboard/progress.db)
//	--levels <path>     - Level file or directory
//	--config <path>     - Game config YAML
//	--log-level <lvl>   - debug, info, warn, error
//
// A .env file in the working directory is loaded before flags are read.
// KEYBOARD_DB and KEYBOARD_RESET_PROGRESS override the database path and
// the reset_progress setting.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register keyboard rules
	_ "github.com/vovakirdan/mystery-keyboard/internal/rules"
)

var (
	// Global flags
	flagDBPath     string
	flagLevelsPath string
	flagConfigPath string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "keyboard",
	Short: "Mystery Keyboard - type the word, if the keyboard lets you",
	Long: `Mystery Keyboard is a terminal word puzzle. Each level changes how the
keyboard behaves; find the rule and type the target word.

Available commands:
  levels    - Show all levels
  play      - Play in the terminal
  serve     - Start SSH server for remote play
  http      - Start the JSON API
  progress  - Show saved progress

Examples:
  keyboard levels
  keyboard play
  keyboard play 4
  keyboard play --pick
  keyboard serve --ssh :23235
  keyboard http --addr :5180
  keyboard progress --reset`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mystery-keyboard/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsPath, "levels", "", "Level YAML file or directory (default: search path, then built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Game config YAML (default: search path, then built-in config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(httpCmd)
	rootCmd.AddCommand(progressCmd)
}
