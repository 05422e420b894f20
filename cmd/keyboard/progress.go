package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mystery-keyboard/internal/platform/tui"
	"github.com/vovakirdan/mystery-keyboard/internal/storage"
)

var (
	flagReset bool
	flagPlain bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved progress",
	Long: `Display the level you will resume at and per-level attempt counts.

An interactive table is shown when stdout is a terminal; use --plain for
text output.

Examples:
  keyboard progress
  keyboard progress --plain
  keyboard progress --reset`,
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear saved progress before showing it")
	progressCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive table")
}

func runProgress(_ *cobra.Command, _ []string) error {
	lvls, _, err := loadGame()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagReset {
		if err := store.ClearProgress(); err != nil {
			return err
		}
		fmt.Println("Progress cleared.")
	}

	report, err := tui.BuildProgressReport(store, lvls)
	if err != nil {
		return err
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		cfg := terminalConfig()
		return tui.RunProgress(report, len(lvls), cfg.ScreenW, cfg.ScreenH)
	}

	fmt.Println(tui.ProgressSummary(report, len(lvls)))
	fmt.Println()
	fmt.Printf("  %-1s %-3s  %-24s  %-24s  %-6s  %-5s  %s\n", "", "#", "Level", "Rule", "Tries", "Wins", "Last")
	fmt.Printf("  %-1s %-3s  %-24s  %-24s  %-6s  %-5s  %s\n", "", "-", "-----", "----", "-----", "----", "----")
	for _, row := range report.Rows {
		fmt.Printf("  %-1s %-3s  %-24s  %-24s  %-6s  %-5s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}
	return nil
}
