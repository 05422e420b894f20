package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mystery-keyboard/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows the levels in play order with the keyboard rule each one uses.`,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	lvls, _, err := loadGame()
	if err != nil {
		return err
	}

	// Calculate column widths
	maxIDLen, maxLogicLen := 2, 5 // "ID", "Logic" headers
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxLogicLen = max(maxLogicLen, len(l.Logic))
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-*s  %-8s  %s\n", "#", maxIDLen, "ID", maxLogicLen, "Logic", "Keyboard", "Name")
	fmt.Printf("  %-3s  %-*s  %-*s  %-8s  %s\n", "-", maxIDLen, "--", maxLogicLen, "-----", "--------", "----")

	for i, l := range lvls {
		logic := l.Logic
		if !registry.Exists(logic) {
			logic += "?"
		}
		fmt.Printf("  %-3d  %-*s  %-*s  %-8s  %s\n", i+1, maxIDLen, l.ID, maxLogicLen, logic, l.Keyboard, l.Title())
	}

	fmt.Println()
	fmt.Println("Run 'keyboard play <#|id>' to start at a level.")
	return nil
}
