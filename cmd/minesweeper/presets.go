package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List board presets",
	Long:  `Shows the board presets from the built-in defaults and your config file.`,
	Args:  cobra.NoArgs,
	Run:   runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	names := appConfig.PresetNames()

	if len(names) == 0 {
		fmt.Println("No presets configured.")
		return
	}

	fmt.Println("Board presets:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, name := range names {
		maxNameLen = max(maxNameLen, len(name))
	}

	fmt.Printf("    %-*s  %5s  %5s  %5s\n", maxNameLen, "Name", "Rows", "Cols", "Mines")
	fmt.Printf("    %-*s  %5s  %5s  %5s\n", maxNameLen, "----", "----", "----", "-----")

	for _, name := range names {
		p := appConfig.Presets[name]
		marker := "  "
		if name == appConfig.Difficulty {
			marker = "* "
		}
		fmt.Printf("  %s%-*s  %5d  %5d  %5d\n", marker, maxNameLen, name, p.Rows, p.Cols, p.Mines)
	}

	fmt.Println()
	fmt.Println("* default. Run 'minesweeper play --difficulty <name>' to play one,")
	fmt.Println("or 'minesweeper play --rows R --cols C --mines M' for a custom board.")
}
