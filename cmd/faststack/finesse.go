package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/faststack/internal/engine"
)

var flagRotation int

var finesseCmd = &cobra.Command{
	Use:   "finesse <piece>",
	Short: "Show the minimal key presses for each column",
	Long: `Print how many rotation and movement presses are needed to place a
piece at every column of a 10-wide field. Columns are the left edge of
the piece's bounding box, as used by the finesse counter.

Examples:
  faststack finesse T
  faststack finesse i --rotation 90`,
	Args: cobra.ExactArgs(1),
	RunE: runFinesse,
}

func init() {
	finesseCmd.Flags().IntVar(&flagRotation, "rotation", -1, "Final rotation in degrees (0, 90, 180, 270); all when not set")
}

func runFinesse(cmd *cobra.Command, args []string) error {
	piece, err := engine.ParsePieceType(args[0])
	if err != nil {
		return err
	}

	thetas := []engine.Theta{engine.R0, engine.R90, engine.R180, engine.R270}
	if cmd.Flags().Changed("rotation") {
		theta, err := engine.ThetaFromDegrees(flagRotation)
		if err != nil {
			return err
		}
		thetas = []engine.Theta{theta}
	}

	fmt.Printf("Finesse - %s piece\n", piece)
	for _, theta := range thetas {
		fmt.Println()
		fmt.Printf("  %s\n", theta)
		fmt.Printf("  %-6s  %-9s  %-9s  %s\n", "Column", "Rotations", "Movements", "Total")
		for _, x := range engine.FinesseColumns(piece, theta) {
			rot, mov := engine.MinimalMovesRequired(piece, theta, x)
			fmt.Printf("  %-6d  %-9d  %-9d  %d\n", x, rot, mov, rot+mov)
		}
	}
	return nil
}
