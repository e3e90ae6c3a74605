package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/faststack/internal/platform/tui"
	"github.com/vovakirdan/faststack/internal/registry"
	"github.com/vovakirdan/faststack/internal/replay"
)

var flagVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Watch or verify a recorded game",
	Long: `Play back a replay file written by a finished game.

With --verify the replay is run without a display and its outcome is
checked against the result stored in the file.

Examples:
  faststack replay game.yaml
  faststack replay game.yaml --verify`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Check the replay without displaying it")
}

func runReplay(cmd *cobra.Command, args []string) error {
	r, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	if flagVerify {
		return verifyReplay(r)
	}

	env, cleanup, err := newEnv(true)
	if err != nil {
		return err
	}
	defer cleanup()

	mode, err := registry.Get(r.Mode)
	if err != nil {
		// Replays of unknown modes still play back with their own options.
		mode = registry.Mode{ID: r.Mode, Title: r.Mode}
	}
	checkTerminal(r.Options)

	return tui.Run(env, tui.GameSetup{Mode: mode, Replay: r})
}

func verifyReplay(r *replay.Replay) error {
	e, err := replay.Verify(r)
	if err != nil && !errors.Is(err, replay.ErrMismatch) {
		return err
	}

	stats := e.Stats()
	fmt.Printf("Mode:     %s (seed %d)\n", r.Mode, r.Seed)
	fmt.Printf("Recorded: %s\n", r.RecordedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Time:     %s\n", tui.FormatTime(e.ElapsedMs()))
	fmt.Printf("Lines:    %d\n", stats.LinesCleared)
	fmt.Printf("Pieces:   %d\n", stats.BlocksPlaced)
	fmt.Printf("Keys:     %d\n", stats.KeysPressed)
	fmt.Printf("Finesse:  %d\n", stats.Finesse)
	fmt.Println()

	if err != nil {
		return err
	}
	fmt.Println("Replay verified.")
	return nil
}
