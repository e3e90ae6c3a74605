package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/faststack/internal/engine"
	"github.com/vovakirdan/faststack/internal/platform/tui"
	"github.com/vovakirdan/faststack/internal/random"
	"github.com/vovakirdan/faststack/internal/registry"
)

var (
	flagSeed     uint32
	flagGoal     int
	flagNoReplay bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode. Without a mode the menu opens.

Controls (default bindings, see 'faststack config'):
  Left/Right  - Move
  Down        - Soft drop
  Space       - Hard drop
  Z/X/A       - Rotate left/right/180
  C           - Hold
  R           - Restart
  Q/Esc       - Quit

A replay of every finished game is written to the replay directory.

Examples:
  faststack play
  faststack play sprint
  faststack play sprint --seed 42
  faststack play practice --no-replay`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Uint32Var(&flagSeed, "seed", 0, "Piece sequence seed (random when not set)")
	playCmd.Flags().IntVar(&flagGoal, "goal", -1, "Lines to clear, 0 for endless (mode default when not set)")
	playCmd.Flags().BoolVar(&flagNoReplay, "no-replay", false, "Do not write replay files")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown mode %q, run 'faststack list' to see available modes", args[0])
	}

	env, cleanup, err := newEnv(true)
	if err != nil {
		return err
	}
	defer cleanup()
	env.NoReplay = flagNoReplay

	if len(args) == 0 {
		return tui.RunSession(env)
	}

	mode, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	opts := mode.Options(env.Config.Options)
	if cmd.Flags().Changed("goal") {
		opts.Goal = flagGoal
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	checkTerminal(opts)

	useFixed := cmd.Flags().Changed("seed")
	seed, err := random.Resolve(flagSeed, useFixed, nil)
	if err != nil {
		return err
	}

	env.Logger.Info("game started", "mode", mode.ID, "seed", seed, "fixed", useFixed)
	return tui.Run(env, tui.GameSetup{
		Mode:      mode,
		Options:   opts,
		Seed:      seed,
		FixedSeed: useFixed,
	})
}

// checkTerminal warns when the terminal is too small for the board.
func checkTerminal(opts engine.Options) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return
	}
	needW, needH := tui.MinTerminalSize(opts)
	if w < needW || h < needH {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the board needs %dx%d\n", w, h, needW, needH)
	}
}
