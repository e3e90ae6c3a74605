// faststack is a practice-oriented falling block game for the terminal.
//
// Usage:
//
//	faststack list                   - List available modes
//	faststack play [mode]            - Play a mode, or pick one from the menu
//	faststack replay <file>          - Watch or verify a recorded game
//	faststack scores [mode]          - Show best times
//	faststack finesse <piece>        - Print minimal key presses per column
//	faststack config                 - Print the active configuration
//	faststack serve                  - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.faststack/faststack.yaml)
//	--db <path>         - Override the hiscore database path
//	--log-level <level> - Override the log level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "faststack",
	Short: "faststack - a falling block trainer for your terminal",
	Long: `faststack is a deterministic falling block game built for speed
practice: sprints, finesse tracking and replays.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly, or open the menu
  replay   - Watch or verify a replay file
  scores   - View best times
  finesse  - Show finesse tables for a piece
  config   - Print the active configuration
  serve    - Start SSH server for remote play

Examples:
  faststack list
  faststack play sprint
  faststack play sprint --seed 42
  faststack replay ~/.faststack/replays/40_52.317_2026-03-01_12-00-00.yaml
  faststack scores sprint
  faststack serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to hiscore database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(finesseCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
