package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/faststack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the active configuration",
	Long: `Print the configuration faststack would run with, after the config
file, FASTSTACK_* environment variables and global flags are applied.
The output is valid input for --config.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
