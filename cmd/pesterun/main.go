package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klocke7-ford/pesterun/internal/cli"
	"github.com/klocke7-ford/pesterun/internal/cli/commands"
	"github.com/klocke7-ford/pesterun/internal/config"
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "pesterun",
		Short:         "Pester invocation wrapper",
		Long:          `A thin invocation wrapper around the Pester test framework: locate an installed Pester module of a required or minimum version, run it against a path, and report the captured result back in a structured form.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)
	rootCmd.AddCommand(newVersionCmd())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, commands.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
