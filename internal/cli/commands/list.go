package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/klocke7-ford/pesterun/internal/config"
	"github.com/klocke7-ford/pesterun/internal/pester"
	"github.com/klocke7-ford/pesterun/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	constraint, err := pester.ParseConstraint(
		lc.config.Flags.RequiredVersion, lc.config.Flags.MinimumVersion)
	if err != nil {
		return err
	}

	installs, err := pester.NewLocator(lc.config.ModulePaths).Discover()
	if err != nil {
		return err
	}

	filtered := installs[:0:0]
	for _, in := range installs {
		if constraint.Satisfies(in.Version) {
			filtered = append(filtered, in)
		}
	}

	if lc.config.Flags.JSONOutput {
		type entry struct {
			Version string `json:"version"`
			Path    string `json:"path"`
		}
		entries := make([]entry, len(filtered))
		for i, in := range filtered {
			entries[i] = entry{Version: in.Version.String(), Path: in.Path}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	lc.formatter.PrintInstallList(filtered)
	return nil
}
