package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klocke7-ford/pesterun/internal/config"
	"github.com/klocke7-ford/pesterun/internal/report"
	"github.com/klocke7-ford/pesterun/internal/storage"
)

// ReportCommand handles the report command
type ReportCommand struct {
	config  *config.Config
	storage storage.Storage
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(cfg *config.Config, st storage.Storage) *ReportCommand {
	return &ReportCommand{
		config:  cfg,
		storage: st,
	}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	saved, err := rc.storage.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rc.config.Flags.ReportFile != "" {
		f, err := os.Create(rc.config.Flags.ReportFile)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return report.NewMarkdownWriter(out).Write(saved)
}
