package commands

import (
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klocke7-ford/pesterun/internal/config"
	"github.com/klocke7-ford/pesterun/internal/domain"
	"github.com/klocke7-ford/pesterun/internal/storage"
	"github.com/klocke7-ford/pesterun/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute lists recorded runs
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	history, err := storage.OpenHistory(hc.config.GetHistoryDBPath())
	if err != nil {
		return err
	}
	defer history.Close()

	records, err := history.List(cmd.Context(), hc.config.Flags.HistoryLimit)
	if err != nil {
		return err
	}

	if hc.config.Flags.JSONOutput {
		if records == nil {
			records = []domain.RunRecord{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	hc.formatter.PrintHistory(records)
	return nil
}

// ExecuteClear deletes all recorded runs
func (hc *HistoryCommand) ExecuteClear(cmd *cobra.Command, args []string) error {
	history, err := storage.OpenHistory(hc.config.GetHistoryDBPath())
	if err != nil {
		return err
	}
	defer history.Close()

	if err := history.Clear(cmd.Context()); err != nil {
		return err
	}
	color.Green("Run history cleared")
	return nil
}
