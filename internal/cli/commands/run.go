package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/klocke7-ford/pesterun/internal/config"
	"github.com/klocke7-ford/pesterun/internal/domain"
	"github.com/klocke7-ford/pesterun/internal/invoke"
	"github.com/klocke7-ford/pesterun/internal/pester"
	"github.com/klocke7-ford/pesterun/internal/proto"
	"github.com/klocke7-ford/pesterun/internal/storage"
	"github.com/klocke7-ford/pesterun/internal/ui"
)

// RunCommand handles the run command: the full locate → configure →
// invoke → report pipeline.
type RunCommand struct {
	config    *config.Config
	builder   *invoke.Builder
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	builder *invoke.Builder,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		builder:   builder,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	machine := rc.machineMode()

	params, err := rc.gatherParams()
	if err != nil {
		return rc.fail(cmd, machine, err)
	}

	constraint, err := pester.ParseConstraint(params.RequiredVersion, params.MinimumVersion)
	if err != nil {
		return rc.fail(cmd, machine, err)
	}
	if err := proto.Validate(&params); err != nil {
		return rc.fail(cmd, machine, err)
	}

	locator := pester.NewLocator(rc.config.ModulePaths)
	installs, err := locator.Discover()
	if err != nil {
		return rc.fail(cmd, machine, err)
	}
	install, err := constraint.Select(installs)
	if err != nil {
		return rc.fail(cmd, machine, err)
	}
	slog.Info("selected Pester install", "version", install.Version, "path", install.Path)

	script, err := rc.builder.Build(params, install)
	if err != nil {
		return rc.fail(cmd, machine, err)
	}
	runner := invoke.NewRunner(rc.config.Shell)

	var spinner *ui.Spinner
	var spinnerDone chan struct{}
	if !machine {
		spinner = ui.NewSpinner(params.Path)
		spinnerDone = make(chan struct{})
		go func() {
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-spinnerDone:
					return
				case <-ticker.C:
					spinner.Tick()
				}
			}
		}()
	}

	envelope, err := runner.Run(cmd.Context(), script)
	if spinner != nil {
		close(spinnerDone)
		spinner.Finish()
	}
	if err != nil {
		return rc.fail(cmd, machine, err)
	}

	result := domain.RunResult{
		Changed:           true,
		PesterVersionUsed: envelope.Version,
		Output:            invoke.Bound(envelope.Output, params.PassThruDepth),
		Failures:          envelope.Failures,
	}
	report := &domain.RunReport{
		Meta: domain.RunMeta{
			Path:            params.Path,
			VersionUsed:     envelope.Version,
			TotalTests:      envelope.Total,
			PassedTests:     envelope.Passed,
			FailedTests:     envelope.Failed,
			SkippedTests:    envelope.Skipped,
			DurationSeconds: envelope.DurationSeconds,
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
		},
		Result: result,
	}

	if err := rc.storage.Save(report); err != nil {
		return rc.fail(cmd, machine, fmt.Errorf("failed to save run report: %w", err))
	}
	rc.recordHistory(cmd, report)

	if machine {
		return proto.WriteResult(cmd.OutOrStdout(), result)
	}

	rc.formatter.PrintRunSummary(report)
	if report.Meta.FailedTests > 0 {
		return fmt.Errorf("%d test(s) failed", report.Meta.FailedTests)
	}
	return nil
}

// machineMode reports whether the host protocol is in effect: an args
// document was supplied or JSON output was requested.
func (rc *RunCommand) machineMode() bool {
	return rc.config.Flags.ArgsFile != "" || rc.config.Flags.JSONOutput
}

// gatherParams builds the parameter set from the args document or flags.
func (rc *RunCommand) gatherParams() (domain.RunParams, error) {
	flags := rc.config.Flags
	if flags.ArgsFile != "" {
		return proto.LoadParams(flags.ArgsFile, os.Stdin)
	}

	params := domain.RunParams{
		Path:               flags.Path,
		PathExclude:        flags.PathExclude,
		TagsInclude:        flags.TagsInclude,
		TagsExclude:        flags.TagsExclude,
		TestResultsEnabled: flags.TestResultsEnabled,
		OutputFile:         flags.OutputFile,
		OutputFormat:       flags.OutputFormat,
		OutputEncoding:     flags.OutputEncoding,
		RequiredVersion:    flags.RequiredVersion,
		MinimumVersion:     flags.MinimumVersion,
		PassThruDepth:      flags.PassThruDepth,
	}
	if len(flags.TestParameters) > 0 {
		params.TestParameters = make(map[string]any, len(flags.TestParameters))
		for k, v := range flags.TestParameters {
			params.TestParameters[k] = v
		}
	}
	return params, nil
}

// recordHistory appends the run to the history database. History is an
// observability extra: failures are logged, never fatal.
func (rc *RunCommand) recordHistory(cmd *cobra.Command, report *domain.RunReport) {
	history, err := storage.OpenHistory(rc.config.GetHistoryDBPath())
	if err != nil {
		slog.Warn("cannot open run history", "error", err)
		return
	}
	defer history.Close()

	if err := history.Record(cmd.Context(), report.Meta, rc.config.GetResultPath()); err != nil {
		slog.Warn("cannot record run history", "error", err)
	}
}

// fail reports a module-level failure: the failure document in machine
// mode, a plain error otherwise.
func (rc *RunCommand) fail(cmd *cobra.Command, machine bool, err error) error {
	if machine {
		if werr := proto.WriteFailure(cmd.OutOrStdout(), err.Error()); werr != nil {
			return werr
		}
		return ErrReported
	}
	return err
}
