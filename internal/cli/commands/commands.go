package commands

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klocke7-ford/pesterun/internal/cli"
	"github.com/klocke7-ford/pesterun/internal/config"
	"github.com/klocke7-ford/pesterun/internal/invoke"
	"github.com/klocke7-ford/pesterun/internal/storage"
	"github.com/klocke7-ford/pesterun/internal/ui"
)

// ErrReported signals that the failure document was already written to
// stdout, so main should exit non-zero without printing anything else.
var ErrReported = errors.New("failure already reported")

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	History  *HistoryCommand
	Failures *FailuresCommand
	Report   *ReportCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	builder := invoke.NewBuilder()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	viewer := ui.NewFailureViewer()

	return &Commands{
		Run:      NewRunCommand(cfg, builder, jsonStorage, formatter),
		List:     NewListCommand(cfg, formatter),
		History:  NewHistoryCommand(cfg, formatter),
		Failures: NewFailuresCommand(cfg, jsonStorage, viewer),
		Report:   NewReportCommand(cfg, jsonStorage),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	setup := func(cmd *cobra.Command, args []string) error {
		if err := cfg.Apply(flags.ToConfigFlags()); err != nil {
			return err
		}
		configureLogging(cfg.LogLevel)
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run Pester tests at a path",
		Long:    "Locate an installed Pester module satisfying the version constraint, run it against the given path, and report the captured result.",
		RunE:    c.Run.Execute,
		PreRunE: setup,
	}
	runCmd.Flags().StringVarP(&flags.ArgsFile, "args", "a", "", "Read the parameter document from a JSON file ('-' for stdin) and reply on stdout")
	runCmd.Flags().StringVarP(&flags.Path, "path", "p", "", "Test file (.ps1) or directory to run")
	runCmd.Flags().StringSliceVar(&flags.PathExclude, "path-exclude", nil, "Paths excluded from the run")
	runCmd.Flags().StringSliceVar(&flags.TagsInclude, "tag", nil, "Only run tests with these tags")
	runCmd.Flags().StringSliceVar(&flags.TagsExclude, "exclude-tag", nil, "Skip tests with these tags")
	runCmd.Flags().StringToStringVar(&flags.TestParameters, "test-parameter", nil, "Parameters forwarded to the test scripts (key=value)")
	runCmd.Flags().BoolVar(&flags.TestResultsEnabled, "test-results", false, "Ask the framework for a result file")
	runCmd.Flags().StringVar(&flags.OutputFile, "output-file", "", "Framework result file path")
	runCmd.Flags().StringVar(&flags.OutputFormat, "output-format", "", "Framework result file format (NUnitXml, JUnitXml)")
	runCmd.Flags().StringVar(&flags.OutputEncoding, "output-encoding", "", "Encoding for the result file")
	runCmd.Flags().StringVar(&flags.RequiredVersion, "required-version", "", "Exact Pester version to use")
	runCmd.Flags().StringVar(&flags.MinimumVersion, "minimum-version", "", "Lowest acceptable Pester version")
	runCmd.Flags().IntVar(&flags.PassThruDepth, "pass-thru-depth", 0, "Serialization depth bound for the result object")
	runCmd.Flags().StringSliceVar(&flags.ModulePaths, "module-path", nil, "Module search paths (defaults to PSModulePath)")
	runCmd.Flags().StringVar(&flags.Shell, "shell", "", "PowerShell interpreter binary")
	runCmd.Flags().BoolVar(&flags.JSONOutput, "json", false, "Write the result document to stdout instead of a summary")
	runCmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List installed Pester versions",
		Long:    "Scan the module search paths and list every installed Pester version without running anything.",
		RunE:    c.List.Execute,
		PreRunE: setup,
	}
	listCmd.Flags().StringVar(&flags.RequiredVersion, "required-version", "", "Only show this exact version")
	listCmd.Flags().StringVar(&flags.MinimumVersion, "minimum-version", "", "Only show versions at or above this")
	listCmd.Flags().StringSliceVar(&flags.ModulePaths, "module-path", nil, "Module search paths (defaults to PSModulePath)")
	listCmd.Flags().BoolVar(&flags.JSONOutput, "json", false, "Output JSON instead of a table")
	listCmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(listCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "Show past runs",
		Long:    "List runs recorded in the history database, newest first.",
		RunE:    c.History.Execute,
		PreRunE: setup,
	}
	historyCmd.Flags().IntVarP(&flags.HistoryLimit, "limit", "n", config.DefaultHistoryLimit, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flags.JSONOutput, "json", false, "Output JSON instead of a table")
	historyCmd.AddCommand(&cobra.Command{
		Use:     "clear",
		Short:   "Delete all recorded runs",
		RunE:    c.History.ExecuteClear,
		PreRunE: setup,
	})
	rootCmd.AddCommand(historyCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View last run's failures interactively",
		Long:    "Display the failures of the last saved run in an interactive viewer.",
		RunE:    c.Failures.Execute,
		PreRunE: setup,
	}
	rootCmd.AddCommand(failuresCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:     "report",
		Short:   "Render the last run as Markdown",
		RunE:    c.Report.Execute,
		PreRunE: setup,
	}
	reportCmd.Flags().StringVarP(&flags.ReportFile, "output", "o", "", "Write the report to a file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}

// configureLogging installs the default slog handler at the configured level.
func configureLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
