package ui

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/klocke7-ford/pesterun/internal/domain"
	"github.com/klocke7-ford/pesterun/internal/pester"
)

// Formatter writes human-facing output for the commands.
type Formatter struct{}

// NewFormatter creates a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintRunSummary displays the outcome of a completed run.
func (f *Formatter) PrintRunSummary(report *domain.RunReport) {
	meta := report.Meta

	fmt.Println()
	color.Cyan("Pester %s | %s", meta.VersionUsed, meta.Path)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Total\t%d\n", meta.TotalTests)
	fmt.Fprintf(w, "  Passed\t%s\n", color.GreenString("%d", meta.PassedTests))
	fmt.Fprintf(w, "  Failed\t%s\n", color.RedString("%d", meta.FailedTests))
	fmt.Fprintf(w, "  Skipped\t%s\n", color.YellowString("%d", meta.SkippedTests))
	fmt.Fprintf(w, "  Duration\t%.2fs\n", meta.DurationSeconds)
	w.Flush()
	fmt.Println()

	if meta.FailedTests > 0 {
		color.Red("✗ %d test(s) failed", meta.FailedTests)
		for _, failure := range report.Result.Failures {
			color.Red("  - %s", failure.TestName)
		}
	} else {
		color.Green("✓ All tests passed")
	}
}

// PrintInstallList displays the discovered framework installs.
func (f *Formatter) PrintInstallList(installs []pester.Install) {
	if len(installs) == 0 {
		color.Yellow("No Pester installs found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tLOCATION")
	for _, in := range installs {
		fmt.Fprintf(w, "%s\t%s\n", in.Version, in.Path)
	}
	w.Flush()
}

// PrintHistory displays past runs, newest first.
func (f *Formatter) PrintHistory(records []domain.RunRecord) {
	if len(records) == 0 {
		color.Yellow("No recorded runs")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tPATH\tVERSION\tTOTAL\tPASSED\tFAILED\tSKIPPED\tDURATION")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.2fs\n",
			r.StartedAt, r.Path, r.VersionUsed, r.TotalTests, r.PassedTests,
			r.FailedTests, r.SkippedTests, r.DurationSeconds)
	}
	w.Flush()
}
