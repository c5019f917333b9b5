// Package report renders saved run reports for humans.
package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/klocke7-ford/pesterun/internal/domain"
)

// MarkdownWriter renders a run report as Markdown.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that writes to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders the full report: run metadata, result counts, and the
// failure list.
func (w *MarkdownWriter) Write(report *domain.RunReport) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeFailures(md, report)

	return md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *domain.RunReport) {
	md.H1("Pester Run Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Path", "`" + report.Meta.Path + "`"},
			{"Pester Version", report.Meta.VersionUsed},
			{"Run At", report.Meta.Timestamp},
			{"Duration", strconv.FormatFloat(report.Meta.DurationSeconds, 'f', 2, 64) + "s"},
			{"Status", statusText(report)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *domain.RunReport) {
	md.H2("Result Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"Passed", strconv.Itoa(report.Meta.PassedTests)},
			{"Failed", strconv.Itoa(report.Meta.FailedTests)},
			{"Skipped", strconv.Itoa(report.Meta.SkippedTests)},
			{"**Total**", "**" + strconv.Itoa(report.Meta.TotalTests) + "**"},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *domain.RunReport) {
	failures := report.Result.Failures
	if len(failures) == 0 {
		return
	}

	md.H2("Failures")
	md.PlainText("")
	for _, f := range failures {
		md.H3(f.TestName)
		if f.FilePath != "" {
			md.PlainText("File: `" + f.FilePath + "`")
			md.PlainText("")
		}
		if f.Message != "" {
			md.CodeBlocks(markdown.SyntaxHighlightText, f.Message)
		}
		if len(f.StackTrace) > 0 {
			md.CodeBlocks(markdown.SyntaxHighlightText, strings.Join(f.StackTrace, "\n"))
		}
		md.PlainText("")
	}
}

func statusText(report *domain.RunReport) string {
	if report.Meta.FailedTests > 0 {
		return "failed"
	}
	return "passed"
}
