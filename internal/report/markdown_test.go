package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klocke7-ford/pesterun/internal/domain"
)

func TestMarkdownWriter_Write(t *testing.T) {
	report := &domain.RunReport{
		Meta: domain.RunMeta{
			Path:            "/tests/acl.tests.ps1",
			VersionUsed:     "5.7.1",
			TotalTests:      3,
			PassedTests:     2,
			FailedTests:     1,
			DurationSeconds: 1.25,
			Timestamp:       "2026-08-30T10:00:00Z",
		},
		Result: domain.RunResult{
			Changed:           true,
			PesterVersionUsed: "5.7.1",
			Failures: []domain.TestFailure{
				{
					TestName:   "denies guest access",
					FilePath:   "/tests/acl.tests.ps1",
					Message:    "Expected $false, but got $true.",
					StackTrace: []string{"at <ScriptBlock>, /tests/acl.tests.ps1: line 12"},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := NewMarkdownWriter(&buf).Write(report); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	wants := []string{
		"# Pester Run Report",
		"5.7.1",
		"## Result Summary",
		"## Failures",
		"denies guest access",
		"Expected $false, but got $true.",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMarkdownWriter_Write_NoFailures(t *testing.T) {
	report := &domain.RunReport{
		Meta: domain.RunMeta{Path: "/tests", VersionUsed: "4.10.1", TotalTests: 2, PassedTests: 2},
	}

	var buf bytes.Buffer
	if err := NewMarkdownWriter(&buf).Write(report); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Contains(buf.String(), "## Failures") {
		t.Error("failure section should be omitted for clean runs")
	}
}
