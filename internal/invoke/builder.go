package invoke

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/klocke7-ford/pesterun/internal/domain"
	"github.com/klocke7-ford/pesterun/internal/pester"
)

// DefaultOutputFormat is the framework result file format used when the
// host does not pick one.
const DefaultOutputFormat = "NUnitXml"

// Builder renders the PowerShell pipeline that imports the selected
// framework version, runs it with the forwarded parameters, and prints a
// single JSON envelope on stdout. Pester 5 and newer get a configuration
// object; older versions get the legacy Invoke-Pester argument form.
type Builder struct{}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build renders the invocation script for the given parameters and install.
// Parameters the selected framework version cannot honor are rejected
// rather than silently dropped.
func (b *Builder) Build(params domain.RunParams, install pester.Install) (string, error) {
	if len(params.PathExclude) > 0 && install.Version.Segments()[0] < 5 {
		return "", fmt.Errorf("parameter path_exclude requires Pester version 5.0 or greater, selected version is %s", install.Version)
	}

	depth := params.PassThruDepth
	if depth <= 0 {
		depth = 2
	}

	var lines []string
	lines = append(lines,
		"$ErrorActionPreference = 'Stop'",
		fmt.Sprintf("Import-Module -Name %s -RequiredVersion %s -Force | Out-Null",
			psQuote(install.Manifest), psQuote(install.Version.String())),
	)

	if install.Version.Segments()[0] >= 5 {
		lines = append(lines, b.configurationLines(params)...)
		lines = append(lines, "$result = Invoke-Pester -Configuration $configuration")
		lines = append(lines, v5FailureProjection...)
	} else {
		lines = append(lines, b.legacyLines(params, install)...)
		lines = append(lines, "$result = Invoke-Pester @pesterParams")
		lines = append(lines, legacyFailureProjection...)
	}

	lines = append(lines, b.encodingLines(params)...)
	lines = append(lines, b.envelopeLines(params, install, depth)...)
	return strings.Join(lines, "\n"), nil
}

// configurationLines builds the New-PesterConfiguration form (Pester 5+).
func (b *Builder) configurationLines(params domain.RunParams) []string {
	lines := []string{
		"$configuration = New-PesterConfiguration",
		"$configuration.Run.PassThru = $true",
		"$configuration.Output.Verbosity = 'None'",
	}

	if len(params.TestParameters) > 0 {
		lines = append(lines,
			fmt.Sprintf("$container = New-PesterContainer -Path %s -Data %s",
				psQuote(params.Path), psHashtable(params.TestParameters)),
			"$configuration.Run.Container = $container",
		)
	} else {
		lines = append(lines, fmt.Sprintf("$configuration.Run.Path = %s", psQuote(params.Path)))
	}

	if len(params.PathExclude) > 0 {
		lines = append(lines, fmt.Sprintf("$configuration.Run.ExcludePath = %s", psArray(params.PathExclude)))
	}
	if len(params.TagsInclude) > 0 {
		lines = append(lines, fmt.Sprintf("$configuration.Filter.Tag = %s", psArray(params.TagsInclude)))
	}
	if len(params.TagsExclude) > 0 {
		lines = append(lines, fmt.Sprintf("$configuration.Filter.ExcludeTag = %s", psArray(params.TagsExclude)))
	}

	if resultFile := resultFilePath(params); resultFile != "" {
		lines = append(lines,
			"$configuration.TestResult.Enabled = $true",
			fmt.Sprintf("$configuration.TestResult.OutputPath = %s", psQuote(resultFile)),
			fmt.Sprintf("$configuration.TestResult.OutputFormat = %s", psQuote(resultFormat(params))),
		)
	}
	return lines
}

// legacyLines builds the classic Invoke-Pester splat (Pester 3/4).
func (b *Builder) legacyLines(params domain.RunParams, install pester.Install) []string {
	lines := []string{"$pesterParams = @{ PassThru = $true }"}

	if install.Version.Segments()[0] >= 4 {
		lines = append(lines, "$pesterParams.Show = 'None'")
	} else {
		lines = append(lines, "$pesterParams.Quiet = $true")
	}

	if len(params.TestParameters) > 0 {
		lines = append(lines, fmt.Sprintf("$pesterParams.Script = @{ Path = %s; Parameters = %s }",
			psQuote(params.Path), psHashtable(params.TestParameters)))
	} else {
		lines = append(lines, fmt.Sprintf("$pesterParams.Script = %s", psQuote(params.Path)))
	}

	if len(params.TagsInclude) > 0 {
		lines = append(lines, fmt.Sprintf("$pesterParams.Tag = %s", psArray(params.TagsInclude)))
	}
	if len(params.TagsExclude) > 0 {
		lines = append(lines, fmt.Sprintf("$pesterParams.ExcludeTag = %s", psArray(params.TagsExclude)))
	}
	if resultFile := resultFilePath(params); resultFile != "" {
		lines = append(lines,
			fmt.Sprintf("$pesterParams.OutputFile = %s", psQuote(resultFile)),
			fmt.Sprintf("$pesterParams.OutputFormat = %s", psQuote(resultFormat(params))),
		)
	}
	return lines
}

// encodingLines re-encodes the result file when the host asked for a
// specific encoding. The framework itself always writes UTF-8.
func (b *Builder) encodingLines(params domain.RunParams) []string {
	resultFile := resultFilePath(params)
	if resultFile == "" || params.OutputEncoding == "" {
		return nil
	}
	quoted := psQuote(resultFile)
	return []string{
		fmt.Sprintf("if (Test-Path -LiteralPath %s) {", quoted),
		fmt.Sprintf("    $resultContent = Get-Content -LiteralPath %s -Raw", quoted),
		fmt.Sprintf("    $resultContent | Out-File -LiteralPath %s -Encoding %s -NoNewline", quoted, psQuote(params.OutputEncoding)),
		"}",
	}
}

// envelopeLines serialize the run into the single JSON document the
// wrapper reads back: counts, duration, the failure projection, and the
// PassThru object round-tripped through ConvertTo-Json at the requested
// depth so the framework itself enforces the depth bound.
func (b *Builder) envelopeLines(params domain.RunParams, install pester.Install, depth int) []string {
	durationExpr := "$result.Duration.TotalSeconds"
	if install.Version.Segments()[0] < 5 {
		durationExpr = "$result.Time.TotalSeconds"
	}
	return []string{
		"$envelope = [ordered]@{",
		fmt.Sprintf("    version = %s", psQuote(install.Version.String())),
		"    total = $result.TotalCount",
		"    passed = $result.PassedCount",
		"    failed = $result.FailedCount",
		"    skipped = $result.SkippedCount",
		fmt.Sprintf("    duration_seconds = %s", durationExpr),
		"    failures = $failures",
		fmt.Sprintf("    output = ($result | ConvertTo-Json -Depth %d | ConvertFrom-Json)", depth),
		"}",
		fmt.Sprintf("$envelope | ConvertTo-Json -Depth %d -Compress", depth+4),
	}
}

// v5FailureProjection extracts failed tests from a Pester 5 run object.
var v5FailureProjection = []string{
	"$failures = @(foreach ($t in $result.Failed) {",
	"    [ordered]@{",
	"        test_name = $t.ExpandedName",
	"        file_path = $t.ScriptBlock.File",
	"        message = (@($t.ErrorRecord | ForEach-Object { $_.Exception.Message }) -join \"`n\")",
	"        stack_trace = @($t.ErrorRecord | ForEach-Object { $_.ScriptStackTrace } | Where-Object { $_ } | ForEach-Object { $_ -split \"`n\" })",
	"    }",
	"})",
}

// legacyFailureProjection extracts failed cases from a Pester 3/4 result.
var legacyFailureProjection = []string{
	"$failures = @(foreach ($t in @($result.TestResult | Where-Object { $_.Result -eq 'Failed' })) {",
	"    [ordered]@{",
	"        test_name = (\"$($t.Describe) $($t.Name)\").Trim()",
	"        file_path = [string]$t.Describe",
	"        message = [string]$t.FailureMessage",
	"        stack_trace = @([string]$t.StackTrace -split \"`n\" | Where-Object { $_ })",
	"    }",
	"})",
}

// resultFilePath returns where the framework result file goes, or empty
// when no result file was requested.
func resultFilePath(params domain.RunParams) string {
	if params.OutputFile != "" {
		return params.OutputFile
	}
	if params.TestResultsEnabled {
		return "pester-results.xml"
	}
	return ""
}

func resultFormat(params domain.RunParams) string {
	if params.OutputFormat != "" {
		return params.OutputFormat
	}
	return DefaultOutputFormat
}

// psQuote renders a single-quoted PowerShell string literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// psArray renders a PowerShell array literal of quoted strings.
func psArray(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = psQuote(item)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

// psHashtable renders a PowerShell hashtable literal with deterministic
// key order. Values are forwarded by type; anything exotic is stringified.
func psHashtable(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s = %s", psQuote(k), psValue(m[k])))
	}
	return "@{ " + strings.Join(pairs, "; ") + " }"
}

func psValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "$null"
	case bool:
		if val {
			return "$true"
		}
		return "$false"
	case string:
		return psQuote(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		// JSON numbers decode as float64; render integral values bare.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = psValue(item)
		}
		return "@(" + strings.Join(items, ", ") + ")"
	case map[string]any:
		return psHashtable(val)
	default:
		return psQuote(fmt.Sprint(val))
	}
}
