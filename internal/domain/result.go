package domain

// RunResult is the structure reported back to the orchestration host after
// a framework invocation. Output carries the framework's PassThru object,
// bounded to the requested serialization depth.
type RunResult struct {
	Changed           bool          `json:"changed"`
	PesterVersionUsed string        `json:"pester_version_used"`
	Output            any           `json:"output"`
	Failures          []TestFailure `json:"failures,omitempty"`
}

// RunMeta contains metadata about a completed run, persisted alongside the
// result and recorded in the run history.
type RunMeta struct {
	Path            string  `json:"path"`
	VersionUsed     string  `json:"version_used"`
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	SkippedTests    int     `json:"skipped_tests"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunReport is the complete saved form of a run: metadata plus the host
// result. It is what the failures viewer and the report command read back.
type RunReport struct {
	Meta   RunMeta   `json:"meta"`
	Result RunResult `json:"result"`
}

// RunRecord is a single row of the run history store.
type RunRecord struct {
	ID              int64
	StartedAt       string
	Path            string
	VersionUsed     string
	TotalTests      int
	PassedTests     int
	FailedTests     int
	SkippedTests    int
	DurationSeconds float64
	ResultFile      string
}
