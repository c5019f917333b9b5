package domain

// TestFailure is a single failed test as projected by the framework
// invocation. The wrapper forwards it as-is, it never reconstructs
// failures from console output.
type TestFailure struct {
	TestName   string   `json:"test_name"`
	FilePath   string   `json:"file_path"`
	Message    string   `json:"message"`
	StackTrace []string `json:"stack_trace"`
}
