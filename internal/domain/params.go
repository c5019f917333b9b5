package domain

// RunParams is the flat parameter set supplied by the orchestration host.
// Field names follow the host-side argument schema.
type RunParams struct {
	Path               string         `json:"path" yaml:"path"`
	PathExclude        []string       `json:"path_exclude" yaml:"path_exclude"`
	TagsInclude        []string       `json:"tags_include" yaml:"tags_include"`
	TagsExclude        []string       `json:"tags_exclude" yaml:"tags_exclude"`
	TestParameters     map[string]any `json:"test_parameters" yaml:"test_parameters"`
	TestResultsEnabled bool           `json:"test_results_enabled" yaml:"test_results_enabled"`
	OutputFile         string         `json:"output_file" yaml:"output_file"`
	OutputFormat       string         `json:"output_format" yaml:"output_format"`
	OutputEncoding     string         `json:"output_encoding" yaml:"output_encoding"`
	RequiredVersion    string         `json:"required_version" yaml:"required_version"`
	MinimumVersion     string         `json:"minimum_version" yaml:"minimum_version"`
	PassThruDepth      int            `json:"pass_thru_depth" yaml:"pass_thru_depth"`
}
