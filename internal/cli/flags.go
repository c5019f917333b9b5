package cli

import "github.com/klocke7-ford/pesterun/internal/config"

// Flags holds command-line flags
type Flags struct {
	ArgsFile           string
	Path               string
	PathExclude        []string
	TagsInclude        []string
	TagsExclude        []string
	TestParameters     map[string]string
	TestResultsEnabled bool
	OutputFile         string
	OutputFormat       string
	OutputEncoding     string
	RequiredVersion    string
	MinimumVersion     string
	PassThruDepth      int
	ModulePaths        []string
	Shell              string
	JSONOutput         bool
	LogLevel           string
	HistoryLimit       int
	ReportFile         string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ArgsFile:           f.ArgsFile,
		Path:               f.Path,
		PathExclude:        f.PathExclude,
		TagsInclude:        f.TagsInclude,
		TagsExclude:        f.TagsExclude,
		TestParameters:     f.TestParameters,
		TestResultsEnabled: f.TestResultsEnabled,
		OutputFile:         f.OutputFile,
		OutputFormat:       f.OutputFormat,
		OutputEncoding:     f.OutputEncoding,
		RequiredVersion:    f.RequiredVersion,
		MinimumVersion:     f.MinimumVersion,
		PassThruDepth:      f.PassThruDepth,
		ModulePaths:        f.ModulePaths,
		Shell:              f.Shell,
		JSONOutput:         f.JSONOutput,
		LogLevel:           f.LogLevel,
		HistoryLimit:       f.HistoryLimit,
		ReportFile:         f.ReportFile,
	}
}
