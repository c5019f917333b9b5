package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Config holds all configuration for the application. Sources are layered:
// built-in defaults, then the optional YAML config file, then .env /
// environment variables, then command-line flags.
type Config struct {
	// ModulePaths are the framework search paths. Empty means the locator
	// falls back to PSModulePath / platform defaults.
	ModulePaths []string

	// Shell is the PowerShell interpreter binary. Empty means resolve
	// pwsh/powershell from PATH.
	Shell string

	// DataDir holds the saved run report and the history database.
	DataDir string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Flags holds the parsed command-line flags.
	Flags Flags
}

// Flags holds command-line flags shared across commands.
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

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
	}
}

// Load creates a config and applies all layers on top of the defaults.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.Apply(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply layers the config file, environment, and flag overrides onto the
// config in place. Called after command-line parsing.
func (c *Config) Apply(flags Flags) error {
	if path := FindConfigFile(""); path != "" {
		file, err := LoadConfigFile(path)
		if err != nil {
			return err
		}
		c.applyFile(file)
	}
	c.applyEnv()

	c.Flags = flags
	if len(flags.ModulePaths) > 0 {
		c.ModulePaths = flags.ModulePaths
	}
	if flags.Shell != "" {
		c.Shell = flags.Shell
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	return nil
}

func (c *Config) applyFile(file *File) {
	if len(file.ModulePaths) > 0 {
		c.ModulePaths = file.ModulePaths
	}
	if file.Shell != "" {
		c.Shell = file.Shell
	}
	if file.DataDir != "" {
		c.DataDir = file.DataDir
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
}

// GetDataDir returns the data directory, defaulting to the XDG data home.
func (c *Config) GetDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(xdg.DataHome, AppName)
}

// GetResultPath returns the absolute path of the saved run report.
func (c *Config) GetResultPath() string {
	p := filepath.Join(c.GetDataDir(), DefaultResultFileName)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHistoryDBPath returns the run history database path.
func (c *Config) GetHistoryDBPath() string {
	return filepath.Join(c.GetDataDir(), DefaultHistoryDBName)
}
