package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// File is the YAML config file schema.
type File struct {
	ModulePaths []string `yaml:"module_paths"`
	Shell       string   `yaml:"shell"`
	DataDir     string   `yaml:"data_dir"`
	LogLevel    string   `yaml:"log_level"`
}

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads settings from a YAML file. A missing file returns
// ErrConfigNotFound so callers can decide whether that matters.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file: an explicit path
// first, then the working directory, then the user's home directory.
// Returns empty when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// applyEnv loads a .env file from the working directory when present and
// applies PESTERUN_* environment overrides.
func (c *Config) applyEnv() {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	if v := os.Getenv("PESTERUN_MODULE_PATH"); v != "" {
		var paths []string
		for _, p := range filepath.SplitList(v) {
			if p != "" {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			c.ModulePaths = paths
		}
	}
	if v := os.Getenv("PESTERUN_SHELL"); v != "" {
		c.Shell = v
	}
	if v := os.Getenv("PESTERUN_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("PESTERUN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
