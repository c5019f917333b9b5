package pester

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	goversion "github.com/hashicorp/go-version"
)

const (
	moduleName   = "Pester"
	manifestName = "Pester.psd1"
)

// Install is one installed copy of the framework found on disk.
type Install struct {
	Version  *goversion.Version
	Path     string // directory containing the manifest
	Manifest string // full path to the .psd1 manifest
}

// Locator discovers framework installs under a list of module search paths.
type Locator struct {
	searchPaths []string
}

// NewLocator creates a Locator over the given search paths. An empty list
// falls back to DefaultSearchPaths.
func NewLocator(searchPaths []string) *Locator {
	if len(searchPaths) == 0 {
		searchPaths = DefaultSearchPaths()
	}
	return &Locator{searchPaths: searchPaths}
}

// DefaultSearchPaths returns the module search paths: the PSModulePath
// environment variable when set, otherwise the platform's conventional
// module directories.
func DefaultSearchPaths() []string {
	if env := os.Getenv("PSModulePath"); env != "" {
		var paths []string
		for _, p := range filepath.SplitList(env) {
			if p != "" {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			return paths
		}
	}

	if runtime.GOOS == "windows" {
		return []string{
			filepath.Join(os.Getenv("ProgramFiles"), "WindowsPowerShell", "Modules"),
			filepath.Join(os.Getenv("ProgramFiles"), "PowerShell", "Modules"),
			filepath.Join(os.Getenv("SystemRoot"), "System32", "WindowsPowerShell", "v1.0", "Modules"),
		}
	}

	paths := []string{
		"/usr/local/share/powershell/Modules",
		"/opt/microsoft/powershell/7/Modules",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append([]string{filepath.Join(home, ".local", "share", "powershell", "Modules")}, paths...)
	}
	return paths
}

// SearchPaths returns the paths the locator scans, in order.
func (l *Locator) SearchPaths() []string {
	return l.searchPaths
}

// Discover scans the search paths for installed framework copies. Both the
// side-by-side layout (Pester/<version>/Pester.psd1) and the flat layout
// (Pester/Pester.psd1, version taken from the manifest) are recognized.
// Unreadable entries are skipped. The result is sorted highest version
// first, deduplicated by version with earlier search paths winning.
func (l *Locator) Discover() ([]Install, error) {
	seen := make(map[string]bool)
	var installs []Install

	add := func(raw, dir, manifest string) {
		v, err := goversion.NewVersion(raw)
		if err != nil {
			return
		}
		key := v.String()
		if seen[key] {
			return
		}
		seen[key] = true
		installs = append(installs, Install{Version: v, Path: dir, Manifest: manifest})
	}

	for _, sp := range l.searchPaths {
		moduleDir := filepath.Join(sp, moduleName)
		entries, err := os.ReadDir(moduleDir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(moduleDir, entry.Name())
			manifest := filepath.Join(dir, manifestName)
			if _, err := os.Stat(manifest); err != nil {
				continue
			}
			add(entry.Name(), dir, manifest)
		}

		// Flat layout: manifest directly under the module directory.
		manifest := filepath.Join(moduleDir, manifestName)
		if _, err := os.Stat(manifest); err == nil {
			if raw, err := ManifestVersion(manifest); err == nil {
				add(raw, moduleDir, manifest)
			}
		}
	}

	sort.Slice(installs, func(i, j int) bool {
		return installs[i].Version.GreaterThan(installs[j].Version)
	})
	return installs, nil
}
