package pester

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
)

// moduleVersionPattern matches the ModuleVersion assignment in a module
// manifest, e.g. `ModuleVersion = '5.7.1'`.
var moduleVersionPattern = regexp.MustCompile(`^\s*ModuleVersion\s*=\s*['"]([^'"]+)['"]`)

// ManifestVersion reads the ModuleVersion declared in a .psd1 module
// manifest. Only the top-level assignment line is consulted.
func ManifestVersion(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := moduleVersionPattern.FindStringSubmatch(scanner.Text()); m != nil {
			return m[1], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	return "", fmt.Errorf("no ModuleVersion in manifest %s", path)
}
