package pester

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, version string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	content := "@{\n    RootModule = 'Pester.psm1'\n    ModuleVersion = '" + version + "'\n    GUID = 'a699dea5-2c73-4616-a270-1f7abb777e71'\n}\n"
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLocator_Discover_SideBySide(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "Pester", "5.7.1"), "5.7.1")
	writeManifest(t, filepath.Join(root, "Pester", "4.10.1"), "4.10.1")

	installs, err := NewLocator([]string{root}).Discover()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(installs) != 2 {
		t.Fatalf("expected 2 installs, got %d", len(installs))
	}
	if installs[0].Version.String() != "5.7.1" {
		t.Errorf("expected highest version first, got %s", installs[0].Version)
	}
	if installs[1].Version.String() != "4.10.1" {
		t.Errorf("expected 4.10.1 second, got %s", installs[1].Version)
	}
}

func TestLocator_Discover_FlatLayout(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "Pester"), "3.4.0")

	installs, err := NewLocator([]string{root}).Discover()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(installs) != 1 {
		t.Fatalf("expected 1 install, got %d", len(installs))
	}
	if installs[0].Version.String() != "3.4.0" {
		t.Errorf("expected 3.4.0, got %s", installs[0].Version)
	}
}

func TestLocator_Discover_SkipsJunk(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "Pester", "5.5.0"), "5.5.0")

	// Version directory without a manifest.
	if err := os.MkdirAll(filepath.Join(root, "Pester", "5.6.1"), 0755); err != nil {
		t.Fatal(err)
	}
	// Directory whose name is not a version.
	writeManifest(t, filepath.Join(root, "Pester", "backup"), "5.9.9")

	installs, err := NewLocator([]string{root}).Discover()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(installs) != 1 {
		t.Fatalf("expected 1 install, got %d", len(installs))
	}
	if installs[0].Version.String() != "5.5.0" {
		t.Errorf("expected 5.5.0, got %s", installs[0].Version)
	}
}

func TestLocator_Discover_DedupesAcrossPaths(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	firstManifest := writeManifest(t, filepath.Join(first, "Pester", "5.5.0"), "5.5.0")
	writeManifest(t, filepath.Join(second, "Pester", "5.5.0"), "5.5.0")

	installs, err := NewLocator([]string{first, second}).Discover()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(installs) != 1 {
		t.Fatalf("expected 1 install after dedupe, got %d", len(installs))
	}
	if installs[0].Manifest != firstManifest {
		t.Errorf("expected earlier search path to win, got %s", installs[0].Manifest)
	}
}

func TestLocator_Discover_MissingSearchPath(t *testing.T) {
	installs, err := NewLocator([]string{"/does/not/exist"}).Discover()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(installs) != 0 {
		t.Errorf("expected no installs, got %d", len(installs))
	}
}

func TestManifestVersion(t *testing.T) {
	t.Run("reads version", func(t *testing.T) {
		path := writeManifest(t, t.TempDir(), "5.7.1")
		got, err := ManifestVersion(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "5.7.1" {
			t.Errorf("expected 5.7.1, got %s", got)
		}
	})

	t.Run("missing version key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), manifestName)
		if err := os.WriteFile(path, []byte("@{ RootModule = 'Pester.psm1' }\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ManifestVersion(path); err == nil {
			t.Error("expected error for manifest without ModuleVersion")
		}
	})
}
