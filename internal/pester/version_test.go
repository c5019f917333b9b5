package pester

import (
	"strings"
	"testing"

	goversion "github.com/hashicorp/go-version"
)

func mustInstall(t *testing.T, raw string) Install {
	t.Helper()
	v, err := goversion.NewVersion(raw)
	if err != nil {
		t.Fatalf("bad test version %s: %v", raw, err)
	}
	return Install{Version: v, Path: "/modules/Pester/" + raw}
}

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		name     string
		required string
		minimum  string
		wantErr  string
	}{
		{
			name: "both empty",
		},
		{
			name:     "valid required",
			required: "5.7.1",
		},
		{
			name:    "valid minimum",
			minimum: "4.10.1",
		},
		{
			name:     "four part version",
			required: "3.4.0.0",
		},
		{
			name:     "mutually exclusive",
			required: "5.0.0",
			minimum:  "4.0.0",
			wantErr:  "mutually exclusive",
		},
		{
			name:     "malformed required",
			required: "not-a-version",
			wantErr:  "invalid value \"not-a-version\" for required_version",
		},
		{
			name:    "malformed minimum",
			minimum: "5..1",
			wantErr: "invalid value \"5..1\" for minimum_version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseConstraint(tt.required, tt.minimum)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.required != "" && c.Required == nil {
				t.Error("Required not set")
			}
			if tt.minimum != "" && c.Minimum == nil {
				t.Error("Minimum not set")
			}
		})
	}
}

func TestConstraint_Select(t *testing.T) {
	installed := []Install{
		mustInstall(t, "4.10.1"),
		mustInstall(t, "5.5.0"),
		mustInstall(t, "5.7.1"),
		mustInstall(t, "3.4.0"),
	}

	t.Run("unconstrained picks highest", func(t *testing.T) {
		c, _ := ParseConstraint("", "")
		got, err := c.Select(installed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Version.String() != "5.7.1" {
			t.Errorf("expected 5.7.1, got %s", got.Version)
		}
	})

	t.Run("required exact match", func(t *testing.T) {
		c, _ := ParseConstraint("4.10.1", "")
		got, err := c.Select(installed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Version.String() != "4.10.1" {
			t.Errorf("expected 4.10.1, got %s", got.Version)
		}
	})

	t.Run("required missing", func(t *testing.T) {
		c, _ := ParseConstraint("6.0.0", "")
		_, err := c.Select(installed)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "Pester version 6.0.0 is not installed") {
			t.Errorf("unexpected message: %v", err)
		}
	})

	t.Run("minimum picks highest satisfying", func(t *testing.T) {
		c, _ := ParseConstraint("", "4.0.0")
		got, err := c.Select(installed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Version.String() != "5.7.1" {
			t.Errorf("expected 5.7.1, got %s", got.Version)
		}
	})

	t.Run("minimum too high", func(t *testing.T) {
		c, _ := ParseConstraint("", "6.0.0")
		_, err := c.Select(installed)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "Pester version 6.0.0 or greater is not installed") {
			t.Errorf("unexpected message: %v", err)
		}
	})

	t.Run("nothing installed", func(t *testing.T) {
		c, _ := ParseConstraint("", "")
		_, err := c.Select(nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "Pester module is not installed") {
			t.Errorf("unexpected message: %v", err)
		}
	})
}
