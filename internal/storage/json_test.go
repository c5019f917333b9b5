package storage

import (
	"strings"
	"testing"

	"github.com/klocke7-ford/pesterun/internal/config"
	"github.com/klocke7-ford/pesterun/internal/domain"
)

func TestJSONStorage_SaveLoad(t *testing.T) {
	cfg := config.New()
	cfg.DataDir = t.TempDir()
	st := NewJSONStorage(cfg)

	report := &domain.RunReport{
		Meta: domain.RunMeta{
			Path:        "/tests/acl.tests.ps1",
			VersionUsed: "5.7.1",
			TotalTests:  4,
			PassedTests: 3,
			FailedTests: 1,
			Timestamp:   "2026-08-30T10:00:00Z",
		},
		Result: domain.RunResult{
			Changed:           true,
			PesterVersionUsed: "5.7.1",
			Output:            map[string]any{"TotalCount": float64(4)},
			Failures: []domain.TestFailure{
				{TestName: "denies guest", Message: "expected False, got True"},
			},
		},
	}

	if err := st.Save(report); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Meta.VersionUsed != "5.7.1" || loaded.Meta.FailedTests != 1 {
		t.Errorf("meta not round-tripped: %+v", loaded.Meta)
	}
	if !loaded.Result.Changed {
		t.Error("changed flag lost")
	}
	if len(loaded.Result.Failures) != 1 || loaded.Result.Failures[0].TestName != "denies guest" {
		t.Errorf("failures not round-tripped: %+v", loaded.Result.Failures)
	}
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.DataDir = t.TempDir()
	st := NewJSONStorage(cfg)

	_, err := st.Load()
	if err == nil || !strings.Contains(err.Error(), "read run report") {
		t.Errorf("expected read error for missing report, got %v", err)
	}
}
