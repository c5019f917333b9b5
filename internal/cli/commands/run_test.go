package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/klocke7-ford/pesterun/internal/config"
	"github.com/klocke7-ford/pesterun/internal/invoke"
	"github.com/klocke7-ford/pesterun/internal/storage"
	"github.com/klocke7-ford/pesterun/internal/ui"
)

func TestRunCommand_MachineFailureGoesToCommandOutput(t *testing.T) {
	cfg := config.New()
	cfg.Flags.JSONOutput = true
	cfg.Flags.Path = "/nonexistent/run.tests.ps1"

	rc := NewRunCommand(cfg, invoke.NewBuilder(), storage.NewJSONStorage(cfg), ui.NewFormatter())

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := rc.Execute(cmd, nil)
	if !errors.Is(err, ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}

	var failure struct {
		Failed bool   `json:"failed"`
		Msg    string `json:"msg"`
	}
	if err := json.Unmarshal(out.Bytes(), &failure); err != nil {
		t.Fatalf("failure document is not valid JSON: %v\noutput: %s", err, out.String())
	}
	if !failure.Failed {
		t.Error("failure document missing failed=true")
	}
	if !strings.Contains(failure.Msg, "Cannot find file or directory") {
		t.Errorf("unexpected msg: %q", failure.Msg)
	}
}

func TestRunCommand_HumanFailureReturnsError(t *testing.T) {
	cfg := config.New()
	cfg.Flags.Path = "/nonexistent/run.tests.ps1"

	rc := NewRunCommand(cfg, invoke.NewBuilder(), storage.NewJSONStorage(cfg), ui.NewFormatter())

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := rc.Execute(cmd, nil)
	if err == nil || errors.Is(err, ErrReported) {
		t.Fatalf("expected a plain error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("human mode wrote to stdout: %s", out.String())
	}
}
