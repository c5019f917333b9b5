package invoke

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// defaultShells are tried in order when no interpreter is configured.
var defaultShells = []string{"pwsh", "powershell"}

// Runner executes the invocation script in a PowerShell interpreter and
// captures the result envelope. A single synchronous process call; test
// failures inside the run are part of the envelope, not an error here.
type Runner struct {
	shell string
}

// NewRunner creates a Runner. An empty shell means "resolve from PATH".
func NewRunner(shell string) *Runner {
	return &Runner{shell: shell}
}

// ResolveShell returns the interpreter binary to use.
func (r *Runner) ResolveShell() (string, error) {
	if r.shell != "" {
		path, err := exec.LookPath(r.shell)
		if err != nil {
			return "", fmt.Errorf("configured shell %q not found: %w", r.shell, err)
		}
		return path, nil
	}
	for _, candidate := range defaultShells {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no PowerShell interpreter (pwsh or powershell) found on PATH")
}

// Run executes the script and decodes the envelope from stdout. A non-zero
// exit means the invocation itself failed (unimportable module, script
// error); stderr is folded into the returned error.
func (r *Runner) Run(ctx context.Context, script string) (*Envelope, error) {
	shell, err := r.ResolveShell()
	if err != nil {
		return nil, err
	}
	slog.Debug("invoking framework", "shell", shell, "script_bytes", len(script))

	cmd := exec.CommandContext(ctx, shell, "-NoProfile", "-NonInteractive", "-Command", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("pester invocation failed: %w: %s", err, detail)
		}
		return nil, fmt.Errorf("pester invocation failed: %w", err)
	}

	env, err := decodeEnvelope(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	slog.Debug("framework run complete",
		"version", env.Version, "total", env.Total, "failed", env.Failed)
	return env, nil
}
