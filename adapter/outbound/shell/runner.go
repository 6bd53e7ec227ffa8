package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/ajkula/moni/domain/model"
	"github.com/ajkula/moni/domain/port/outbound"
)

// Runner spawns `<shell> -c <command>` and waits for it to finish. There is
// no timeout: a hung command blocks the caller.
type Runner struct {
	shell string
}

// NewRunner uses shell when set, the platform default otherwise.
func NewRunner(shell string) outbound.CommandRunner {
	if shell == "" {
		shell = DefaultShell()
	}
	return &Runner{shell: shell}
}

// DefaultShell is zsh on macOS and bash elsewhere, falling back to sh when
// the preferred one is not on PATH.
func DefaultShell() string {
	preferred := "bash"
	if runtime.GOOS == "darwin" {
		preferred = "zsh"
	}
	if _, err := exec.LookPath(preferred); err == nil {
		return preferred
	}
	return "sh"
}

func (r *Runner) Shell() string {
	return r.shell
}

func (r *Runner) Run(ctx context.Context, command string) (model.CommandResult, error) {
	var stdout, stderr bytes.Buffer

	// exec.Command rather than CommandContext: shutting down the watch
	// must not kill a build halfway
	cmd := exec.Command(r.shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := model.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("failed to spawn %s: %w", r.shell, err)
	}

	return result, nil
}
