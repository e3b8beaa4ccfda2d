package venv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes one provisioning command and waits for it.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands as child processes, streaming their output to Out.
type ExecRunner struct {
	log *slog.Logger
	out io.Writer
}

func NewExecRunner(log *slog.Logger, out io.Writer) *ExecRunner {
	return &ExecRunner{log: log, out: out}
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	const opn = "venv.ExecRunner.Run"

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.out
	cmd.Stderr = r.out

	r.log.DebugContext(ctx, "Run command", "op", opn, "cmd", name, "args", strings.Join(args, " "), "dir", dir)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %s %s: %w", opn, name, strings.Join(args, " "), err)
	}

	return nil
}
