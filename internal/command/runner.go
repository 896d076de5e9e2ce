package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var (
	ErrCommandFailed = errors.New("command failed")
)

// Describes one external command invocation.
type Cmd struct {
	Name string   // Program to run, as a path or a name resolved via PATH.
	Args []string // Arguments, not including the program name.
	Dir  string   // Working directory. Empty means the current directory.
	Env  []string // Full environment. Nil inherits the process environment.
}

// Runs external commands.
//
// The variant build loop and the cache bridge call every external tool (git,
// pip, auditwheel) through this interface so that tests can substitute a
// fake and inject failures.
type Runner interface {

	// Runs the command, streaming its output to the process streams.
	// A non-zero exit is returned as an error wrapping [ErrCommandFailed].
	Run(ctx context.Context, cmd Cmd) error

	// Runs the command and returns its trimmed standard output.
	Output(ctx context.Context, cmd Cmd) (string, error)
}

// Runner backed by os/exec.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Runs the command with stdout and stderr attached to the process streams.
func (ExecRunner) Run(ctx context.Context, cmd Cmd) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s: exit code %d", ErrCommandFailed, cmd.Name, exitErr.ExitCode())
		}
		return fmt.Errorf("%w: %s: %w", ErrCommandFailed, cmd.Name, err)
	}
	return nil
}

// Runs the command and captures its standard output.
//
// Standard error is captured separately and included in the error message
// on failure.
func (ExecRunner) Output(ctx context.Context, cmd Cmd) (string, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %v (%s)", ErrCommandFailed, cmd.Name, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
