// Package cmdexec abstracts external command execution for testability.
// Production code uses Commander interface; tests inject FakeCommander from testutil.
package cmdexec

import (
	"context"
	"io"
	"os/exec"
)

// Spec describes one external command invocation.
type Spec struct {
	// Name and Args form the argument vector.
	Name string
	Args []string

	// Dir is the working directory. Empty means the caller's cwd.
	Dir string

	// Env is the full environment for the subprocess in "KEY=VALUE" form.
	// Nil inherits the caller's environment.
	Env []string

	// Stdin, Stdout and Stderr are wired to the subprocess when non-nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Commander abstracts external command execution.
type Commander interface {
	// Run executes the command and blocks until it exits. A non-zero exit
	// status is returned as an *exec.ExitError.
	Run(ctx context.Context, spec Spec) error

	// Output executes the command and returns its combined output. Used for
	// short diagnostic probes.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct{}

// Run executes the command described by spec.
func (c *RealCommander) Run(ctx context.Context, spec Spec) error {
	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	return cmd.Run()
}

// Output executes the command and returns combined stdout/stderr.
func (c *RealCommander) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
