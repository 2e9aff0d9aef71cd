// Package testutil provides common test helpers for the shimenv project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempProject creates a temporary project directory containing a .envrc with
// the given content, and returns its path.
func TempProject(t *testing.T, envrc string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".envrc"), []byte(envrc), 0600); err != nil {
		t.Fatalf("TempProject: write failed: %v", err)
	}
	return dir
}

// InstallExecutable writes an executable shell script at dir/name printing
// the given output, creating dir if needed. Returns the script path.
func InstallExecutable(t *testing.T, dir, name, output string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("InstallExecutable: mkdir failed: %v", err)
	}
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\necho " + output + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("InstallExecutable: write failed: %v", err)
	}
	return path
}

// FakeSelfBinary writes a placeholder executable to act as the shimenv
// binary that shim symlinks point at.
func FakeSelfBinary(t *testing.T, dir string) string {
	t.Helper()
	return InstallExecutable(t, dir, "shimenv-binary", "shimenv")
}

// FakeConfirmer is a cli.Confirmer that always returns a fixed answer.
type FakeConfirmer struct {
	Answer bool
	// Prompts records every prompt shown, in order.
	Prompts []string
}

// Confirm records the prompt and returns the configured answer.
func (f *FakeConfirmer) Confirm(prompt string) (bool, error) {
	f.Prompts = append(f.Prompts, prompt)
	return f.Answer, nil
}
