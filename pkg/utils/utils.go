// Package utils provides the process invoker and the small macOS helpers
// built on it: running scripts with captured output, detached launches,
// application lookup, process detection and user alerts.
package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// ============================================================================
// Process Invoker
// ============================================================================

// Output is the result of a synchronous run.
type Output struct {
	ExitCode int
	Stdout   string // trimmed
}

// Text returns the trimmed stdout and whether it is usable (non-empty).
func (o Output) Text() (string, bool) {
	return o.Stdout, o.Stdout != ""
}

// Runner runs external programs.
type Runner interface {
	// Run blocks until the program exits or ctx is done. Stdout is captured,
	// stderr is discarded. A program that cannot start yields ExitCode -1
	// and an error.
	Run(ctx context.Context, name string, args ...string) (Output, error)
	// Start launches the program detached and returns immediately.
	Start(name string, args ...string) error
}

// waitDelay bounds how long Run keeps reading output once the program has
// exited or ctx is done. Grandchildren that inherit stdout would otherwise
// hold Run open.
const waitDelay = 250 * time.Millisecond

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct{}

// NewRunner returns the default Runner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and returns its output
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	out := Output{ExitCode: -1, Stdout: strings.TrimSpace(stdout.String())}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		out.ExitCode = 0
	case ctx.Err() != nil:
		return out, fmt.Errorf("%s: %w", name, ctx.Err())
	case errors.Is(err, exec.ErrWaitDelay):
		// exited successfully, a leftover child still held stdout
		out.ExitCode = 0
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
		return out, fmt.Errorf("%s exited with status %d", name, out.ExitCode)
	default:
		return out, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return out, nil
}

// Start starts a process completely detached and reaps it in the background
func (ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go cmd.Wait()
	return nil
}

// ============================================================================
// File System Utilities
// ============================================================================

// ExpandHomeDir expands ~ in paths
func ExpandHomeDir(path string) string {
	if len(path) > 0 && path[0] == '~' {
		return filepath.Join(GetHomeDir(), path[1:])
	}
	return path
}

// GetHomeDir returns home directory
func GetHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

// IsDirectory checks if path is a directory
func IsDirectory(path string) bool {
	info, err := os.Stat(ExpandHomeDir(path))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsExecutable checks if path is a regular file with an execute bit set
func IsExecutable(path string) bool {
	info, err := os.Stat(ExpandHomeDir(path))
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0111 != 0
}
