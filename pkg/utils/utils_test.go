package utils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerCapturesTrimmedStdout(t *testing.T) {
	out, err := NewRunner().Run(context.Background(), "sh", "-c", `printf '  /Users/u/Projects/ \n\n'; echo noise >&2`)
	require.NoError(t, err)
	assert.Equal(t, 0, out.ExitCode)

	text, ok := out.Text()
	assert.True(t, ok)
	assert.Equal(t, "/Users/u/Projects/", text)
}

func TestExecRunnerWhitespaceOnlyIsUnusable(t *testing.T) {
	out, err := NewRunner().Run(context.Background(), "sh", "-c", `printf ' \t\n '`)
	require.NoError(t, err)

	_, ok := out.Text()
	assert.False(t, ok)
}

func TestExecRunnerReportsExitStatus(t *testing.T) {
	out, err := NewRunner().Run(context.Background(), "sh", "-c", "echo partial; exit 3")
	assert.Error(t, err)
	assert.Equal(t, 3, out.ExitCode)
	assert.Equal(t, "partial", out.Stdout)
}

func TestExecRunnerMissingExecutable(t *testing.T) {
	out, err := NewRunner().Run(context.Background(), "/nonexistent/gotoshell-no-such-tool")
	assert.Error(t, err)
	assert.Equal(t, -1, out.ExitCode)
}

func TestExecRunnerHonoursDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewRunner().Run(ctx, "sleep", "5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestExecRunnerDeadlineWithInheritedStdout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// the background sleep keeps the stdout pipe open after sh exits
	start := time.Now()
	out, _ := NewRunner().Run(ctx, "sh", "-c", "sleep 3 & echo hi")

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "hi", out.Stdout)
}

func TestExecRunnerLeftoverChildDoesNotBlock(t *testing.T) {
	start := time.Now()
	out, err := NewRunner().Run(context.Background(), "sh", "-c", "sleep 3 & echo hi")

	require.NoError(t, err)
	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t, "hi", out.Stdout)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestExecRunnerStart(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "started")
	require.NoError(t, NewRunner().Start("sh", "-c", "touch "+marker))

	assert.Eventually(t, func() bool { _, err := os.Stat(marker); return err == nil }, 2*time.Second, 10*time.Millisecond)
}

func TestExecRunnerStartMissingExecutable(t *testing.T) {
	err := NewRunner().Start("/nonexistent/gotoshell-no-such-app")
	assert.Error(t, err)
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(file, []byte("#!/bin/sh\n"), 0755))
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, nil, 0644))

	assert.True(t, IsDirectory(dir))
	assert.False(t, IsDirectory(file))
	assert.False(t, IsDirectory(filepath.Join(dir, "missing")))
	assert.True(t, IsExecutable(file))
	assert.False(t, IsExecutable(plain))
	assert.False(t, IsExecutable(dir))
}

func TestExpandHomeDir(t *testing.T) {
	t.Setenv("HOME", "/Users/u")
	assert.Equal(t, "/Users/u/Library/Logs", ExpandHomeDir("~/Library/Logs"))
	assert.Equal(t, "/abs", ExpandHomeDir("/abs"))
	assert.Equal(t, "", ExpandHomeDir(""))
}
