package utils

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// AppLocator finds installed applications and running processes.
type AppLocator struct {
	runner Runner

	// AppDirs are scanned for "<name>.app" when Spotlight has no answer.
	AppDirs []string
	// Exists reports whether a path exists. Tests replace it.
	Exists func(path string) bool
}

// NewAppLocator returns a locator using the standard application folders.
func NewAppLocator(runner Runner) *AppLocator {
	return &AppLocator{
		runner: runner,
		AppDirs: []string{
			"/Applications",
			"/System/Applications",
			"/System/Applications/Utilities",
			filepath.Join(GetHomeDir(), "Applications"),
		},
		Exists: IsDirectory,
	}
}

// AppPath returns the bundle path of the application with bundleID,
// asking Spotlight first and then checking the application folders for
// bundleName.app.
func (l *AppLocator) AppPath(ctx context.Context, bundleID, bundleName string) (string, bool) {
	if path, ok := l.spotlight(ctx, bundleID); ok {
		return path, true
	}

	if bundleName == "" {
		return "", false
	}
	for _, dir := range l.AppDirs {
		path := filepath.Join(dir, bundleName+".app")
		if l.Exists(path) {
			return path, true
		}
	}
	return "", false
}

func (l *AppLocator) spotlight(ctx context.Context, bundleID string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	query := fmt.Sprintf("kMDItemCFBundleIdentifier == '%s'", strings.ReplaceAll(bundleID, "'", ""))
	out, err := l.runner.Run(ctx, "mdfind", query)
	if err != nil {
		return "", false
	}
	text, ok := out.Text()
	if !ok {
		return "", false
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, ".app") && l.Exists(line) {
			return line, true
		}
	}
	return "", false
}

// IsRunning checks if a process with the exact given name is running
func (l *AppLocator) IsRunning(ctx context.Context, processName string) bool {
	if processName == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	out, err := l.runner.Run(ctx, "pgrep", "-x", processName)
	return err == nil && out.ExitCode == 0
}
