package launcher

import (
	"context"
	"fmt"

	"github.com/gotoshell/gotoshell/internal/log"
	"github.com/gotoshell/gotoshell/pkg/terminal"
	"github.com/gotoshell/gotoshell/pkg/utils"
)

// CLISpawn opens a new tab in an already running instance through the
// terminal's CLI (wezterm cli spawn). When the application is not running,
// or the CLI cannot be used, it launches a new instance like Direct.
type CLISpawn struct {
	runner   utils.Runner
	locator  Locator
	fallback Strategy

	// IsExecutable reports whether a CLI candidate can be run. Tests replace it.
	IsExecutable func(path string) bool
}

// NewCLISpawn returns the CLI-spawn strategy falling back to fallback.
func NewCLISpawn(runner utils.Runner, locator Locator, fallback Strategy) *CLISpawn {
	return &CLISpawn{
		runner:       runner,
		locator:      locator,
		fallback:     fallback,
		IsExecutable: utils.IsExecutable,
	}
}

func (c *CLISpawn) Name() string {
	return "cli-spawn"
}

// SpawnArgs returns the CLI arguments for spawning a tab in dir.
func SpawnArgs(dir string) []string {
	return []string{"cli", "spawn", "--cwd", dir}
}

func (c *CLISpawn) Launch(ctx context.Context, info terminal.Info, dir string) (Result, error) {
	if !c.locator.IsRunning(ctx, info.ProcessName) {
		log.Debug("not running, launching new instance", "terminal", info.ID)
		return c.fallback.Launch(ctx, info, dir)
	}

	if err := c.spawn(ctx, info, dir); err != nil {
		log.Warn("cli spawn unavailable, launching new instance", "terminal", info.ID, "err", err)
		return c.fallback.Launch(ctx, info, dir)
	}

	c.activate(info)
	return Result{Action: ActionActivated}, nil
}

func (c *CLISpawn) spawn(ctx context.Context, info terminal.Info, dir string) error {
	tool, ok := c.findTool(info.CLIPaths)
	if !ok {
		return fmt.Errorf("%w: no executable among %v", ErrCLIUnavailable, info.CLIPaths)
	}

	out, err := c.runner.Run(ctx, tool, SpawnArgs(dir)...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCLIUnavailable, err)
	}
	if out.ExitCode != 0 {
		return fmt.Errorf("%w: exit status %d", ErrCLIUnavailable, out.ExitCode)
	}
	return nil
}

func (c *CLISpawn) findTool(paths []string) (string, bool) {
	for _, p := range paths {
		if c.IsExecutable(p) {
			return p, true
		}
	}
	return "", false
}

// ActivateScript raises the application with bundleID.
func ActivateScript(bundleID string) string {
	return fmt.Sprintf("tell application id %s to activate", utils.AppleScriptString(bundleID))
}

func (c *CLISpawn) activate(info terminal.Info) {
	if err := c.runner.Start("osascript", "-e", ActivateScript(info.BundleID)); err != nil {
		log.Warn("failed to activate terminal", "terminal", info.ID, "err", err)
	}
}
