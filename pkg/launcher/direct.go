package launcher

import (
	"context"
	"fmt"

	"github.com/gotoshell/gotoshell/internal/log"
	"github.com/gotoshell/gotoshell/pkg/terminal"
	"github.com/gotoshell/gotoshell/pkg/utils"
)

// Direct opens a fresh instance of the application with the directory as
// its document: open -n -a <app> <dir>.
type Direct struct {
	runner  utils.Runner
	locator Locator
}

// NewDirect returns the direct-launch strategy.
func NewDirect(runner utils.Runner, locator Locator) *Direct {
	return &Direct{runner: runner, locator: locator}
}

func (d *Direct) Name() string {
	return "direct"
}

// OpenArgs returns the arguments passed to /usr/bin/open.
func OpenArgs(appPath, dir string) []string {
	return []string{"-n", "-a", appPath, dir}
}

func (d *Direct) Launch(ctx context.Context, info terminal.Info, dir string) (Result, error) {
	appPath := info.AppPath
	if appPath == "" {
		var ok bool
		appPath, ok = d.locator.AppPath(ctx, info.BundleID, info.BundleName)
		if !ok {
			log.Warn("application not installed", "bundle_id", info.BundleID)
			return Result{}, fmt.Errorf("%w: %s", ErrAppNotInstalled, info.BundleID)
		}
	}

	if err := d.runner.Start("open", OpenArgs(appPath, dir)...); err != nil {
		return Result{AppPath: appPath}, fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}
	return Result{Action: ActionLaunched, AppPath: appPath}, nil
}
