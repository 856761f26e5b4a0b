// Package location determines the directory a terminal should open in:
// the folder shown in Finder's front window, or the home directory.
package location

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gotoshell/gotoshell/internal/log"
	"github.com/gotoshell/gotoshell/pkg/utils"
)

// DefaultTimeout bounds the Finder query.
const DefaultTimeout = 2 * time.Second

// FinderScript asks Finder for the POSIX path of its front window.
const FinderScript = `tell application "Finder"
	if (count of windows) > 0 then
		set currentPath to (POSIX path of (target of front window as alias))
	else
		set currentPath to POSIX path of (path to home folder)
	end if
	return currentPath
end tell`

// Resolver implements the Finder query with a home-directory fallback.
type Resolver struct {
	runner  Runner
	Timeout time.Duration
	Home    string
	// IsDir reports whether a path is an existing directory. Tests replace it.
	IsDir func(path string) bool
}

// Runner is the part of utils.Runner the resolver needs.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (utils.Output, error)
}

// NewResolver returns a resolver using runner for the Finder query.
func NewResolver(runner Runner, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		runner:  runner,
		Timeout: timeout,
		Home:    homeOrRoot(utils.GetHomeDir()),
		IsDir:   utils.IsDirectory,
	}
}

// Resolve returns the current Finder directory. It never fails; any
// problem with the query yields the home directory.
func (r *Resolver) Resolve(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	out, err := r.runner.Run(ctx, "osascript", "-e", FinderScript)
	if err != nil {
		log.Warn("finder query failed, using home directory", "err", err)
		return homeOrRoot(r.Home)
	}

	text, ok := out.Text()
	if !ok {
		log.Debug("finder returned no path, using home directory")
		return homeOrRoot(r.Home)
	}

	dir := filepath.Clean(text)
	if !filepath.IsAbs(dir) || !r.IsDir(dir) {
		log.Warn("finder returned unusable path, using home directory", "path", text)
		return homeOrRoot(r.Home)
	}

	return dir
}

// homeOrRoot keeps the fallback usable when no home directory is known.
func homeOrRoot(home string) string {
	if home == "" {
		return "/"
	}
	return home
}
