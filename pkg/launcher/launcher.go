// Package launcher opens a directory in the configured terminal. Each
// terminal maps to one of three strategies: AppleScript activation, a
// forced-new-instance `open`, or spawning into a running instance through
// the terminal's CLI with a direct-launch fallback.
package launcher

import (
	"context"
	"fmt"

	"github.com/gotoshell/gotoshell/internal/log"
	"github.com/gotoshell/gotoshell/pkg/config"
	"github.com/gotoshell/gotoshell/pkg/terminal"
	"github.com/gotoshell/gotoshell/pkg/utils"
)

// Action is what a launch ended up doing.
type Action int

const (
	ActionNone Action = iota
	// ActionScripted ran an AppleScript against the terminal.
	ActionScripted
	// ActionLaunched started a new instance with `open -n`.
	ActionLaunched
	// ActionActivated spawned into and raised a running instance.
	ActionActivated
)

func (a Action) String() string {
	switch a {
	case ActionScripted:
		return "scripted"
	case ActionLaunched:
		return "launched"
	case ActionActivated:
		return "activated"
	default:
		return "none"
	}
}

// Result describes a completed launch.
type Result struct {
	Terminal terminal.Terminal
	Dir      string
	Action   Action
	AppPath  string // set for launches that located the application
}

// Strategy opens dir in the terminal described by info.
type Strategy interface {
	Name() string
	Launch(ctx context.Context, info terminal.Info, dir string) (Result, error)
}

// Locator finds applications and running processes.
type Locator interface {
	AppPath(ctx context.Context, bundleID, bundleName string) (string, bool)
	IsRunning(ctx context.Context, processName string) bool
}

// Resolver yields the directory to open.
type Resolver interface {
	Resolve(ctx context.Context) string
}

// Dispatcher resolves the current directory and launches the selected
// terminal in it.
type Dispatcher struct {
	resolver   Resolver
	strategies map[terminal.Strategy]Strategy
	settings   *config.Settings
}

// Deps are the collaborators a Dispatcher is built from.
type Deps struct {
	Runner   utils.Runner
	Locator  Locator
	Resolver Resolver
	// Settings supplies per-terminal overrides; nil means none.
	Settings *config.Settings
}

// New builds a Dispatcher with the standard strategy table.
func New(d Deps) *Dispatcher {
	direct := NewDirect(d.Runner, d.Locator)

	return &Dispatcher{
		resolver: d.Resolver,
		strategies: map[terminal.Strategy]Strategy{
			terminal.Scripted: NewScripted(d.Runner),
			terminal.Direct:   direct,
			terminal.CLISpawn: NewCLISpawn(d.Runner, d.Locator, direct),
		},
		settings: d.Settings,
	}
}

// StrategyFor returns the strategy used for t.
func (d *Dispatcher) StrategyFor(t terminal.Terminal) Strategy {
	return d.strategies[t.Info().Strategy]
}

// Open launches cfg's terminal in the current Finder directory.
func (d *Dispatcher) Open(ctx context.Context, cfg config.LaunchConfig) (Result, error) {
	dir := d.resolver.Resolve(ctx)
	return d.OpenDir(ctx, cfg.Terminal, dir)
}

// OpenDir launches t in dir.
func (d *Dispatcher) OpenDir(ctx context.Context, t terminal.Terminal, dir string) (Result, error) {
	if !t.Valid() {
		return Result{}, fmt.Errorf("unknown terminal %q", t)
	}

	info := t.Info()
	if d.settings != nil {
		opts, err := d.settings.TerminalOptions(t)
		if err != nil {
			log.Warn("ignoring terminal overrides", "terminal", t, "err", err)
		} else {
			info = opts.Apply(info)
		}
	}

	strategy := d.StrategyFor(t)
	log.Info("opening terminal", "terminal", t, "strategy", strategy.Name(), "dir", dir)

	res, err := strategy.Launch(ctx, info, dir)
	res.Terminal, res.Dir = t, dir
	if err != nil {
		return res, fmt.Errorf("%s: %w", info.Name, err)
	}

	log.Info("terminal opened", "terminal", t, "action", res.Action)
	return res, nil
}
