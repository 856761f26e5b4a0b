package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gotoshell/gotoshell/internal/log"
	"github.com/gotoshell/gotoshell/pkg/config"
	"github.com/gotoshell/gotoshell/pkg/installer"
	"github.com/gotoshell/gotoshell/pkg/launcher"
	"github.com/gotoshell/gotoshell/pkg/location"
	"github.com/gotoshell/gotoshell/pkg/terminal"
	"github.com/gotoshell/gotoshell/pkg/utils"
)

var (
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	installedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	missingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// app carries what the commands share. Tests build one directly with
// fakes in place of the process runner and app locator.
type app struct {
	dir     string
	out     io.Writer
	runner  utils.Runner
	locator launcher.Locator
	notify  func(title, message string) error
	sleep   func(time.Duration)
}

func newApp() (*app, error) {
	dir := configDirFlag
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return nil, err
		}
	}

	runner := utils.NewRunner()
	return &app{
		dir:     dir,
		out:     os.Stdout,
		runner:  runner,
		locator: utils.NewAppLocator(runner),
		notify:  utils.Notify,
		sleep:   time.Sleep,
	}, nil
}

func (a *app) settings() *config.Settings {
	s, err := config.LoadSettings(a.dir)
	if err != nil {
		log.Warn("failed to load settings", "err", err)
		return nil
	}
	return s
}

// open is the helper run: resolve, launch, log, linger for the grace delay.
func (a *app) open(ctx context.Context) {
	settings := a.settings()
	if settings == nil {
		return
	}

	if err := log.Init(settings.LogFile, settings.LogLevel); err != nil {
		log.Warn("failed to open log file", "path", settings.LogFile, "err", err)
	}
	defer log.Close()

	cfg := config.NewStore(a.dir).Load()
	d := launcher.New(launcher.Deps{
		Runner:   a.runner,
		Locator:  a.locator,
		Resolver: location.NewResolver(a.runner, settings.QueryTimeout),
		Settings: settings,
	})

	if settings.LaunchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.LaunchTimeout)
		defer cancel()
	}

	if _, err := d.Open(ctx, cfg); err != nil {
		log.Error("failed to open terminal", "terminal", cfg.Terminal, "err", err)
	}

	// detached children need a moment before the helper exits
	a.sleep(settings.GraceDelay)
}

func (a *app) installed(ctx context.Context, settings *config.Settings, t terminal.Terminal) bool {
	info := t.Info()
	if settings != nil {
		if opts, err := settings.TerminalOptions(t); err == nil {
			info = opts.Apply(info)
		}
	}
	if info.AppPath != "" {
		return utils.IsDirectory(info.AppPath)
	}
	_, ok := a.locator.AppPath(ctx, info.BundleID, info.BundleName)
	return ok
}

func (a *app) list(ctx context.Context) error {
	settings := a.settings()
	selected := config.NewStore(a.dir).Load().Terminal

	for _, info := range terminal.All() {
		mark, name := " ", fmt.Sprintf("%-10s", info.Name)
		if info.ID == selected {
			mark, name = "*", selectedStyle.Render(name)
		}

		status := missingStyle.Render("not installed")
		if a.installed(ctx, settings, info.ID) {
			status = installedStyle.Render("installed")
		}

		fmt.Fprintf(a.out, "%s %-10s %s %-10s %s\n", mark, info.ID, name, info.Strategy, status)
	}
	return nil
}

func (a *app) set(ctx context.Context, id string) error {
	t, err := terminal.Parse(strings.TrimSpace(id))
	if err != nil {
		return err
	}

	store := config.NewStore(a.dir)
	cfg := store.Load()
	cfg.Terminal = t

	info := t.Info()
	if !a.installed(ctx, a.settings(), t) {
		log.Warn("selected terminal is not installed", "terminal", t)
		fmt.Fprintf(a.out, "Warning: %s does not appear to be installed\n", info.Name)
	}

	if err := store.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Terminal set to %s\n", info.Name)

	if err := a.notify("GoToShell", "Settings saved"); err != nil {
		log.Debug("notification failed", "err", err)
	}
	return nil
}

func (a *app) show() {
	store := config.NewStore(a.dir)
	cfg := store.Load()

	fmt.Fprintf(a.out, "Terminal: %s (%s)\n", cfg.Terminal, cfg.Terminal.Info().Name)
	fmt.Fprintf(a.out, "Command:  %q\n", cfg.Command)
	fmt.Fprintf(a.out, "Config:   %s\n", store.Path())
	fmt.Fprintf(a.out, "Settings: %s\n", config.SettingsPath(a.dir))
}

func (a *app) initSettings() error {
	path, err := config.InitSettings(a.dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Settings initialized at: %s\n", path)
	fmt.Fprintln(a.out, "\nEdit the file to change timeouts, logging or terminal paths.")
	return nil
}

func (a *app) install(ctx context.Context, bundle string) error {
	inst, err := installer.New(a.runner, bundle)
	if err != nil {
		return err
	}

	helper, err := inst.Reveal(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Revealed %s\n", helper)
	return nil
}
