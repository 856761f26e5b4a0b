// Package installer reveals the helper application in Finder so it can be
// dragged onto the Finder toolbar.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gotoshell/gotoshell/internal/log"
	"github.com/gotoshell/gotoshell/pkg/utils"
)

// HelperName is the helper bundle shipped inside the settings app.
const HelperName = "GoToShellHelper.app"

// ErrHelperBundleMissing is returned when neither bundle location holds the
// helper.
var ErrHelperBundleMissing = errors.New(HelperName + " not found in application bundle")

const (
	toolbarTitle       = "Add GoToShell to the Finder toolbar"
	toolbarInstruction = "Hold the Command key and drag " + HelperName +
		" from the selected Finder window onto the Finder toolbar. " +
		"Click it in any Finder window to open a terminal there."
	missingMessage = HelperName + " not found in application bundle."
)

// revealDelay lets Finder come forward before the alert appears.
var revealDelay = 500 * time.Millisecond

// Installer locates the helper inside AppBundle and reveals it.
type Installer struct {
	AppBundle string
	Runner    utils.Runner
}

// New returns an installer for the given bundle. An empty bundle means the
// .app enclosing the running executable.
func New(runner utils.Runner, bundle string) (*Installer, error) {
	if bundle == "" {
		var err error
		if bundle, err = EnclosingBundle(); err != nil {
			return nil, err
		}
	}
	return &Installer{AppBundle: bundle, Runner: runner}, nil
}

// EnclosingBundle returns the .app directory containing the executable.
func EnclosingBundle() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to find executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	for dir := filepath.Dir(exe); dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		if strings.HasSuffix(dir, ".app") {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%s is not inside an application bundle", exe)
}

func (i *Installer) macOSPath() string {
	return filepath.Join(i.AppBundle, "Contents", "MacOS", HelperName)
}

func (i *Installer) resourcesPath() string {
	return filepath.Join(i.AppBundle, "Contents", "Resources", HelperName)
}

// Locate returns the helper path. A helper found only under Resources is
// copied next to the main executable first; if that copy fails the
// Resources copy is used.
func (i *Installer) Locate() (string, error) {
	macos := i.macOSPath()
	if utils.IsDirectory(macos) {
		return macos, nil
	}

	resources := i.resourcesPath()
	if !utils.IsDirectory(resources) {
		return "", ErrHelperBundleMissing
	}

	if err := copyBundle(resources, macos); err != nil {
		log.Warn("failed to copy helper, using Resources copy", "err", err)
		_ = os.RemoveAll(macos)
		return resources, nil
	}
	log.Info("copied helper", "from", resources, "to", macos)
	return macos, nil
}

// Reveal selects the helper in Finder and then blocks on an alert with
// toolbar instructions. A missing helper is reported with a critical alert.
func (i *Installer) Reveal(ctx context.Context) (string, error) {
	helper, err := i.Locate()
	if err != nil {
		log.Error("helper not found", "bundle", i.AppBundle)
		if alertErr := utils.ShowAlert(ctx, i.Runner, "Error", missingMessage, utils.AlertCritical); alertErr != nil {
			log.Warn("failed to show alert", "err", alertErr)
		}
		return "", err
	}

	if _, err := i.Runner.Run(ctx, "open", "-R", helper); err != nil {
		return helper, fmt.Errorf("failed to reveal %s: %w", helper, err)
	}

	select {
	case <-time.After(revealDelay):
	case <-ctx.Done():
		return helper, ctx.Err()
	}

	if err := utils.ShowAlert(ctx, i.Runner, toolbarTitle, toolbarInstruction, utils.AlertInformational); err != nil {
		log.Warn("failed to show alert", "err", err)
	}
	return helper, nil
}
