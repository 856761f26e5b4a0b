package launcher

import "errors"

var (
	// ErrAppNotInstalled is returned when the target application cannot be found
	ErrAppNotInstalled = errors.New("application not installed")

	// ErrScriptFailed is returned when an AppleScript call fails or exits non-zero
	ErrScriptFailed = errors.New("script execution failed")

	// ErrLaunchFailed is returned when `open` cannot be started
	ErrLaunchFailed = errors.New("launch failed")

	// ErrCLIUnavailable marks a CLI spawn attempt that could not be used.
	// It triggers the direct-launch fallback and is never returned.
	ErrCLIUnavailable = errors.New("cli tool unavailable or failed")
)

// IsNotInstalled reports whether err means the application is missing
func IsNotInstalled(err error) bool {
	return errors.Is(err, ErrAppNotInstalled)
}
