package launcher

import (
	"context"
	"fmt"

	"github.com/alessio/shellescape"

	"github.com/gotoshell/gotoshell/pkg/terminal"
	"github.com/gotoshell/gotoshell/pkg/utils"
)

// Scripted opens Terminal.app and iTerm2 through AppleScript, the only
// reliable way to give them a working directory.
type Scripted struct {
	runner utils.Runner
}

// NewScripted returns the AppleScript strategy.
func NewScripted(runner utils.Runner) *Scripted {
	return &Scripted{runner: runner}
}

func (s *Scripted) Name() string {
	return "scripted"
}

// ChangeDirCommand returns the shell command that switches to dir. The
// path is single-quoted so spaces, quotes and metacharacters stay literal.
func ChangeDirCommand(dir string) string {
	return "cd " + shellescape.Quote(dir)
}

// BuildScript returns the AppleScript that opens dir in info's terminal.
func BuildScript(info terminal.Info, dir string) (string, error) {
	command := utils.AppleScriptString(ChangeDirCommand(dir))

	switch info.ID {
	case terminal.AppleTerminal:
		return fmt.Sprintf(`tell application "Terminal"
	activate
	do script %s
end tell`, command), nil

	case terminal.ITerm2:
		return fmt.Sprintf(`tell application "iTerm"
	activate
	try
		tell current window
			create tab with default profile
		end tell
	on error
		create window with default profile
	end try
	tell current session of current window
		write text %s
	end tell
end tell`, command), nil

	default:
		return "", fmt.Errorf("no script for %s", info.Name)
	}
}

func (s *Scripted) Launch(ctx context.Context, info terminal.Info, dir string) (Result, error) {
	script, err := BuildScript(info, dir)
	if err != nil {
		return Result{}, err
	}

	if _, err := s.runner.Run(ctx, "osascript", "-e", script); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrScriptFailed, err)
	}
	return Result{Action: ActionScripted}, nil
}
