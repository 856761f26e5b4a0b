package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"
)

// AlertStyle selects the icon of a blocking alert.
type AlertStyle string

const (
	AlertInformational AlertStyle = "informational"
	AlertCritical      AlertStyle = "critical"
)

// AppleScriptString quotes s as an AppleScript string literal.
func AppleScriptString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// AlertScript builds the `display alert` script for ShowAlert.
func AlertScript(title, message string, style AlertStyle, button string) string {
	return fmt.Sprintf("display alert %s message %s as %s buttons {%s} default button 1",
		AppleScriptString(title),
		AppleScriptString(message),
		style,
		AppleScriptString(button))
}

// ShowAlert shows a modal alert and blocks until the user dismisses it.
func ShowAlert(ctx context.Context, runner Runner, title, message string, style AlertStyle) error {
	_, err := runner.Run(ctx, "osascript", "-e", AlertScript(title, message, style, "OK"))
	if err != nil {
		return fmt.Errorf("failed to show alert: %w", err)
	}
	return nil
}

// notify is swapped out in tests.
var notify = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Notify sends a desktop notification. Failures are returned, not fatal.
func Notify(title, message string) error {
	return notify(title, message)
}
