// Package terminal is the fixed registry of terminal emulators gotoshell
// knows how to open. Each entry carries the identifiers used to find,
// launch and detect the application, and the launch strategy it needs.
package terminal

import (
	"fmt"
	"strings"
)

// Strategy is the launch mechanism a terminal requires.
type Strategy int

const (
	// Scripted drives the application through AppleScript.
	Scripted Strategy = iota
	// Direct opens a new instance with the directory as argument.
	Direct
	// CLISpawn asks a running instance to spawn a tab via its CLI tool.
	CLISpawn
)

// String returns the strategy name
func (s Strategy) String() string {
	switch s {
	case Scripted:
		return "scripted"
	case Direct:
		return "direct"
	case CLISpawn:
		return "cli-spawn"
	default:
		return "unknown"
	}
}

// Terminal is one of the supported terminal applications.
type Terminal string

const (
	AppleTerminal Terminal = "terminal"
	ITerm2        Terminal = "iterm2"
	Ghostty       Terminal = "ghostty"
	Warp          Terminal = "warp"
	Alacritty     Terminal = "alacritty"
	Hyper         Terminal = "hyper"
	Kitty         Terminal = "kitty"
	WezTerm       Terminal = "wezterm"
	Tabby         Terminal = "tabby"
	BlackBox      Terminal = "blackbox"
)

// Default is the terminal used when nothing valid is configured.
const Default = AppleTerminal

// Info describes a registry entry.
type Info struct {
	ID          Terminal
	Name        string // display name
	BundleID    string
	BundleName  string // "<BundleName>.app" under the application folders
	ProcessName string // executable name reported by pgrep, CLISpawn only
	AppPath     string // fixed bundle path, skips lookup when set
	CLIPaths    []string
	Strategy    Strategy
}

// Order matters: it is the order terminals are listed in.
var registry = []Info{
	{ID: AppleTerminal, Name: "Terminal", BundleID: "com.apple.Terminal", BundleName: "Terminal", Strategy: Scripted},
	{ID: ITerm2, Name: "iTerm2", BundleID: "com.googlecode.iterm2", BundleName: "iTerm", Strategy: Scripted},
	{ID: Ghostty, Name: "Ghostty", BundleID: "com.mitchellh.ghostty", BundleName: "Ghostty", Strategy: Direct},
	{ID: Warp, Name: "Warp", BundleID: "dev.warp.Warp", BundleName: "Warp", Strategy: Direct},
	{ID: Alacritty, Name: "Alacritty", BundleID: "org.alacritty", BundleName: "Alacritty", Strategy: Direct},
	{ID: Hyper, Name: "Hyper", BundleID: "co.zeit.hyper", BundleName: "Hyper", Strategy: Direct},
	{ID: Kitty, Name: "Kitty", BundleID: "net.kovidgoyal.kitty", BundleName: "kitty", Strategy: Direct},
	{
		ID:          WezTerm,
		Name:        "WezTerm",
		BundleID:    "com.github.wez.wezterm",
		BundleName:  "WezTerm",
		ProcessName: "wezterm-gui",
		CLIPaths: []string{
			"/Applications/WezTerm.app/Contents/MacOS/wezterm",
			"/opt/homebrew/bin/wezterm",
			"/usr/local/bin/wezterm",
		},
		Strategy: CLISpawn,
	},
	{ID: Tabby, Name: "Tabby", BundleID: "org.tabby", BundleName: "Tabby", Strategy: Direct},
	{ID: BlackBox, Name: "Black Box", BundleID: "com.blackboxterminal.blackbox", BundleName: "Black Box", Strategy: Direct},
}

var byID = func() map[Terminal]int {
	m := make(map[Terminal]int, len(registry))
	for i, info := range registry {
		m[info.ID] = i
	}
	return m
}()

// All returns every registered terminal in display order.
func All() []Info {
	out := make([]Info, len(registry))
	for i, info := range registry {
		out[i] = info.clone()
	}
	return out
}

// IDs returns the identifiers of all registered terminals.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, info := range registry {
		ids[i] = string(info.ID)
	}
	return ids
}

// Parse returns the terminal with the given identifier. Matching is exact.
func Parse(s string) (Terminal, error) {
	t := Terminal(s)
	if _, ok := byID[t]; !ok {
		return "", fmt.Errorf("unknown terminal %q (valid: %s)", s, strings.Join(IDs(), ", "))
	}
	return t, nil
}

// Valid reports whether t is a registered terminal.
func (t Terminal) Valid() bool {
	_, ok := byID[t]
	return ok
}

// Info returns the registry entry for t. Unknown values yield the entry
// of Default.
func (t Terminal) Info() Info {
	if i, ok := byID[t]; ok {
		return registry[i].clone()
	}
	return registry[byID[Default]].clone()
}

func (t Terminal) String() string { return string(t) }

// MarshalText implements encoding.TextMarshaler.
func (t Terminal) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown terminal %q", string(t))
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown identifiers
// are rejected.
func (t *Terminal) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (i Info) clone() Info {
	i.CLIPaths = append([]string(nil), i.CLIPaths...)
	return i
}
