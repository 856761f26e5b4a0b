package config

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/gotoshell/gotoshell/internal/log"
	"github.com/gotoshell/gotoshell/pkg/utils"
)

//go:embed default.toml
var defaultSettingsData string

const settingsFileName = "helper.toml"

const (
	defaultQueryTimeout  = 2 * time.Second
	defaultLaunchTimeout = 30 * time.Second
	defaultGraceDelay    = time.Second
)

// Settings tunes the helper. Everything has a usable default.
type Settings struct {
	QueryTimeout  time.Duration
	LaunchTimeout time.Duration
	GraceDelay    time.Duration
	LogLevel      string
	LogFile       string

	// Terminals holds raw per-terminal tables, decoded lazily by
	// TerminalOptions.
	Terminals map[string]map[string]any
}

// settingsFile is the TOML shape. Pointers mark keys present in the file.
type settingsFile struct {
	QueryTimeout  *string                   `toml:"query_timeout"`
	LaunchTimeout *string                   `toml:"launch_timeout"`
	GraceDelay    *string                   `toml:"grace_delay"`
	LogLevel      *string                   `toml:"log_level"`
	LogFile       *string                   `toml:"log_file"`
	Terminals     map[string]map[string]any `toml:"terminals"`
}

// SettingsPath returns the helper.toml path inside dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, settingsFileName)
}

// LoadSettings returns the defaults merged with dir/helper.toml. A missing
// file is not an error; a broken one is logged and ignored.
func LoadSettings(dir string) (*Settings, error) {
	return LoadSettingsFs(afero.NewOsFs(), dir)
}

// LoadSettingsFs is LoadSettings on the given filesystem.
func LoadSettingsFs(fs afero.Fs, dir string) (*Settings, error) {
	defaults, err := loadDefaultSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load default settings: %w", err)
	}

	path := SettingsPath(dir)
	if _, err := fs.Stat(path); err != nil {
		return defaults, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		log.Warn("failed to read helper settings, using defaults", "path", path, "err", err)
		return defaults, nil
	}

	var user settingsFile
	if _, err := toml.Decode(string(data), &user); err != nil {
		log.Warn("failed to load helper settings, using defaults", "path", path, "err", err)
		return defaults, nil
	}

	mergeSettings(defaults, &user)
	return defaults, nil
}

func loadDefaultSettings() (*Settings, error) {
	var f settingsFile
	if _, err := toml.Decode(defaultSettingsData, &f); err != nil {
		return nil, err
	}
	s := &Settings{
		QueryTimeout:  defaultQueryTimeout,
		LaunchTimeout: defaultLaunchTimeout,
		GraceDelay:    defaultGraceDelay,
		Terminals:     map[string]map[string]any{},
	}
	mergeSettings(s, &f)
	return s, nil
}

// mergeSettings overlays the keys present in f onto s.
func mergeSettings(s *Settings, f *settingsFile) {
	mergeDuration(&s.QueryTimeout, f.QueryTimeout, "query_timeout")
	mergeDuration(&s.LaunchTimeout, f.LaunchTimeout, "launch_timeout")
	mergeDuration(&s.GraceDelay, f.GraceDelay, "grace_delay")

	if f.LogLevel != nil && *f.LogLevel != "" {
		s.LogLevel = *f.LogLevel
	}
	if f.LogFile != nil {
		s.LogFile = utils.ExpandHomeDir(*f.LogFile)
	}

	for id, table := range f.Terminals {
		merged, ok := s.Terminals[id]
		if !ok {
			merged = map[string]any{}
			s.Terminals[id] = merged
		}
		for k, v := range table {
			merged[k] = v
		}
	}
}

func mergeDuration(dst *time.Duration, raw *string, key string) {
	if raw == nil || *raw == "" {
		return
	}
	d, err := time.ParseDuration(*raw)
	if err != nil || d < 0 {
		log.Warn("ignoring invalid duration", "key", key, "value", *raw)
		return
	}
	*dst = d
}

// InitSettings writes the default helper.toml into dir.
func InitSettings(dir string) (string, error) {
	return InitSettingsFs(afero.NewOsFs(), dir)
}

// InitSettingsFs is InitSettings on the given filesystem.
func InitSettingsFs(fs afero.Fs, dir string) (string, error) {
	path := SettingsPath(dir)

	if _, err := fs.Stat(path); err == nil {
		return path, fmt.Errorf("settings already exist: %s", path)
	}

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return path, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := afero.WriteFile(fs, path, []byte(defaultSettingsData), 0644); err != nil {
		return path, fmt.Errorf("failed to write settings file: %w", err)
	}

	return path, nil
}

// DefaultSettingsContent returns the embedded helper.toml.
func DefaultSettingsContent() string {
	return defaultSettingsData
}
