// Package config provides configuration management for gotoshell.
// It persists the selected terminal in config.json, shared with the
// settings surface, and loads the optional helper.toml tuning file
// merged over embedded defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/gotoshell/gotoshell/pkg/terminal"
)

const (
	appDirName     = "GoToShell"
	configFileName = "config.json"

	// EnvConfigDir overrides the per-user application data directory.
	EnvConfigDir = "GOTOSHELL_CONFIG_DIR"
)

// LaunchConfig is the persisted terminal selection.
type LaunchConfig struct {
	Terminal terminal.Terminal `json:"terminal"`
	// Command is reserved and currently unused.
	Command string `json:"command"`
}

// DefaultLaunchConfig returns the record used when nothing valid is persisted.
func DefaultLaunchConfig() LaunchConfig {
	return LaunchConfig{Terminal: terminal.Default, Command: ""}
}

// configFile is the on-disk shape. Pointers tell missing keys apart.
type configFile struct {
	Terminal *terminal.Terminal `json:"terminal"`
	Command  *string            `json:"command"`
}

// DefaultDir returns the per-user application data directory
// (~/Library/Application Support/GoToShell on macOS).
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// Store reads and writes config.json inside a directory.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore returns a store rooted at dir on the OS filesystem.
func NewStore(dir string) *Store {
	return NewStoreFs(afero.NewOsFs(), dir)
}

// NewStoreFs returns a store rooted at dir on fs.
func NewStoreFs(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path of config.json.
func (s *Store) Path() string {
	return filepath.Join(s.dir, configFileName)
}

// Load returns the persisted config. Any read or decode failure yields
// DefaultLaunchConfig.
func (s *Store) Load() LaunchConfig {
	cfg, err := s.read()
	if err != nil {
		return DefaultLaunchConfig()
	}
	return cfg
}

func (s *Store) read() (LaunchConfig, error) {
	data, err := afero.ReadFile(s.fs, s.Path())
	if err != nil {
		return LaunchConfig{}, err
	}
	return decodeLaunchConfig(data)
}

func decodeLaunchConfig(data []byte) (LaunchConfig, error) {
	var f configFile
	if err := json.Unmarshal(data, &f); err != nil {
		return LaunchConfig{}, fmt.Errorf("failed to decode %s: %w", configFileName, err)
	}
	if f.Terminal == nil {
		return LaunchConfig{}, errors.New("missing terminal")
	}
	cfg := LaunchConfig{Terminal: *f.Terminal}
	if f.Command != nil {
		cfg.Command = *f.Command
	}
	return cfg, nil
}

// Save writes cfg, creating the directory if needed. The file is written
// to a temporary sibling and renamed into place so readers never see a
// partial file.
func (s *Store) Save(cfg LaunchConfig) error {
	if !cfg.Terminal.Valid() {
		return fmt.Errorf("refusing to save unknown terminal %q", cfg.Terminal)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return writeFileAtomic(s.fs, s.Path(), data, 0644)
}

func writeFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer fs.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := fs.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
