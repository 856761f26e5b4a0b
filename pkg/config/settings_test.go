package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotoshell/gotoshell/pkg/terminal"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(SettingsPath(dir), []byte(content), 0644))
	return dir
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, s.QueryTimeout)
	assert.Equal(t, 30*time.Second, s.LaunchTimeout)
	assert.Equal(t, time.Second, s.GraceDelay)
	assert.Equal(t, "info", s.LogLevel)
	assert.True(t, filepath.IsAbs(s.LogFile) || s.LogFile[0] == '~')
	assert.Contains(t, s.LogFile, "GoToShellHelper.log")
	assert.Empty(t, s.Terminals)
}

func TestLoadSettingsOverlay(t *testing.T) {
	dir := writeSettings(t, `
query_timeout = "500ms"
log_level = "debug"

[terminals.ghostty]
app_path = "/Opt/Ghostty.app"
`)

	s, err := LoadSettings(dir)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, s.QueryTimeout)
	assert.Equal(t, "debug", s.LogLevel)
	// untouched keys keep defaults
	assert.Equal(t, 30*time.Second, s.LaunchTimeout)
	assert.Equal(t, time.Second, s.GraceDelay)

	opts, err := s.TerminalOptions(terminal.Ghostty)
	require.NoError(t, err)
	assert.Equal(t, "/Opt/Ghostty.app", opts.AppPath)
}

func TestLoadSettingsInvalidDurationKeepsDefault(t *testing.T) {
	dir := writeSettings(t, `
grace_delay = "soon"
query_timeout = "-1s"
`)

	s, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, time.Second, s.GraceDelay)
	assert.Equal(t, 2*time.Second, s.QueryTimeout)
}

func TestLoadSettingsBrokenFileUsesDefaults(t *testing.T) {
	dir := writeSettings(t, "this is = = not toml [")

	s, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, s.QueryTimeout)
}

func TestTerminalOptionsWeakDecoding(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want []string
	}{
		{
			name: "list",
			toml: `cli_paths = ["/a/wezterm", "/b/wezterm"]`,
			want: []string{"/a/wezterm", "/b/wezterm"},
		},
		{
			name: "single string",
			toml: `cli_paths = "/a/wezterm"`,
			want: []string{"/a/wezterm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSettings(t, "[terminals.wezterm]\n"+tt.toml+"\nprocess_name = \"wez\"\n")
			s, err := LoadSettings(dir)
			require.NoError(t, err)

			opts, err := s.TerminalOptions(terminal.WezTerm)
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.CLIPaths)
			assert.Equal(t, "wez", opts.ProcessName)

			info := opts.Apply(terminal.WezTerm.Info())
			assert.Equal(t, tt.want, info.CLIPaths)
			assert.Equal(t, "wez", info.ProcessName)
		})
	}
}

func TestTerminalOptionsUnknownKey(t *testing.T) {
	dir := writeSettings(t, "[terminals.kitty]\nap_path = \"/typo\"\n")
	s, err := LoadSettings(dir)
	require.NoError(t, err)

	_, err = s.TerminalOptions(terminal.Kitty)
	assert.ErrorContains(t, err, "terminals.kitty")
}

func TestTerminalOptionsMissingTable(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	require.NoError(t, err)

	opts, err := s.TerminalOptions(terminal.Tabby)
	require.NoError(t, err)
	assert.Equal(t, TerminalOptions{}, opts)

	info := opts.Apply(terminal.WezTerm.Info())
	assert.Equal(t, terminal.WezTerm.Info(), info)
}

func TestInitSettings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "GoToShell")

	path, err := InitSettings(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettingsContent(), string(data))

	_, err = InitSettings(dir)
	assert.ErrorContains(t, err, "already exist")
}

func TestLoadSettingsFsOverlay(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/support/GoToShell/helper.toml", []byte(`
launch_timeout = "5s"
log_file = "~/Logs/helper.log"
`), 0644))

	s, err := LoadSettingsFs(fs, "/support/GoToShell")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, s.LaunchTimeout)
	assert.Equal(t, 2*time.Second, s.QueryTimeout)
	assert.NotContains(t, s.LogFile, "~")
	assert.True(t, filepath.IsAbs(s.LogFile))
}

func TestLoadSettingsFsBrokenFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/helper.toml", []byte("query_timeout = "), 0644))

	s, err := LoadSettingsFs(fs, "/cfg")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, s.QueryTimeout)
}

func TestInitSettingsFs(t *testing.T) {
	fs := afero.NewMemMapFs()

	path, err := InitSettingsFs(fs, "/support/GoToShell")
	require.NoError(t, err)
	assert.Equal(t, "/support/GoToShell/helper.toml", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettingsContent(), string(data))

	_, err = InitSettingsFs(fs, "/support/GoToShell")
	assert.ErrorContains(t, err, "already exist")
}

func TestInitSettingsFsReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := InitSettingsFs(fs, "/support/GoToShell")
	assert.ErrorContains(t, err, "failed to create config directory")
}
