package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/gotoshell/gotoshell/pkg/terminal"
	"github.com/gotoshell/gotoshell/pkg/utils"
)

// TerminalOptions are user overrides for one registry entry.
type TerminalOptions struct {
	AppPath     string   `mapstructure:"app_path"`
	ProcessName string   `mapstructure:"process_name"`
	CLIPaths    []string `mapstructure:"cli_paths"`
}

// TerminalOptions decodes the [terminals.<id>] table for t. Missing
// tables yield zero options.
func (s *Settings) TerminalOptions(t terminal.Terminal) (TerminalOptions, error) {
	var opts TerminalOptions

	raw, ok := s.Terminals[string(t)]
	if !ok || len(raw) == 0 {
		return opts, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &opts,
	})
	if err != nil {
		return TerminalOptions{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return TerminalOptions{}, fmt.Errorf("invalid [terminals.%s]: %w", t, err)
	}

	opts.AppPath = utils.ExpandHomeDir(opts.AppPath)
	for i, p := range opts.CLIPaths {
		opts.CLIPaths[i] = utils.ExpandHomeDir(p)
	}
	return opts, nil
}

// Apply returns info with the overrides in opts applied.
func (o TerminalOptions) Apply(info terminal.Info) terminal.Info {
	if o.AppPath != "" {
		info.AppPath = o.AppPath
	}
	if o.ProcessName != "" {
		info.ProcessName = o.ProcessName
	}
	if len(o.CLIPaths) > 0 {
		info.CLIPaths = append([]string(nil), o.CLIPaths...)
	}
	return info
}
