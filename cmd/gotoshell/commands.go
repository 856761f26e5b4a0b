package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gotoshell/gotoshell/internal/log"
)

var configDirFlag string

var rootCmd = &cobra.Command{
	Use:   "gotoshell",
	Short: "Open a terminal in the current Finder folder",
	Long: "GoToShell opens the configured terminal in the folder shown by the\n" +
		"front Finder window, or in your home folder when there is none.\n\n" +
		"Run without a subcommand it behaves like the Finder toolbar helper.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run:           runOpen,
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the configured terminal in the current Finder folder",
	Args:  cobra.NoArgs,
	Run:   runOpen,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported terminals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.list(cmd.Context())
	},
}

var setCmd = &cobra.Command{
	Use:   "set <terminal>",
	Short: "Select the terminal to open",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.set(cmd.Context(), args[0])
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		a.show()
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default helper.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.initSettings()
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Reveal the helper in Finder so it can be added to the toolbar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		bundle, _ := cmd.Flags().GetString("bundle")
		return a.install(cmd.Context(), bundle)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gotoshell version %s\n", Version)
	},
}

// runOpen never fails: the helper is started by Finder and has nobody to
// report an exit status to.
func runOpen(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		log.Error("failed to start", "err", err)
		return
	}
	a.open(cmd.Context())
}
