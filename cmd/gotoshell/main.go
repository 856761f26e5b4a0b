package main

import (
	"os"
	"strings"

	"github.com/gotoshell/gotoshell/internal/log"
)

var Version = "dev"

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "directory holding config.json and helper.toml")
	installCmd.Flags().String("bundle", "", "path to GoToShell.app (default: the enclosing bundle)")

	rootCmd.AddCommand(openCmd, listCmd, setCmd, showCmd, initCmd, installCmd, versionCmd)
}

func main() {
	rootCmd.SetArgs(launchArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// launchArgs drops the process serial number LaunchServices passes to
// applications started from Finder.
func launchArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "-psn_") {
			continue
		}
		out = append(out, a)
	}
	return out
}
