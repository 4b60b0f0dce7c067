// Command sw is the command-line front-end: hide, extract, and clear
// subcommands over an audio file, dispatched to a local or remote
// codec.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stegowave/wav16/internal/cliutil"
	"github.com/stegowave/wav16/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sw",
		Short:         "StegoWave :: Audio file steganography",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newHideCmd(), newExtractCmd(), newClearCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cliutil.PrintableError(err))
		os.Exit(1)
	}
}

// loadSettings resolves the --config flag (falling back to the
// SW_CONFIG environment variable and config.DefaultConfigFile) and
// loads the configuration tree the dispatcher needs for both local and
// remote operation.
func loadSettings(configFlag string) (*config.Settings, error) {
	path := configFlag
	if path == "" {
		path = os.Getenv("SW_CONFIG")
	}
	if path == "" {
		path = config.DefaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		// No config file on disk is fine; Load still applies defaults
		// and any environment overlay.
		path = ""
	}
	return config.Load(path)
}
