package main

import "github.com/spf13/cobra"

// commonFlags is the flag set shared by all three subcommands,
// flattened onto each so every operation accepts the same
// format/server/depth/config knobs.
type commonFlags struct {
	inputFile   string
	format      string
	server      string
	startServer bool
	lsbDeep     int
	config      string
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags) {
	cmd.Flags().StringVar(&f.inputFile, "input_file", "", "Path to the input audio file from which bytes will be read (stdin if omitted)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "wav16", "Audio file format used for processing the file")
	cmd.Flags().StringVarP(&f.server, "server", "s", "auto", "The name of the server to be used (grpc, rest, auto)")
	cmd.Flags().BoolVar(&f.startServer, "start-server", false, "Automatically start the server if it's not running")
	cmd.Flags().IntVarP(&f.lsbDeep, "lsb_deep", "l", 1, "Number of least significant bits to modify")
	cmd.Flags().StringVar(&f.config, "config", "", "Specify the path to the configuration file")
}
