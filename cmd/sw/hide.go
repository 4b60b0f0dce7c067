package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stegowave/wav16/internal/stego"
)

func newHideCmd() *cobra.Command {
	var flags commonFlags
	var message string
	var outputFile string

	cmd := &cobra.Command{
		Use:   "hide",
		Short: "Hides a secret message in an audio file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(flags.inputFile)
			if err != nil {
				return err
			}
			password, err := readPassword()
			if err != nil {
				return err
			}
			settings, err := loadSettings(flags.config)
			if err != nil {
				return err
			}

			d := newDispatcher(settings, flags)
			out, err := d.runAudio(operation{
				name:     "hide",
				data:     data,
				message:  message,
				password: password,
				format:   flags.format,
				lsbDeep:  flags.lsbDeep,
			})
			if err != nil {
				return err
			}
			return writeOutput(outputFile, out)
		},
	}
	addCommonFlags(cmd, &flags)
	cmd.Flags().StringVarP(&message, "message", "m", "", "The secret message to hide inside the audio file")
	cmd.MarkFlagRequired("message")
	cmd.Flags().StringVar(&outputFile, "output_file", "", "Path where the audio file with the hidden text will be saved")
	return cmd
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		path = stego.DefaultFilename
	}
	return os.WriteFile(path, data, 0o644)
}
