package main

import "github.com/spf13/cobra"

func newClearCmd() *cobra.Command {
	var flags commonFlags
	var outputFile string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the hidden secret message from an audio file",
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
				name:     "clear",
				data:     data,
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
	cmd.Flags().StringVar(&outputFile, "output_file", "", "Path where the audio file with the cleaned hidden text will be saved")
	return cmd
}
