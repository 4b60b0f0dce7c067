package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extracts a hidden secret message from an audio file",
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
			message, err := d.runText(operation{
				name:     "extract",
				data:     data,
				password: password,
				format:   flags.format,
				lsbDeep:  flags.lsbDeep,
			})
			if err != nil {
				return err
			}
			fmt.Println(message)
			return nil
		},
	}
	addCommonFlags(cmd, &flags)
	return cmd
}
