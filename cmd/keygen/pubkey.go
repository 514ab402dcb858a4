package main

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "pubkey [keyfile]",
		Short: "print the address of a keyfile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := startApp()
			if err != nil {
				return err
			}
			defer app.Close()

			path := app.Config().KeypairPath
			if len(args) > 0 {
				path = args[0]
			}

			kp, err := app.Keystore().Load(path)
			if err != nil {
				return err
			}

			return printResult(app.Config(), kp.Address().String())
		},
	}
	rootCmd.AddCommand(cmd)
}
