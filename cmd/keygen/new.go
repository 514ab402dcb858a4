package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/keypair"
)

func init() {
	var (
		outfile    string
		force      bool
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "generate a new keypair and write it to a keyfile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := startApp()
			if err != nil {
				return err
			}
			defer app.Close()

			mnemonic, err := keypair.NewMnemonic(app.Config().WordCount)
			if err != nil {
				return xerrors.Errorf("failed to generate mnemonic: %w", err)
			}

			kp, err := keypair.FromMnemonic(mnemonic, passphrase)
			if err != nil {
				return xerrors.Errorf("failed to derive keypair: %w", err)
			}

			path := outfile
			if path == "" {
				path = app.Config().KeypairPath
			}

			if err := app.Keystore().Save(path, kp, force); err != nil {
				return err
			}

			fmt.Printf("address: %v\n", kp.Address())
			fmt.Println("save this seed phrase to recover your keypair:")
			fmt.Println(mnemonic)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "", "keyfile path (default: configured keypair path)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing keyfile")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "optional BIP-39 passphrase")
	rootCmd.AddCommand(cmd)
}
