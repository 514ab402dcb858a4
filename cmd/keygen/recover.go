package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

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
		Use:   "recover",
		Short: "recover a keypair from a BIP-39 seed phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := startApp()
			if err != nil {
				return err
			}
			defer app.Close()

			fmt.Print("enter seed phrase: ")
			reader := bufio.NewReader(os.Stdin)
			mnemonic, err := reader.ReadString('\n')
			if err != nil {
				return xerrors.Errorf("failed to read seed phrase: %w", err)
			}

			kp, err := keypair.FromMnemonic(strings.TrimSpace(mnemonic), passphrase)
			if err != nil {
				return xerrors.Errorf("failed to recover keypair: %w", err)
			}

			path := outfile
			if path == "" {
				path = app.Config().KeypairPath
			}

			if err := app.Keystore().Save(path, kp, force); err != nil {
				return err
			}

			fmt.Printf("recovered address: %v\n", kp.Address())
			return nil
		},
	}
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "", "keyfile path (default: configured keypair path)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing keyfile")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "optional BIP-39 passphrase")
	rootCmd.AddCommand(cmd)
}
