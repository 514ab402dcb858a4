package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/address"
)

func init() {
	cmd := &cobra.Command{
		Use:   "verify <address> [keyfile]",
		Short: "verify that a keyfile controls the given address",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := startApp()
			if err != nil {
				return err
			}
			defer app.Close()

			expected, err := address.FromBase58(args[0])
			if err != nil {
				return xerrors.Errorf("failed to parse address: %w", err)
			}

			path := app.Config().KeypairPath
			if len(args) > 1 {
				path = args[1]
			}

			kp, err := app.Keystore().Load(path)
			if err != nil {
				return err
			}

			if !kp.Address().Equals(expected) {
				return xerrors.Errorf("keyfile address %v does not match %v", kp.Address(), expected)
			}

			// Sign and verify a probe message to prove the secret key is usable.
			probe := []byte("keygen verification probe")
			if !kp.Sign(probe).Verify(kp.Address(), probe) {
				return xerrors.New("keyfile failed signature verification")
			}

			fmt.Println("verification succeeded")
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
