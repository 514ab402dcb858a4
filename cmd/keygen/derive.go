package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/address"
)

func init() {
	var programID string

	cmd := &cobra.Command{
		Use:   "derive [seed]...",
		Short: "derive a program address from seeds and a program id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := startApp()
			if err != nil {
				return err
			}
			defer app.Close()

			program, err := address.FromBase58(programID)
			if err != nil {
				return xerrors.Errorf("failed to parse program id: %w", err)
			}

			seeds := make([][]byte, len(args))
			for i, arg := range args {
				seeds[i] = []byte(arg)
			}

			derived, bump, err := address.FindProgramAddress(seeds, program)
			if err != nil {
				return xerrors.Errorf("failed to derive program address: %w", err)
			}

			if app.Config().Output == "json" {
				return printResult(app.Config(), struct {
					Address string `json:"address"`
					Bump    uint8  `json:"bump"`
				}{
					Address: derived.String(),
					Bump:    bump,
				})
			}

			fmt.Printf("address: %v\nbump: %v\n", derived, bump)
			return nil
		},
	}
	cmd.Flags().StringVar(&programID, "program-id", "", "base58 program id")
	if err := cmd.MarkFlagRequired("program-id"); err != nil {
		logger.Fatal("error marking flag program-id required")
	}
	rootCmd.AddCommand(cmd)
}
