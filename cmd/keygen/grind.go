package main

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/internal/utils/syncgroup"
	"github.com/coinbase/chainkit/keypair"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

func init() {
	var (
		startsWith string
		outfile    string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "grind",
		Short: "search for a vanity address with the given base58 prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := startApp()
			if err != nil {
				return err
			}
			defer app.Close()

			for _, c := range startsWith {
				if !strings.ContainsRune(base58Alphabet, c) {
					return xerrors.Errorf("prefix contains non-base58 character: %q", c)
				}
			}

			app.Logger().Info("grinding for address",
				zap.String("prefix", startsWith),
				zap.Int("workers", app.Config().GrindWorkers),
			)

			var (
				found    atomic.Pointer[keypair.Keypair]
				attempts int64
			)
			g, ctx := syncgroup.New(cmd.Context(), syncgroup.WithThrottling(app.Config().GrindWorkers))
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			for i := 0; i < app.Config().GrindWorkers; i++ {
				g.Go(func() error {
					for {
						select {
						case <-ctx.Done():
							return nil
						default:
						}

						kp, err := keypair.New()
						if err != nil {
							return xerrors.Errorf("failed to generate keypair: %w", err)
						}

						atomic.AddInt64(&attempts, 1)
						if strings.HasPrefix(kp.Address().String(), startsWith) {
							found.Store(kp)
							cancel()
							return nil
						}
					}
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			kp := found.Load()
			if kp == nil {
				return xerrors.New("grind cancelled before a match was found")
			}

			app.Logger().Info("found matching address",
				zap.String("address", kp.Address().String()),
				zap.Int64("attempts", atomic.LoadInt64(&attempts)),
			)

			path := outfile
			if path == "" {
				path = fmt.Sprintf("%v.json", kp.Address())
			}

			return app.Keystore().Save(path, kp, force)
		},
	}
	cmd.Flags().StringVar(&startsWith, "starts-with", "", "base58 prefix to search for")
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "", "keyfile path (default: <address>.json)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing keyfile")
	if err := cmd.MarkFlagRequired("starts-with"); err != nil {
		logger.Fatal("error marking flag starts-with required")
	}
	rootCmd.AddCommand(cmd)
}
