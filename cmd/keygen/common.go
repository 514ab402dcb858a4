package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/internal/config"
	"github.com/coinbase/chainkit/internal/keystore"
	"github.com/coinbase/chainkit/internal/utils/fxparams"
	"github.com/coinbase/chainkit/internal/utils/log"
)

const appStartTimeout = 10 * time.Second

type (
	CmdApp interface {
		Close()
		Logger() *zap.Logger
		Config() *config.Config
		Keystore() keystore.Store
	}

	cmdAppImpl struct {
		app      *fx.App
		logger   *zap.Logger
		config   *config.Config
		keystore keystore.Store
	}
)

var logger *zap.Logger

func init() {
	logger = log.NewDevelopment()
}

func startApp() (CmdApp, error) {
	a := &cmdAppImpl{
		logger: logger,
	}

	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() *zap.Logger { return a.logger }),
		config.Module,
		fxparams.Module,
		keystore.Module,
		fx.Populate(&a.config, &a.keystore),
	)

	ctx, cancel := context.WithTimeout(context.Background(), appStartTimeout)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return nil, xerrors.Errorf("failed to start app: %w", err)
	}

	a.app = app
	return a, nil
}

func (a *cmdAppImpl) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), appStartTimeout)
	defer cancel()
	if err := a.app.Stop(ctx); err != nil {
		a.logger.Error("failed to stop app", zap.Error(err))
	}
}

func (a *cmdAppImpl) Logger() *zap.Logger {
	return a.logger
}

func (a *cmdAppImpl) Config() *config.Config {
	return a.config
}

func (a *cmdAppImpl) Keystore() keystore.Store {
	return a.keystore
}

// printResult renders a command result in the configured output format.
func printResult(cfg *config.Config, result interface{}) error {
	if cfg.Output == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return xerrors.Errorf("failed to encode result: %w", err)
		}

		fmt.Println(string(data))
		return nil
	}

	fmt.Println(result)
	return nil
}
