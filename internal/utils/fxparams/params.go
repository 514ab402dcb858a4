package fxparams

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/coinbase/chainkit/internal/config"
)

// Params provide the common dependencies.
// Usage:
//
//	MyParams struct {
//	  fx.In
//	  fxparams.Params
//	  ...
//	}
type Params struct {
	Config *config.Config
	Logger *zap.Logger
}

var Module = fx.Options(
	fx.Provide(func(config *config.Config, logger *zap.Logger) Params {
		return Params{
			Config: config,
			Logger: logger,
		}
	}),
)
