// Package keystore reads and writes keypair files in the JSON byte-array
// format used by standard wallet tooling (a 64-element array of integers).
package keystore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/internal/utils/fxparams"
	"github.com/coinbase/chainkit/keypair"
)

type (
	Store interface {
		Load(path string) (*keypair.Keypair, error)
		Save(path string, kp *keypair.Keypair, overwrite bool) error
	}

	StoreParams struct {
		fx.In
		fxparams.Params
	}

	storeImpl struct {
		logger *zap.Logger
	}
)

var Module = fx.Options(
	fx.Provide(New),
)

var ErrExists = xerrors.New("keyfile already exists")

func New(params StoreParams) Store {
	return &storeImpl{
		logger: params.Logger,
	}
}

func (s *storeImpl) Load(path string) (*keypair.Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read keyfile %v: %w", path, err)
	}

	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, xerrors.Errorf("failed to parse keyfile %v: %w", path, err)
	}

	bytes := make([]byte, len(raw))
	for i, v := range raw {
		if v < 0 || v > 255 {
			return nil, xerrors.Errorf("invalid byte value in keyfile %v: %v", path, v)
		}

		bytes[i] = byte(v)
	}

	kp, err := keypair.FromBytes(bytes)
	if err != nil {
		return nil, xerrors.Errorf("failed to recover keypair from %v: %w", path, err)
	}

	return kp, nil
}

func (s *storeImpl) Save(path string, kp *keypair.Keypair, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return xerrors.Errorf("refusing to overwrite %v: %w", path, ErrExists)
		}
	}

	raw := make([]int, keypair.Size)
	for i, b := range kp.Bytes() {
		raw[i] = int(b)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return xerrors.Errorf("failed to encode keyfile: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return xerrors.Errorf("failed to create keyfile directory %v: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return xerrors.Errorf("failed to write keyfile %v: %w", path, err)
	}

	s.logger.Info("wrote keyfile",
		zap.String("path", path),
		zap.String("address", kp.Address().String()),
	)
	return nil
}
