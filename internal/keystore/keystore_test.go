package keystore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/coinbase/chainkit/internal/utils/fxparams"
	"github.com/coinbase/chainkit/internal/utils/testutil"
	"github.com/coinbase/chainkit/keypair"
)

func newTestStore(t *testing.T) Store {
	return New(StoreParams{
		Params: fxparams.Params{
			Logger: zaptest.NewLogger(t),
		},
	})
}

func TestSaveAndLoad(t *testing.T) {
	require := testutil.Require(t)

	store := newTestStore(t)
	kp, err := keypair.New()
	require.NoError(err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(store.Save(path, kp, false))

	info, err := os.Stat(path)
	require.NoError(err)
	require.Equal(os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load(path)
	require.NoError(err)
	require.Equal(kp.Bytes(), loaded.Bytes())
}

func TestSave_CreatesDirectories(t *testing.T) {
	require := testutil.Require(t)

	store := newTestStore(t)
	kp, err := keypair.New()
	require.NoError(err)

	path := filepath.Join(t.TempDir(), "nested", "dir", "id.json")
	require.NoError(store.Save(path, kp, false))

	_, err = store.Load(path)
	require.NoError(err)
}

func TestSave_RefusesOverwrite(t *testing.T) {
	require := testutil.Require(t)

	store := newTestStore(t)
	kp, err := keypair.New()
	require.NoError(err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(store.Save(path, kp, false))

	err = store.Save(path, kp, false)
	require.ErrorIs(err, ErrExists)

	require.NoError(store.Save(path, kp, true))
}

func TestLoad_FileFormat(t *testing.T) {
	require := testutil.Require(t)

	store := newTestStore(t)
	kp, err := keypair.New()
	require.NoError(err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(store.Save(path, kp, false))

	// The keyfile is a JSON array of 64 integers.
	data, err := os.ReadFile(path)
	require.NoError(err)

	var raw []int
	require.NoError(json.Unmarshal(data, &raw))
	require.Len(raw, keypair.Size)
}

func TestLoad_Invalid(t *testing.T) {
	require := testutil.Require(t)

	store := newTestStore(t)
	dir := t.TempDir()

	_, err := store.Load(filepath.Join(dir, "missing.json"))
	require.Error(err)

	path := filepath.Join(dir, "garbage.json")
	require.NoError(os.WriteFile(path, []byte("not json"), 0o600))
	_, err = store.Load(path)
	require.Error(err)

	path = filepath.Join(dir, "range.json")
	require.NoError(os.WriteFile(path, []byte("[300]"), 0o600))
	_, err = store.Load(path)
	require.Error(err)
	require.Contains(err.Error(), "invalid byte value")

	path = filepath.Join(dir, "short.json")
	require.NoError(os.WriteFile(path, []byte("[1,2,3]"), 0o600))
	_, err = store.Load(path)
	require.Error(err)
}
