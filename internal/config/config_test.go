package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coinbase/chainkit/internal/utils/testutil"
)

func TestNew_Defaults(t *testing.T) {
	require := testutil.Require(t)

	cfg, err := New(WithConfigRoot(t.TempDir()))
	require.NoError(err)
	require.NotEmpty(cfg.KeypairPath)
	require.Equal("text", cfg.Output)
	require.Equal(12, cfg.WordCount)
	require.Equal(8, cfg.GrindWorkers)
}

func TestNew_ConfigFile(t *testing.T) {
	require := testutil.Require(t)

	root := t.TempDir()
	content := "keypair_path: /tmp/test-id.json\noutput: json\nword_count: 24\ngrind_workers: 2\n"
	require.NoError(os.WriteFile(filepath.Join(root, "config.yaml"), []byte(content), 0o600))

	cfg, err := New(WithConfigRoot(root))
	require.NoError(err)
	require.Equal("/tmp/test-id.json", cfg.KeypairPath)
	require.Equal("json", cfg.Output)
	require.Equal(24, cfg.WordCount)
	require.Equal(2, cfg.GrindWorkers)
}

func TestNew_EnvOverridesFile(t *testing.T) {
	require := testutil.Require(t)

	root := t.TempDir()
	content := "output: json\n"
	require.NoError(os.WriteFile(filepath.Join(root, "config.yaml"), []byte(content), 0o600))

	t.Setenv("CHAINKIT_OUTPUT", "text")
	cfg, err := New(WithConfigRoot(root))
	require.NoError(err)
	require.Equal("text", cfg.Output)
}

func TestNew_MalformedFile(t *testing.T) {
	require := testutil.Require(t)

	root := t.TempDir()
	require.NoError(os.WriteFile(filepath.Join(root, "config.yaml"), []byte("::: not yaml"), 0o600))

	_, err := New(WithConfigRoot(root))
	require.Error(err)
}

func TestNew_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad output", "output: xml\n"},
		{"bad word count", "word_count: 13\n"},
		{"too many workers", "grind_workers: 1000\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := testutil.Require(t)

			root := t.TempDir()
			require.NoError(os.WriteFile(filepath.Join(root, "config.yaml"), []byte(test.content), 0o600))

			_, err := New(WithConfigRoot(root))
			require.Error(err)
			require.Contains(err.Error(), "failed to validate config")
		})
	}
}
