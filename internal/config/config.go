package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

const (
	envPrefix = "CHAINKIT"

	configFileName = "config"
	configFileType = "yaml"
)

type (
	// Config holds the CLI settings. Values come from, in order of
	// precedence: environment variables (CHAINKIT_*), the optional config
	// file (~/.config/chainkit/config.yaml), and defaults.
	Config struct {
		// KeypairPath is the default keyfile read and written by the CLI.
		KeypairPath string `mapstructure:"keypair_path" validate:"required"`

		// Output is the print format for command results.
		Output string `mapstructure:"output" validate:"oneof=text json"`

		// WordCount is the mnemonic length used when generating keypairs.
		WordCount int `mapstructure:"word_count" validate:"oneof=12 15 18 21 24"`

		// GrindWorkers caps the goroutines used by the vanity address grinder.
		GrindWorkers int `mapstructure:"grind_workers" validate:"gte=1,lte=256"`
	}

	Option func(opts *configOptions)

	configOptions struct {
		configRoot string
	}
)

// WithConfigRoot overrides the directory searched for the config file.
func WithConfigRoot(root string) Option {
	return func(opts *configOptions) {
		opts.configRoot = root
	}
}

func New(opts ...Option) (*Config, error) {
	options := configOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Default values may be overridden by the config file or environment variables.
	v.SetDefault("keypair_path", defaultKeypairPath())
	v.SetDefault("output", "text")
	v.SetDefault("word_count", 12)
	v.SetDefault("grind_workers", 8)

	configRoot := options.configRoot
	if configRoot == "" {
		configRoot = defaultConfigRoot()
	}

	v.AddConfigPath(configRoot)
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; a malformed one is not.
		var notFound viper.ConfigFileNotFoundError
		if !xerrors.As(err, &notFound) {
			return nil, xerrors.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, xerrors.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, xerrors.Errorf("failed to validate config: %w", err)
	}

	return &cfg, nil
}

func defaultConfigRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "chainkit")
}

func defaultKeypairPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "id.json"
	}

	return filepath.Join(home, ".config", "chainkit", "id.json")
}
