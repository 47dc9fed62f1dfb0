package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	okerrors "github.com/matzehuels/okrdash/pkg/errors"
)

// Config holds the render defaults. Values come, lowest precedence first,
// from built-in defaults, the config file, OKRDASH_* environment variables
// and command-line flags.
type Config struct {
	Output      string   `mapstructure:"output"`
	Formats     []string `mapstructure:"formats"`
	Open        bool     `mapstructure:"open"`
	NoCache     bool     `mapstructure:"no_cache"`
	Concurrency int      `mapstructure:"concurrency"`
	Scale       float64  `mapstructure:"scale"`
}

// configFlags maps config keys to the flag names that override them.
var configFlags = map[string]string{
	"output":      "output",
	"formats":     "format",
	"open":        "open",
	"no_cache":    "no-cache",
	"concurrency": "jobs",
	"scale":       "scale",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", ".")
	v.SetDefault("formats", []string{"html"})
	v.SetDefault("open", false)
	v.SetDefault("no_cache", false)
	v.SetDefault("concurrency", 4)
	v.SetDefault("scale", 2.0)
}

// loadConfig resolves the configuration for cmd. Flags the command does not
// define are skipped. A missing config file is fine unless --config named
// one explicitly.
func (c *CLI) loadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if c.configPath != "" {
		v.SetConfigFile(c.configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.configPath != "" || !errors.As(err, &notFound) {
			return nil, okerrors.Wrap(okerrors.ErrCodeInvalidInput, err, "read config")
		}
	}

	for key, name := range configFlags {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, okerrors.Wrap(okerrors.ErrCodeInternal, err, "bind flag --%s", name)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, okerrors.Wrap(okerrors.ErrCodeInvalidInput, err, "decode config")
	}
	if cfg.Concurrency < 1 {
		return nil, okerrors.New(okerrors.ErrCodeInvalidInput, "concurrency must be at least 1, got %d", cfg.Concurrency)
	}
	if cfg.Scale <= 0 {
		return nil, okerrors.New(okerrors.ErrCodeInvalidInput, "scale must be positive, got %v", cfg.Scale)
	}
	return &cfg, nil
}
