package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	theme "github.com/goliatone/go-theme"
)

const envPrefix = "FORMFIELDS"

// Config is the CLI configuration. Values come from flags, FORMFIELDS_*
// environment variables and an optional formfields.yaml, in that order.
type Config struct {
	Templates   string      `mapstructure:"templates"`
	AssetPrefix string      `mapstructure:"asset_prefix"`
	Output      string      `mapstructure:"output"`
	Format      string      `mapstructure:"format"`
	LogLevel    string      `mapstructure:"log_level"`
	MaxAttempts int         `mapstructure:"max_attempts"`
	Theme       ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig maps onto theme.RendererConfig.
type ThemeConfig struct {
	Name     string            `mapstructure:"name"`
	Variant  string            `mapstructure:"variant"`
	AssetURL string            `mapstructure:"asset_url"`
	Partials map[string]string `mapstructure:"partials"`
	CSSVars  map[string]string `mapstructure:"css_vars"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "json")
	v.SetDefault("log_level", "warn")
	v.SetDefault("max_attempts", 0)
}

// loadConfig reads the config file at path, or formfields.yaml from the
// working directory when path is empty, and overlays env vars and flags.
func loadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("formfields")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, flag := range map[string]string{
			"templates":    "templates",
			"asset_prefix": "asset-prefix",
			"output":       "output",
			"format":       "format",
			"log_level":    "log-level",
			"max_attempts": "max-attempts",
			"theme.name":   "theme",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %q: %w", flag, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// RendererConfig converts the theme section for the HTML renderer. It
// returns nil when nothing is configured.
func (c ThemeConfig) RendererConfig() *theme.RendererConfig {
	if c.Name == "" && c.Variant == "" && c.AssetURL == "" && len(c.Partials) == 0 && len(c.CSSVars) == 0 {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    c.Name,
		Variant:  c.Variant,
		Partials: c.Partials,
		CSSVars:  c.CSSVars,
	}
	if base := strings.TrimRight(c.AssetURL, "/"); base != "" {
		cfg.AssetURL = func(name string) string {
			return base + "/" + strings.TrimLeft(name, "/")
		}
	}
	return cfg
}
