// Package config loads runtime settings from flags, SITEMAP_* environment
// variables, an optional .env file and an optional YAML config file, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SITEMAP"

type Config struct {
	DB      string        `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	History HistoryConfig `mapstructure:"history"`
	Cable   CableConfig   `mapstructure:"cable"`
	Canvas  CanvasConfig  `mapstructure:"canvas"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File receives logs while the TUI owns the terminal. Empty means stderr.
	File string `mapstructure:"file"`
}

type HistoryConfig struct {
	// Limit caps undo depth per floor; 0 keeps everything.
	Limit int `mapstructure:"limit"`
}

type CableConfig struct {
	PreferredColor string `mapstructure:"preferred_color"`
}

type CanvasConfig struct {
	HitRadius   float64 `mapstructure:"hit_radius"`
	DoubleTapMS int     `mapstructure:"double_tap_ms"`
}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RegisterFlags adds the global flags that override config keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Config file (YAML); defaults to ~/.sitemap/config.yaml")
	fs.String("db", "", "SQLite database path")
	fs.String("log-level", "", "Log level: debug, info, warn, error")
}

// Load resolves the configuration. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	baseDir := filepath.Join(home, ".sitemap")

	v := viper.New()
	setDefaults(v, baseDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{"db": "db", "log.level": "log-level"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readConfigFile(v, flags, baseDir); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, baseDir string) {
	v.SetDefault("db", filepath.Join(baseDir, "sitemap.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("history.limit", 200)
	v.SetDefault("cable.preferred_color", "")
	v.SetDefault("canvas.hit_radius", 1.5)
	v.SetDefault("canvas.double_tap_ms", 400)
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet, baseDir string) error {
	path := os.Getenv(envPrefix + "_CONFIG")
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			path = f.Value.String()
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(baseDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// loadDotEnv loads path into the environment if it exists. Variables that
// are already set win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges that decoding cannot.
func (c *Config) Validate() error {
	var errs []error
	if c.DB == "" {
		errs = append(errs, errors.New("db path must not be empty"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}
	if c.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history.limit must be >= 0, got %d", c.History.Limit))
	}
	if c.Cable.PreferredColor != "" && !hexColorPattern.MatchString(c.Cable.PreferredColor) {
		errs = append(errs, fmt.Errorf("cable.preferred_color %q must look like #rrggbb", c.Cable.PreferredColor))
	}
	if c.Canvas.HitRadius <= 0 {
		errs = append(errs, fmt.Errorf("canvas.hit_radius must be > 0"))
	}
	if c.Canvas.DoubleTapMS <= 0 {
		errs = append(errs, fmt.Errorf("canvas.double_tap_ms must be > 0"))
	}
	return errors.Join(errs...)
}
