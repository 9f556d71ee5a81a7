// Package config loads portfolio settings from defaults, an optional YAML
// file and PORTFOLIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/importer"
)

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_DB_PATH.
const EnvPrefix = "PORTFOLIO"

// minMaxIndent is the shallowest nesting limit accepted for plan.max_indent.
const minMaxIndent = 2

type Config struct {
	DB   DBConfig   `mapstructure:"db"`
	Log  LogConfig  `mapstructure:"log"`
	Plan PlanConfig `mapstructure:"plan"`
	Load LoadConfig `mapstructure:"load"`
}

type DBConfig struct {
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
}

type PlanConfig struct {
	MaxIndent int `mapstructure:"max_indent"`
}

type LoadConfig struct {
	Unit              domain.GroupUnit `mapstructure:"unit"`
	OverloadThreshold float64          `mapstructure:"overload_threshold"`
}

// HomeDir returns ~/.portfolio, or $PORTFOLIO_HOME when set.
func HomeDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".portfolio"), nil
}

func setDefaults(v *viper.Viper) {
	dbPath := "portfolio.db"
	if dir, err := HomeDir(); err == nil {
		dbPath = filepath.Join(dir, "portfolio.db")
	}
	v.SetDefault("db.path", dbPath)
	v.SetDefault("db.busy_timeout", 5*time.Second)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("plan.max_indent", importer.DefaultMaxIndent)
	v.SetDefault("load.unit", string(domain.GroupWeek))
	v.SetDefault("load.overload_threshold", 100.0)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. path names an explicit config file; when
// empty, ~/.portfolio/config.yaml is used if it exists. Environment
// variables override both.
func Load(path string) (*Config, error) {
	v := newViper()

	if path == "" {
		if dir, err := HomeDir(); err == nil {
			candidate := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decoderOption()); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// decoderOption lets durations be written as "5s" or "1500ms".
func decoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	)
}

// Validate checks value ranges. All problems are reported together.
func Validate(cfg *Config) error {
	var errs []error
	if strings.TrimSpace(cfg.DB.Path) == "" {
		errs = append(errs, errors.New("db.path must not be empty"))
	}
	if cfg.DB.BusyTimeout < 0 {
		errs = append(errs, fmt.Errorf("db.busy_timeout must not be negative, got %s", cfg.DB.BusyTimeout))
	}
	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if cfg.Log.MaxSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("log.max_size_mb must be positive, got %d", cfg.Log.MaxSizeMB))
	}
	if cfg.Plan.MaxIndent != 0 && (cfg.Plan.MaxIndent < minMaxIndent || cfg.Plan.MaxIndent > importer.DefaultMaxIndent) {
		errs = append(errs, fmt.Errorf("plan.max_indent must be between %d and %d, got %d",
			minMaxIndent, importer.DefaultMaxIndent, cfg.Plan.MaxIndent))
	}
	if !domain.ValidGroupUnits[string(cfg.Load.Unit)] {
		errs = append(errs, fmt.Errorf("load.unit %q must be week, month or quarter", cfg.Load.Unit))
	}
	if cfg.Load.OverloadThreshold <= 0 {
		errs = append(errs, fmt.Errorf("load.overload_threshold must be positive, got %g", cfg.Load.OverloadThreshold))
	}
	return errors.Join(errs...)
}
