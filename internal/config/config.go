// Package config loads the catalogd configuration from defaults, an optional
// file and CATALOG_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "CATALOG"

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	HTTP   HTTPConfig   `mapstructure:"http"`
	DB     DBConfig     `mapstructure:"db"`
	Paging PagingConfig `mapstructure:"paging"`
	Log    LogConfig    `mapstructure:"log"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
	// Prefix is prepended to every listing route, e.g. "/api/v1".
	Prefix string `mapstructure:"prefix"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type PagingConfig struct {
	DefaultItems int `mapstructure:"default_items"`
	MaxItems     int `mapstructure:"max_items"`
	MaxPerPage   int `mapstructure:"max_per_page"`
}

type LogConfig struct {
	Development bool `mapstructure:"development"`
}

var ErrInvalidConfig = errors.New("invalid config")

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.prefix", "/api/v1")
	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.dsn", "")
	v.SetDefault("paging.default_items", 10)
	v.SetDefault("paging.max_items", 100)
	v.SetDefault("paging.max_per_page", 100)
	v.SetDefault("log.development", false)
}

// New returns a viper instance with defaults and environment overrides,
// e.g. CATALOG_DB_DSN for db.dsn.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional config file at path into v and decodes the
// result. An empty path skips the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("%w: http.addr is empty", ErrInvalidConfig)
	}

	switch c.DB.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("%w: unsupported db.driver '%s'", ErrInvalidConfig, c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("%w: db.dsn is empty", ErrInvalidConfig)
	}

	if c.Paging.MaxItems < 1 {
		return fmt.Errorf("%w: paging.max_items must be positive", ErrInvalidConfig)
	}
	if c.Paging.DefaultItems < 0 || c.Paging.DefaultItems > c.Paging.MaxItems {
		return fmt.Errorf("%w: paging.default_items must be within [0, %d]", ErrInvalidConfig, c.Paging.MaxItems)
	}
	if c.Paging.MaxPerPage < 1 {
		return fmt.Errorf("%w: paging.max_per_page must be positive", ErrInvalidConfig)
	}

	return nil
}
