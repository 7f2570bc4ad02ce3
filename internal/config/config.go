package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "LAYOUTGRID"

// Storage backends.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig
	Log     LogConfig
	Layout  LayoutConfig
}

// StorageConfig selects where layouts are persisted.
type StorageConfig struct {
	Type string
	// Path is the sqlite database file. A leading ~ is expanded.
	Path string
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level  string
	Format string
}

// LayoutConfig holds defaults for layout commands.
type LayoutConfig struct {
	// Key is the storage key used when a command is given none.
	Key      string
	MainArea bool `mapstructure:"main_area"`
}

// Options controls Load.
type Options struct {
	// File is an explicit config file. When empty, config.yaml is looked up
	// in the user config directory and its absence is not an error.
	File string
	// Overrides take precedence over every other source. Keys use dotted
	// notation, e.g. "log.level".
	Overrides map[string]any
}

// Load reads configuration from defaults, file, environment and overrides.
func Load(opts Options) (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	v.SetDefault("storage.type", StorageSQLite)
	v.SetDefault("storage.path", filepath.Join(home, ".local", "share", "layoutgrid", "layouts.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("layout.key", "workbench")
	v.SetDefault("layout.main_area", false)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "layoutgrid"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, val := range opts.Overrides {
		v.Set(key, val)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Storage.Path, err = homedir.Expand(c.Storage.Path); err != nil {
		return nil, fmt.Errorf("expand storage path: %w", err)
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every enumerated setting holds a known value.
func (c *Config) Validate() error {
	if !slices.Contains([]string{StorageMemory, StorageSQLite}, c.Storage.Type) {
		return fmt.Errorf("invalid storage.type %q: must be %q or %q", c.Storage.Type, StorageMemory, StorageSQLite)
	}
	if c.Storage.Type == StorageSQLite && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for the %q storage", StorageSQLite)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("invalid log.level %q: must be 'debug', 'info', 'warn', or 'error'", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q: must be 'text' or 'json'", c.Log.Format)
	}
	if c.Layout.Key == "" {
		return errors.New("layout.key must not be empty")
	}
	return nil
}
