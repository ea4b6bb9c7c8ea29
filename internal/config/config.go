package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. POWERPAGES_SYNC_DIRECTORY.
	EnvPrefix = "POWERPAGES"
	// ConfigName is the base name of the config file searched in DefaultConfigPaths.
	ConfigName = "powerpages"
)

// ErrSyncDirectoryNotSet is returned by commands that need a sync directory.
var ErrSyncDirectoryNotSet = errors.New("sync directory not configured: set sync_directory, POWERPAGES_SYNC_DIRECTORY or --sync-dir")

// LogConfig configures the diagnostic logger
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Config is the resolved configuration of one process
type Config struct {
	SyncDirectory string    `mapstructure:"sync_directory"`
	Database      string    `mapstructure:"database"`
	NoColor       bool      `mapstructure:"no_color"`
	Log           LogConfig `mapstructure:"log"`
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"sync-dir": "sync_directory",
	"db":       "database",
	"no-color": "no_color",
}

// DefaultConfigPaths returns the directories searched for powerpages.yaml
func DefaultConfigPaths() []string {
	paths := []string{"."}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "powerpages"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".powerpages"))
	}
	return paths
}

// DefaultDatabasePath returns the database location under the XDG data directory
func DefaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "powerpages", "pages.db")
}

// Load resolves configuration from defaults, the config file, the environment
// and flags, in increasing priority. An explicit path must exist; a missing
// default config file is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	// Every key needs a default so that environment-only values reach Unmarshal.
	v.SetDefault("sync_directory", "")
	v.SetDefault("database", DefaultDatabasePath())
	v.SetDefault("no_color", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var err error
	if cfg.SyncDirectory, err = expandPath(cfg.SyncDirectory); err != nil {
		return nil, err
	}
	if cfg.Database, err = expandPath(cfg.Database); err != nil {
		return nil, err
	}
	if cfg.Log.File, err = expandPath(cfg.Log.File); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RequireSyncDirectory checks that a sync directory is configured
func (c *Config) RequireSyncDirectory() error {
	if c.SyncDirectory == "" {
		return ErrSyncDirectoryNotSet
	}
	return nil
}

// LockPath returns the process lock file guarding sync runs on this database
func (c *Config) LockPath() string {
	return c.Database + ".lock"
}

// expandPath expands a leading ~ and makes the path absolute
func expandPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}
