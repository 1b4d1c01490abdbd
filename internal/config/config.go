// Package config loads Shebe's configuration surface the way
// kiosk404-echoryn's CLIs do: spf13/viper layering built-in defaults,
// an optional TOML file, and SHEBE_-prefixed environment variables, in
// that order of increasing precedence.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

// envPrefix is the prefix viper.AutomaticEnv binds against, e.g.
// SHEBE_CHUNK_SIZE for the chunk_size key.
const envPrefix = "SHEBE"

// DefaultIncludePatterns is applied when include_patterns is unset:
// empty means "every file is initially considered" per the walker
// contract, so the default is intentionally empty rather than a
// restrictive allowlist.
var DefaultIncludePatterns = []string{}

// DefaultExcludePatterns skips the directories that are never useful to
// index and would otherwise dominate chunk counts.
var DefaultExcludePatterns = []string{
	"**/.git/**",
	"**/.shebe/**",
	"**/node_modules/**",
	"**/vendor/**",
	"**/dist/**",
	"**/build/**",
	"**/*.min.js",
	"**/*.lock",
}

// Config is the fully resolved configuration surface described in
// specification §6.
type Config struct {
	ChunkSize            int      `mapstructure:"chunk_size"`
	Overlap              int      `mapstructure:"overlap"`
	MaxFileSizeMB        int      `mapstructure:"max_file_size_mb"`
	IncludePatterns      []string `mapstructure:"include_patterns"`
	ExcludePatterns      []string `mapstructure:"exclude_patterns"`
	IndexDir             string   `mapstructure:"index_dir"`
	DefaultK             int      `mapstructure:"default_k"`
	MaxK                 int      `mapstructure:"max_k"`
	MaxQueryLength       int      `mapstructure:"max_query_length"`
	MaxConcurrentIndexes int      `mapstructure:"max_concurrent_indexes"`
	RequestTimeoutSec    int      `mapstructure:"request_timeout_sec"`
	LogLevel             string   `mapstructure:"log_level"`
}

// MaxFileBytes converts MaxFileSizeMB into the byte count the walker and
// indexing pipeline consume.
func (c Config) MaxFileBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chunk_size", 512)
	v.SetDefault("overlap", 64)
	v.SetDefault("max_file_size_mb", 10)
	v.SetDefault("include_patterns", DefaultIncludePatterns)
	v.SetDefault("exclude_patterns", DefaultExcludePatterns)
	v.SetDefault("index_dir", DefaultIndexDir())
	v.SetDefault("default_k", 10)
	v.SetDefault("max_k", 100)
	v.SetDefault("max_query_length", 500)
	v.SetDefault("max_concurrent_indexes", 1)
	v.SetDefault("request_timeout_sec", 300)
	v.SetDefault("log_level", "info")
}

// DefaultIndexDir resolves the XDG state directory fallback used when
// index_dir / SHEBE_DATA_DIR is unset: $XDG_STATE_HOME/shebe/sessions,
// falling back to ~/.local/state/shebe/sessions.
func DefaultIndexDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "shebe", "sessions")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "state", "shebe", "sessions")
}

// Load resolves the configuration surface: defaults, then an optional
// TOML file at configPath (skipped silently if configPath is empty or
// the file does not exist), then SHEBE_-prefixed environment variables.
// The result is validated before being returned.
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, shebeerrors.Wrapf(shebeerrors.InvalidArgument, err, "reading config file %q", configPath)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, shebeerrors.Wrap(shebeerrors.Internal, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	bindEnv(v, "chunk_size", "overlap", "max_file_size_mb",
		"default_k", "max_k", "max_query_length", "max_concurrent_indexes",
		"request_timeout_sec", "log_level")
	_ = v.BindEnv("index_dir", "SHEBE_DATA_DIR")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, shebeerrors.Wrap(shebeerrors.Internal, err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindEnv(v *viper.Viper, keys ...string) {
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

// Validate enforces the startup validation rules from specification §6.
// Violations are reported as a single InvalidArgument error.
func Validate(cfg Config) error {
	switch {
	case cfg.ChunkSize <= 0:
		return shebeerrors.New(shebeerrors.InvalidArgument, "chunk_size must be > 0")
	case cfg.Overlap >= cfg.ChunkSize:
		return shebeerrors.New(shebeerrors.InvalidArgument, "overlap must be < chunk_size")
	case cfg.DefaultK <= 0 || cfg.DefaultK > cfg.MaxK:
		return shebeerrors.New(shebeerrors.InvalidArgument, "default_k must be > 0 and <= max_k")
	case cfg.MaxQueryLength <= 0:
		return shebeerrors.New(shebeerrors.InvalidArgument, "max_query_length must be > 0")
	case cfg.MaxConcurrentIndexes <= 0:
		return shebeerrors.New(shebeerrors.InvalidArgument, "max_concurrent_indexes must be > 0")
	case cfg.RequestTimeoutSec <= 0:
		return shebeerrors.New(shebeerrors.InvalidArgument, "request_timeout_sec must be > 0")
	}
	return nil
}
