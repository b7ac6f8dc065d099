// Package config loads the settings shared by the gtfs binaries from flags,
// GTFS_* environment variables and an optional config file.
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rmrobinson/gtfsview/services/gtfs"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GTFS"

const (
	keyPath                = "path"
	keyComma               = "comma"
	keyMaxConcurrentTables = "max_concurrent_tables"
	keyLogLevel            = "log_level"
	keyStatusBuffer        = "status_buffer"

	flagConfig = "config"
)

var flagKeys = map[string]string{
	"comma":                 keyComma,
	"max-concurrent-tables": keyMaxConcurrentTables,
	"log-level":             keyLogLevel,
	"status-buffer":         keyStatusBuffer,
}

// Config holds the validated settings.
type Config struct {
	Path                string `mapstructure:"path"`
	Comma               string `mapstructure:"comma" validate:"len=1"`
	MaxConcurrentTables int    `mapstructure:"max_concurrent_tables" validate:"gte=0"`
	LogLevel            string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	StatusBuffer        int    `mapstructure:"status_buffer" validate:"gte=1"`
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(flagConfig, "", "path to an optional config file")
	fs.String("comma", ",", "field delimiter of the feed tables")
	fs.Int("max-concurrent-tables", 0, "maximum number of tables parsed at once, 0 for no limit")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.Int("status-buffer", 16, "number of status updates buffered per watcher")
}

// Load reads the configuration into a Config. Flags explicitly set on fs take
// precedence over the environment, which takes precedence over the config file.
func Load(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	v.SetDefault(keyComma, ",")
	v.SetDefault(keyMaxConcurrentTables, 0)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyStatusBuffer, 16)

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{keyPath, keyComma, keyMaxConcurrentTables, keyLogLevel, keyStatusBuffer} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if flag := fs.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}

		if flag := fs.Lookup(flagConfig); flag != nil && flag.Value.String() != "" {
			v.SetConfigFile(flag.Value.String())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("unable to read config file %s: %w", flag.Value.String(), err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CommaRune returns the configured delimiter.
func (c *Config) CommaRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Comma)
	return r
}

// Level returns the configured log level.
func (c *Config) Level() zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Logger builds a development logger at the configured level.
func (c *Config) Logger(opts ...zap.Option) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(c.Level())
	return zc.Build(opts...)
}

// LoaderOptions maps the settings onto a gtfs.Loader.
func (c *Config) LoaderOptions() []gtfs.LoaderOption {
	return []gtfs.LoaderOption{
		gtfs.WithParseOptions(gtfs.WithComma(c.CommaRune())),
		gtfs.WithMaxConcurrentTables(c.MaxConcurrentTables),
		gtfs.WithStatusBuffer(c.StatusBuffer),
	}
}
