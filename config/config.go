// Package config holds engine settings. Settings come from defaults, an
// optional yaml file, and FLANKER_-prefixed environment variables, in
// increasing order of precedence.
package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	// ConfigSearchDepth is the fixed search depth for CPU turns.
	ConfigSearchDepth = "search-depth"
	// ConfigWorkers is the number of search workers; anything below 2
	// forces the solo path.
	ConfigWorkers = "workers"
	// ConfigWorkerMemoryFloor is the minimum free physical memory, in
	// bytes, required to provision a second worker.
	ConfigWorkerMemoryFloor = "worker-memory-floor"
	// ConfigTTEnabled turns on the per-solver transposition table.
	ConfigTTEnabled = "transposition-table"
	// ConfigTTMemFraction is the fraction of physical memory a single
	// transposition table may claim.
	ConfigTTMemFraction = "tt-memory-fraction"
	// ConfigLogLevel is the zerolog level name.
	ConfigLogLevel = "log-level"
)

type Config struct {
	v *viper.Viper
}

// DefaultConfig creates a config with defaults and environment binding,
// without reading any file.
func DefaultConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("flanker")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(ConfigSearchDepth, 4)
	v.SetDefault(ConfigWorkers, 2)
	v.SetDefault(ConfigWorkerMemoryFloor, 8*1024*1024)
	v.SetDefault(ConfigTTEnabled, false)
	v.SetDefault(ConfigTTMemFraction, 0.05)
	v.SetDefault(ConfigLogLevel, "info")
	return &Config{v: v}
}

// Load reads settings from a yaml file on top of the defaults. A missing
// path is not an error; the defaults stand.
func (c *Config) Load(path string) error {
	if path == "" {
		return nil
	}
	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("loaded config file")
	return nil
}

func (c *Config) GetInt(key string) int         { return c.v.GetInt(key) }
func (c *Config) GetUint64(key string) uint64   { return c.v.GetUint64(key) }
func (c *Config) GetBool(key string) bool       { return c.v.GetBool(key) }
func (c *Config) GetString(key string) string   { return c.v.GetString(key) }
func (c *Config) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }

// Set overrides a single setting; the shell uses this for `set` commands.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}
