package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Default values for configuration.
const (
	DefaultPollInterval  = 50 * time.Millisecond
	DefaultSeekStep      = 5 * time.Second
	DefaultLRCLIBURL     = "https://lrclib.net"
	DefaultLRCLIBTimeout = 10 * time.Second
	DefaultUserAgent     = "lyricsync"
	DefaultCacheTTL      = 24 * time.Hour
	DefaultActiveColor   = "205"
	DefaultDimColor      = "240"
	DefaultContextLines  = 5
)

// Environment variable names.
const (
	EnvLRCLIBURL    = "LYRICSYNC_LRCLIB_URL"
	EnvRedisURL     = "LYRICSYNC_REDIS_URL"
	EnvPollInterval = "LYRICSYNC_POLL_INTERVAL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Playback: PlaybackConfig{
			PollInterval: DefaultPollInterval,
			SeekStep:     DefaultSeekStep,
		},
		Output: OutputConfig{
			Format: OutputFormatText,
		},
		LRCLIB: LRCLIBConfig{
			BaseURL:   DefaultLRCLIBURL,
			Timeout:   DefaultLRCLIBTimeout,
			UserAgent: DefaultUserAgent,
		},
		Cache: CacheConfig{
			TTL: DefaultCacheTTL,
		},
		Style: StyleConfig{
			ActiveColor:  DefaultActiveColor,
			DimColor:     DefaultDimColor,
			ContextLines: DefaultContextLines,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
// A .env file in the working directory is loaded first if present; variables
// already set in the environment win.
func (c *Config) applyEnvironmentOverrides() {
	_ = godotenv.Load()

	if u := os.Getenv(EnvLRCLIBURL); u != "" {
		c.LRCLIB.BaseURL = u
	}
	if u := os.Getenv(EnvRedisURL); u != "" {
		c.Cache.RedisURL = u
	}
	if v := os.Getenv(EnvPollInterval); v != "" {
		// Unparseable values are ignored.
		if d, err := time.ParseDuration(v); err == nil {
			c.Playback.PollInterval = d
		}
	}
}
