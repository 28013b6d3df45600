// Package config provides configuration loading and validation for lyricsync.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Playback PlaybackConfig `yaml:"playback"`
	Output   OutputConfig   `yaml:"output"`
	LRCLIB   LRCLIBConfig   `yaml:"lrclib"`
	Cache    CacheConfig    `yaml:"cache"`
	Style    StyleConfig    `yaml:"style"`
}

// PlaybackConfig controls the simulated transport and its poll loop.
type PlaybackConfig struct {
	// PollInterval is how often the playback position is sampled.
	PollInterval time.Duration `yaml:"poll_interval"`

	// SeekStep is how far a single seek key press moves the position.
	SeekStep time.Duration `yaml:"seek_step"`
}

// OutputFormat selects a report renderer.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// OutputConfig controls default report rendering.
type OutputConfig struct {
	Format OutputFormat `yaml:"format"`
}

// LRCLIBConfig configures the remote synced-lyrics API.
type LRCLIBConfig struct {
	// BaseURL is the API root, e.g. https://lrclib.net.
	BaseURL string `yaml:"base_url"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent,omitempty"`
}

// CacheConfig configures the optional Redis cache for fetched lyrics.
// An empty RedisURL disables caching.
type CacheConfig struct {
	RedisURL string        `yaml:"redis_url,omitempty"`
	TTL      time.Duration `yaml:"ttl,omitempty"`
}

// Enabled returns true if a cache backend is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

// StyleConfig controls the terminal view.
type StyleConfig struct {
	// ActiveColor is a lipgloss color (ANSI number or hex) for the active line.
	ActiveColor string `yaml:"active_color"`

	// DimColor is used for inactive lines.
	DimColor string `yaml:"dim_color"`

	// ContextLines is the number of lines shown above and below the active one.
	ContextLines int `yaml:"context_lines"`
}
