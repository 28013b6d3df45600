package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|#[0-9a-fA-F]{3}|\d{1,3})$`)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it is set, otherwise returns the defaults
// with environment overrides applied.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and fills unset fields with defaults.
func Validate(cfg *Config) error {
	if err := validatePlayback(&cfg.Playback); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := validateLRCLIB(&cfg.LRCLIB); err != nil {
		return fmt.Errorf("lrclib: %w", err)
	}
	if err := validateCache(&cfg.Cache); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := validateStyle(&cfg.Style); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	return nil
}

func validatePlayback(p *PlaybackConfig) error {
	if p.PollInterval < 0 {
		return errors.New("poll_interval must not be negative")
	}
	if p.PollInterval == 0 {
		p.PollInterval = DefaultPollInterval
	}
	if p.PollInterval < time.Millisecond {
		return fmt.Errorf("poll_interval %s is below 1ms", p.PollInterval)
	}

	if p.SeekStep < 0 {
		return errors.New("seek_step must not be negative")
	}
	if p.SeekStep == 0 {
		p.SeekStep = DefaultSeekStep
	}
	return nil
}

func validateOutput(o *OutputConfig) error {
	switch o.Format {
	case "":
		o.Format = OutputFormatText
	case OutputFormatText, OutputFormatJSON:
		// Valid
	default:
		return fmt.Errorf("invalid format %q (must be text or json)", o.Format)
	}
	return nil
}

func validateLRCLIB(l *LRCLIBConfig) error {
	if l.BaseURL == "" {
		l.BaseURL = DefaultLRCLIBURL
	}

	u, err := url.Parse(l.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("base_url must have a host")
	}

	if l.Timeout <= 0 {
		l.Timeout = DefaultLRCLIBTimeout
	}
	if l.UserAgent == "" {
		l.UserAgent = DefaultUserAgent
	}
	return nil
}

func validateCache(c *CacheConfig) error {
	if c.TTL < 0 {
		return errors.New("ttl must not be negative")
	}
	if c.TTL == 0 {
		c.TTL = DefaultCacheTTL
	}
	if !c.Enabled() {
		return nil
	}

	u, err := url.Parse(c.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid redis_url: %w", err)
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return fmt.Errorf("redis_url scheme must be redis or rediss, got %q", u.Scheme)
	}
	return nil
}

func validateStyle(s *StyleConfig) error {
	if s.ActiveColor == "" {
		s.ActiveColor = DefaultActiveColor
	}
	if s.DimColor == "" {
		s.DimColor = DefaultDimColor
	}
	if !colorPattern.MatchString(s.ActiveColor) {
		return fmt.Errorf("invalid active_color %q (use an ANSI number or #rrggbb)", s.ActiveColor)
	}
	if !colorPattern.MatchString(s.DimColor) {
		return fmt.Errorf("invalid dim_color %q (use an ANSI number or #rrggbb)", s.DimColor)
	}

	if s.ContextLines < 0 {
		return errors.New("context_lines must not be negative")
	}
	if s.ContextLines == 0 {
		s.ContextLines = DefaultContextLines
	}
	return nil
}
