package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/fdfswire/internal/logging"
	"github.com/danmuck/fdfswire/internal/protocol/frame"
)

// Config holds the knobs shared by frame readers and the diagnostic CLI.
type Config struct {
	MaxBodyBytes int64
	DialTimeout  time.Duration
	IOTimeout    time.Duration
	LogLevel     string
	TrackerAddr  string
}

type fileConfig struct {
	MaxBodyBytes int64  `toml:"max_body_bytes"`
	DialTimeout  string `toml:"dial_timeout"`
	IOTimeout    string `toml:"io_timeout"`
	LogLevel     string `toml:"log_level"`
	TrackerAddr  string `toml:"tracker_addr"`
}

func DefaultConfig() Config {
	return Config{
		MaxBodyBytes: frame.DefaultLimits().MaxBodyBytes,
		DialTimeout:  5 * time.Second,
		IOTimeout:    30 * time.Second,
		LogLevel:     "info",
		TrackerAddr:  "127.0.0.1:22122",
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("max_body_bytes") {
		cfg.MaxBodyBytes = raw.MaxBodyBytes
	}
	if meta.IsDefined("dial_timeout") {
		d, err := parseDuration("dial_timeout", raw.DialTimeout)
		if err != nil {
			return Config{}, err
		}
		cfg.DialTimeout = d
	}
	if meta.IsDefined("io_timeout") {
		d, err := parseDuration("io_timeout", raw.IOTimeout)
		if err != nil {
			return Config{}, err
		}
		cfg.IOTimeout = d
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("tracker_addr") {
		cfg.TrackerAddr = strings.TrimSpace(raw.TrackerAddr)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive")
	}
	if cfg.DialTimeout <= 0 {
		return fmt.Errorf("dial_timeout must be positive")
	}
	if cfg.IOTimeout <= 0 {
		return fmt.Errorf("io_timeout must be positive")
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if strings.TrimSpace(cfg.TrackerAddr) == "" {
		return fmt.Errorf("tracker_addr is required")
	}
	return nil
}

// FrameLimits returns the read limits for frame.ReadFrame.
func (c Config) FrameLimits() frame.Limits {
	return frame.Limits{MaxBodyBytes: c.MaxBodyBytes}
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
