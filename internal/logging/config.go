package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	logs "github.com/danmuck/smplog"
)

const (
	EnvLogLevel     = "FDFSWIRE_LOG_LEVEL"
	EnvLogTimestamp = "FDFSWIRE_LOG_TIMESTAMP"
	EnvLogNoColor   = "FDFSWIRE_LOG_NOCOLOR"
	EnvLogBypass    = "FDFSWIRE_LOG_BYPASS"
	EnvLogConfig    = "SMPLOG_CONFIG"
)

// Profile selects the smplog defaults for a process.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

type profileDefaults struct {
	level     logs.Level
	timestamp bool
}

var profiles = map[Profile]profileDefaults{
	ProfileRuntime: {level: logs.InfoLevel, timestamp: true},
	ProfileTest:    {level: logs.DebugLevel, timestamp: false},
}

var levels = map[string]logs.Level{
	"trace":       logs.TraceLevel,
	"diagnostics": logs.TraceLevel,
	"debug":       logs.DebugLevel,
	"info":        logs.InfoLevel,
	"warn":        logs.WarnLevel,
	"warning":     logs.WarnLevel,
	"error":       logs.ErrorLevel,
	"off":         logs.Disabled,
	"none":        logs.Disabled,
	"disabled":    logs.Disabled,
}

var (
	mu         sync.Mutex
	configured bool
	active     logs.Config
)

func ConfigureRuntime() { Configure(ProfileRuntime) }

func ConfigureTests() { Configure(ProfileTest) }

// Configure installs the profile on first use. Later calls keep whatever is
// already active.
func Configure(profile Profile) {
	mu.Lock()
	defer mu.Unlock()
	if configured {
		return
	}
	active = Resolve(profile, os.Getenv)
	logs.Configure(active)
	configured = true
}

// Resolve builds the smplog config for profile. A file named by
// SMPLOG_CONFIG replaces the profile defaults; FDFSWIRE_LOG_* values apply on
// top and unparsable values are ignored.
func Resolve(profile Profile, getenv func(string) string) logs.Config {
	cfg := profileConfig(profile)
	if path := getenv(EnvLogConfig); path != "" {
		if fileCfg, err := logs.ConfigFromFile(path); err == nil {
			cfg = fileCfg
		}
	}
	for _, o := range envOverrides {
		if raw := strings.TrimSpace(getenv(o.key)); raw != "" {
			o.apply(&cfg, raw)
		}
	}
	return cfg
}

// SetLevel switches the active level, typically to a config file's
// log_level. FDFSWIRE_LOG_LEVEL, when valid, still wins.
func SetLevel(name string) error {
	lvl, ok := ParseLevel(name)
	if !ok {
		return fmt.Errorf("logging: unknown level %q", name)
	}
	if _, pinned := ParseLevel(os.Getenv(EnvLogLevel)); pinned {
		return nil
	}
	Configure(ProfileRuntime)

	mu.Lock()
	defer mu.Unlock()
	active.Level = lvl
	logs.Configure(active)
	return nil
}

// Current returns the config most recently handed to smplog.
func Current() logs.Config {
	mu.Lock()
	defer mu.Unlock()
	return active
}

// ParseLevel maps a level name to a smplog level. ok is false for empty or
// unknown input, in which case the info level is returned.
func ParseLevel(raw string) (logs.Level, bool) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return logs.InfoLevel, false
	}
	return lvl, true
}

func profileConfig(profile Profile) logs.Config {
	d, ok := profiles[profile]
	if !ok {
		d = profiles[ProfileRuntime]
	}
	cfg := logs.DefaultConfig()
	cfg.Level = d.level
	cfg.Timestamp = d.timestamp
	return cfg
}

type envOverride struct {
	key   string
	apply func(cfg *logs.Config, raw string)
}

var envOverrides = []envOverride{
	{EnvLogLevel, func(cfg *logs.Config, raw string) {
		if lvl, ok := ParseLevel(raw); ok {
			cfg.Level = lvl
		}
	}},
	{EnvLogTimestamp, boolOverride(func(cfg *logs.Config) *bool { return &cfg.Timestamp })},
	{EnvLogNoColor, boolOverride(func(cfg *logs.Config) *bool { return &cfg.NoColor })},
	{EnvLogBypass, boolOverride(func(cfg *logs.Config) *bool { return &cfg.Bypass })},
}

func boolOverride(field func(*logs.Config) *bool) func(*logs.Config, string) {
	return func(cfg *logs.Config, raw string) {
		if v, err := strconv.ParseBool(raw); err == nil {
			*field(cfg) = v
		}
	}
}
