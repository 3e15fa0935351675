package logging

import (
	"testing"

	logs "github.com/danmuck/smplog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vals map[string]string) func(string) string {
	return func(key string) string { return vals[key] }
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want logs.Level
		ok   bool
	}{
		{"", logs.InfoLevel, false},
		{"debug", logs.DebugLevel, true},
		{" WARNING ", logs.WarnLevel, true},
		{"trace", logs.TraceLevel, true},
		{"off", logs.Disabled, true},
		{"loud", logs.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestResolveProfiles(t *testing.T) {
	rt := Resolve(ProfileRuntime, env(nil))
	assert.Equal(t, logs.InfoLevel, rt.Level)
	assert.True(t, rt.Timestamp)

	tc := Resolve(ProfileTest, env(nil))
	assert.Equal(t, logs.DebugLevel, tc.Level)
	assert.False(t, tc.Timestamp)
}

func TestResolveEnvOverrides(t *testing.T) {
	cfg := Resolve(ProfileRuntime, env(map[string]string{
		EnvLogLevel:     "error",
		EnvLogNoColor:   "true",
		EnvLogTimestamp: "not-a-bool",
		EnvLogBypass:    " ",
	}))
	assert.Equal(t, logs.ErrorLevel, cfg.Level)
	assert.True(t, cfg.NoColor)
	assert.True(t, cfg.Timestamp)
	assert.False(t, cfg.Bypass)
}

func TestResolveMissingConfigFileKeepsProfile(t *testing.T) {
	cfg := Resolve(ProfileTest, env(map[string]string{EnvLogConfig: "/nonexistent/smplog.toml"}))
	assert.Equal(t, logs.DebugLevel, cfg.Level)
}

func TestSetLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	ConfigureTests()
	before := Current().Level
	t.Cleanup(func() {
		mu.Lock()
		active.Level = before
		logs.Configure(active)
		mu.Unlock()
	})

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, logs.WarnLevel, Current().Level)

	require.Error(t, SetLevel("loud"))
	assert.Equal(t, logs.WarnLevel, Current().Level)
}

func TestSetLevelPinnedByEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	ConfigureTests()
	before := Current().Level

	require.NoError(t, SetLevel("error"))
	assert.Equal(t, before, Current().Level)
}
