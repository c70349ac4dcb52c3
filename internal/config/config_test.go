package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuild_Defaults verifies that built-in defaults fill fields no source
// provided.
func TestBuild_Defaults(t *testing.T) {
	cfg, err := Build(&Config{Path: "/tmp/a.ini"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/a.ini", cfg.Path)
	assert.Equal(t, "UTF-8", cfg.Encoding)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Interactive)
}

// TestBuild_EnvPopulatesFields verifies CONFKEEPER_* variables are read.
func TestBuild_EnvPopulatesFields(t *testing.T) {
	t.Setenv("CONFKEEPER_PATH", "/tmp/env.ini")
	t.Setenv("CONFKEEPER_ENCODING", "Shift_JIS")
	t.Setenv("CONFKEEPER_INTERACTIVE", "true")
	t.Setenv("CONFKEEPER_LOG_LEVEL", "warn")

	cfg, err := Build(nil)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env.ini", cfg.Path)
	assert.Equal(t, "Shift_JIS", cfg.Encoding)
	assert.True(t, cfg.Interactive)
	assert.Equal(t, "warn", cfg.LogLevel)
}

// TestBuild_OverridesWinOverEnv verifies flag-style overrides take
// precedence over the environment.
func TestBuild_OverridesWinOverEnv(t *testing.T) {
	t.Setenv("CONFKEEPER_PATH", "/tmp/env.ini")
	t.Setenv("CONFKEEPER_ENCODING", "Shift_JIS")

	cfg, err := Build(&Config{Path: "/tmp/flag.ini"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/flag.ini", cfg.Path)
	// untouched fields still come from the environment
	assert.Equal(t, "Shift_JIS", cfg.Encoding)
}

// TestBuild_MissingPath verifies that a path must arrive from some source.
func TestBuild_MissingPath(t *testing.T) {
	cfg, err := Build(nil)
	require.ErrorIs(t, err, ErrMissingPath)
	assert.Nil(t, cfg)
}

// TestBuild_BadEnvValue verifies that an unparsable environment value is
// reported as a build error.
func TestBuild_BadEnvValue(t *testing.T) {
	t.Setenv("CONFKEEPER_INTERACTIVE", "definitely")

	_, err := Build(&Config{Path: "/tmp/a.ini"})
	require.Error(t, err)
}
